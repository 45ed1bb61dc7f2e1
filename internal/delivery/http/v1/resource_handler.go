package v1

import (
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// resourceHandler serves the dashboard CRUD and public read routes of one owned kind.
type resourceHandler[T any, P any] struct {
	kind        string
	uc          domain.ResourceUsecase[T, P]
	siteOwnerID string
}

func newResourceHandler[T any, P any](kind string, uc domain.ResourceUsecase[T, P], siteOwnerID string) *resourceHandler[T, P] {
	return &resourceHandler[T, P]{kind: kind, uc: uc, siteOwnerID: siteOwnerID}
}

func (h *resourceHandler[T, P]) list(c *gin.Context) {
	items, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", items)
}

func (h *resourceHandler[T, P]) get(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	item, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", item)
}

func (h *resourceHandler[T, P]) create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	created, err := h.uc.Create(c.Request.Context(), &item)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, h.kind+" created", created)
}

func (h *resourceHandler[T, P]) update(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	updated, err := h.uc.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.kind+" updated", updated)
}

func (h *resourceHandler[T, P]) delete(c *gin.Context) {
	id, ok := resourceID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.kind+" deleted", nil)
}

func (h *resourceHandler[T, P]) publicList(c *gin.Context) {
	owner, ok := publicOwner(c, h.siteOwnerID)
	if !ok {
		return
	}

	items, err := h.uc.ListForOwner(c.Request.Context(), owner)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", items)
}

func (h *resourceHandler[T, P]) publicGet(c *gin.Context) {
	owner, ok := publicOwner(c, h.siteOwnerID)
	if !ok {
		return
	}
	id, ok := resourceID(c)
	if !ok {
		return
	}

	item, err := h.uc.GetForOwner(c.Request.Context(), owner, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", item)
}
