package v1

import (
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	core *resourceHandler[domain.Service, domain.ServicePatch]
}

func NewServiceHandler(dashboard, public, publicUser *gin.RouterGroup, uc domain.ServiceUsecase, siteOwnerID string) {
	handler := &ServiceHandler{core: newResourceHandler[domain.Service, domain.ServicePatch]("Service", uc, siteOwnerID)}

	owned := dashboard.Group("/services")
	{
		owned.GET("", handler.List)
		owned.POST("", handler.Create)
		owned.GET("/:id", handler.Get)
		owned.PATCH("/:id", handler.Update)
		owned.DELETE("/:id", handler.Delete)
	}

	for _, g := range []*gin.RouterGroup{public, publicUser} {
		g.GET("/services", handler.PublicList)
		g.GET("/services/:id", handler.PublicGet)
	}
}

// List godoc
// @Summary      List own services
// @Description  List the caller's offered services, newest first.
// @Tags         services
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Service}
// @Failure      401  {object}  response.Response
// @Router       /dashboard/services [get]
func (h *ServiceHandler) List(c *gin.Context) { h.core.list(c) }

// Create godoc
// @Summary      Create an offered service
// @Description  The owner is always the caller; id, user and timestamps in the body are ignored.
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        service  body      domain.Service  true  "Service"
// @Success      201  {object}  response.Response{data=domain.Service}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /dashboard/services [post]
func (h *ServiceHandler) Create(c *gin.Context) { h.core.create(c) }

// Get godoc
// @Summary      Get own service
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.Response{data=domain.Service}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /dashboard/services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) { h.core.get(c) }

// Update godoc
// @Summary      Update own service
// @Description  Partial update; omitted fields are unchanged.
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id     path      string  true  "Service ID"
// @Param        patch  body      domain.ServicePatch  true  "Fields to change"
// @Success      200    {object}  response.Response{data=domain.Service}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /dashboard/services/{id} [patch]
func (h *ServiceHandler) Update(c *gin.Context) { h.core.update(c) }

// Delete godoc
// @Summary      Delete own service
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /dashboard/services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) { h.core.delete(c) }

// PublicList godoc
// @Summary      Public services
// @Description  Offered services of the site owner, or of the given user.
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.Service}
// @Failure      404     {object}  response.Response
// @Router       /public/services [get]
// @Router       /public/users/{userId}/services [get]
func (h *ServiceHandler) PublicList(c *gin.Context) { h.core.publicList(c) }

// PublicGet godoc
// @Summary      Public service
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Param        id      path      string  true   "Service ID"
// @Success      200     {object}  response.Response{data=domain.Service}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /public/services/{id} [get]
// @Router       /public/users/{userId}/services/{id} [get]
func (h *ServiceHandler) PublicGet(c *gin.Context) { h.core.publicGet(c) }
