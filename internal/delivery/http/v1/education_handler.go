package v1

import (
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EducationHandler struct {
	core *resourceHandler[domain.Education, domain.EducationPatch]
}

func NewEducationHandler(dashboard, public, publicUser *gin.RouterGroup, uc domain.EducationUsecase, siteOwnerID string) {
	handler := &EducationHandler{core: newResourceHandler[domain.Education, domain.EducationPatch]("Education", uc, siteOwnerID)}

	owned := dashboard.Group("/educations")
	{
		owned.GET("", handler.List)
		owned.POST("", handler.Create)
		owned.GET("/:id", handler.Get)
		owned.PATCH("/:id", handler.Update)
		owned.DELETE("/:id", handler.Delete)
	}

	for _, g := range []*gin.RouterGroup{public, publicUser} {
		g.GET("/educations", handler.PublicList)
		g.GET("/educations/:id", handler.PublicGet)
	}
}

// List godoc
// @Summary      List own education
// @Description  List the caller's education entries, newest first.
// @Tags         education
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Education}
// @Failure      401  {object}  response.Response
// @Router       /dashboard/educations [get]
func (h *EducationHandler) List(c *gin.Context) { h.core.list(c) }

// Create godoc
// @Summary      Create an education entry
// @Description  The owner is always the caller; id, user and timestamps in the body are ignored.
// @Tags         education
// @Accept       json
// @Produce      json
// @Param        education  body      domain.Education  true  "Education"
// @Success      201  {object}  response.Response{data=domain.Education}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /dashboard/educations [post]
func (h *EducationHandler) Create(c *gin.Context) { h.core.create(c) }

// Get godoc
// @Summary      Get own education
// @Tags         education
// @Produce      json
// @Param        id   path      string  true  "Education ID"
// @Success      200  {object}  response.Response{data=domain.Education}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /dashboard/educations/{id} [get]
func (h *EducationHandler) Get(c *gin.Context) { h.core.get(c) }

// Update godoc
// @Summary      Update own education
// @Description  Partial update; omitted fields are unchanged.
// @Tags         education
// @Accept       json
// @Produce      json
// @Param        id     path      string  true  "Education ID"
// @Param        patch  body      domain.EducationPatch  true  "Fields to change"
// @Success      200    {object}  response.Response{data=domain.Education}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /dashboard/educations/{id} [patch]
func (h *EducationHandler) Update(c *gin.Context) { h.core.update(c) }

// Delete godoc
// @Summary      Delete own education
// @Tags         education
// @Produce      json
// @Param        id   path      string  true  "Education ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /dashboard/educations/{id} [delete]
func (h *EducationHandler) Delete(c *gin.Context) { h.core.delete(c) }

// PublicList godoc
// @Summary      Public education
// @Description  Education entries of the site owner, or of the given user.
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.Education}
// @Failure      404     {object}  response.Response
// @Router       /public/educations [get]
// @Router       /public/users/{userId}/educations [get]
func (h *EducationHandler) PublicList(c *gin.Context) { h.core.publicList(c) }

// PublicGet godoc
// @Summary      Public education
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Param        id      path      string  true   "Education ID"
// @Success      200     {object}  response.Response{data=domain.Education}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /public/educations/{id} [get]
// @Router       /public/users/{userId}/educations/{id} [get]
func (h *EducationHandler) PublicGet(c *gin.Context) { h.core.publicGet(c) }
