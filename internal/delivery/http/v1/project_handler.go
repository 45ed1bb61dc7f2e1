package v1

import (
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	core *resourceHandler[domain.Project, domain.ProjectPatch]
}

func NewProjectHandler(dashboard, public, publicUser *gin.RouterGroup, uc domain.ProjectUsecase, siteOwnerID string) {
	handler := &ProjectHandler{core: newResourceHandler[domain.Project, domain.ProjectPatch]("Project", uc, siteOwnerID)}

	owned := dashboard.Group("/projects")
	{
		owned.GET("", handler.List)
		owned.POST("", handler.Create)
		owned.GET("/:id", handler.Get)
		owned.PATCH("/:id", handler.Update)
		owned.DELETE("/:id", handler.Delete)
	}

	for _, g := range []*gin.RouterGroup{public, publicUser} {
		g.GET("/projects", handler.PublicList)
		g.GET("/projects/:id", handler.PublicGet)
	}
}

// List godoc
// @Summary      List own projects
// @Description  List the caller's portfolio projects, newest first.
// @Tags         projects
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Project}
// @Failure      401  {object}  response.Response
// @Router       /dashboard/projects [get]
func (h *ProjectHandler) List(c *gin.Context) { h.core.list(c) }

// Create godoc
// @Summary      Create a portfolio project
// @Description  The owner is always the caller; id, user and timestamps in the body are ignored.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        project  body      domain.Project  true  "Project"
// @Success      201  {object}  response.Response{data=domain.Project}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /dashboard/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) { h.core.create(c) }

// Get godoc
// @Summary      Get own project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response{data=domain.Project}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /dashboard/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) { h.core.get(c) }

// Update godoc
// @Summary      Update own project
// @Description  Partial update; omitted fields are unchanged.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id     path      string  true  "Project ID"
// @Param        patch  body      domain.ProjectPatch  true  "Fields to change"
// @Success      200    {object}  response.Response{data=domain.Project}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /dashboard/projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context) { h.core.update(c) }

// Delete godoc
// @Summary      Delete own project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /dashboard/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) { h.core.delete(c) }

// PublicList godoc
// @Summary      Public projects
// @Description  Portfolio projects of the site owner, or of the given user.
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.Project}
// @Failure      404     {object}  response.Response
// @Router       /public/projects [get]
// @Router       /public/users/{userId}/projects [get]
func (h *ProjectHandler) PublicList(c *gin.Context) { h.core.publicList(c) }

// PublicGet godoc
// @Summary      Public project
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Param        id      path      string  true   "Project ID"
// @Success      200     {object}  response.Response{data=domain.Project}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /public/projects/{id} [get]
// @Router       /public/users/{userId}/projects/{id} [get]
func (h *ProjectHandler) PublicGet(c *gin.Context) { h.core.publicGet(c) }
