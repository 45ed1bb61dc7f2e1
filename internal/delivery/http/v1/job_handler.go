package v1

import (
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	core *resourceHandler[domain.Job, domain.JobPatch]
}

func NewJobHandler(dashboard, public, publicUser *gin.RouterGroup, uc domain.JobUsecase, siteOwnerID string) {
	handler := &JobHandler{core: newResourceHandler[domain.Job, domain.JobPatch]("Job", uc, siteOwnerID)}

	owned := dashboard.Group("/jobs")
	{
		owned.GET("", handler.List)
		owned.POST("", handler.Create)
		owned.GET("/:id", handler.Get)
		owned.PATCH("/:id", handler.Update)
		owned.DELETE("/:id", handler.Delete)
	}

	for _, g := range []*gin.RouterGroup{public, publicUser} {
		g.GET("/jobs", handler.PublicList)
		g.GET("/jobs/:id", handler.PublicGet)
	}
}

// List godoc
// @Summary      List own jobs
// @Description  List the caller's work history entries, newest first.
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      401  {object}  response.Response
// @Router       /dashboard/jobs [get]
func (h *JobHandler) List(c *gin.Context) { h.core.list(c) }

// Create godoc
// @Summary      Create a work history entry
// @Description  The owner is always the caller; id, user and timestamps in the body are ignored.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.Job  true  "Job"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /dashboard/jobs [post]
func (h *JobHandler) Create(c *gin.Context) { h.core.create(c) }

// Get godoc
// @Summary      Get own job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /dashboard/jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) { h.core.get(c) }

// Update godoc
// @Summary      Update own job
// @Description  Partial update; omitted fields are unchanged.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id     path      string  true  "Job ID"
// @Param        patch  body      domain.JobPatch  true  "Fields to change"
// @Success      200    {object}  response.Response{data=domain.Job}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /dashboard/jobs/{id} [patch]
func (h *JobHandler) Update(c *gin.Context) { h.core.update(c) }

// Delete godoc
// @Summary      Delete own job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /dashboard/jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) { h.core.delete(c) }

// PublicList godoc
// @Summary      Public jobs
// @Description  Work history entries of the site owner, or of the given user.
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.Job}
// @Failure      404     {object}  response.Response
// @Router       /public/jobs [get]
// @Router       /public/users/{userId}/jobs [get]
func (h *JobHandler) PublicList(c *gin.Context) { h.core.publicList(c) }

// PublicGet godoc
// @Summary      Public job
// @Tags         public
// @Produce      json
// @Param        userId  path      string  false  "User ID"
// @Param        id      path      string  true   "Job ID"
// @Success      200     {object}  response.Response{data=domain.Job}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /public/jobs/{id} [get]
// @Router       /public/users/{userId}/jobs/{id} [get]
func (h *JobHandler) PublicGet(c *gin.Context) { h.core.publicGet(c) }
