package http

import (
	"net/http"
	"strconv"

	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/job/internal/entity"
	"horeca-board/services/job/internal/usecase"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUseCase usecase.JobUseCase
	logger     *logger.Logger
}

func NewJobHandler(jobUseCase usecase.JobUseCase, logger *logger.Logger) *JobHandler {
	return &JobHandler{
		jobUseCase: jobUseCase,
		logger:     logger,
	}
}

type JobRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

type UpdateJobRequest struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Location    *string `json:"location"`
	Salary      *string `json:"salary"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
}

// ListJobs godoc
// @Summary      List open jobs
// @Description  Active jobs, newest first. Searches title, company and location.
// @Tags         jobs
// @Produce      json
// @Param        q query string false "Search text"
// @Param        type query string false "full_time, part_time or contract"
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	filter := entity.JobFilter{Query: c.Query("q")}
	if raw := c.Query("type"); raw != "" {
		jobType, ok := entity.ParseJobType(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown job type"})
			return
		}
		filter.Type = jobType
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	jobs, err := h.jobUseCase.ListJobs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "fetch jobs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// GetJob godoc
// @Summary      Get job by ID
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200  {object}  entity.Job
// @Failure      404  {object}  map[string]interface{}
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobUseCase.GetJob(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "fetch job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob godoc
// @Summary      Post a job
// @Description  Employers post jobs that wait for moderation before they are listed.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body JobRequest true "Job"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	job, err := h.jobUseCase.CreateJob(c.Request.Context(), middleware.CurrentIdentity(c), entity.JobDraft{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, "create job", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "job": job})
}

// ListMine godoc
// @Summary      My jobs
// @Description  Every job the caller posted, in all statuses.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /jobs/mine [get]
func (h *JobHandler) ListMine(c *gin.Context) {
	actor := middleware.CurrentIdentity(c)
	employerID := ""
	if actor != nil {
		employerID = actor.UserID
	}

	jobs, err := h.jobUseCase.ListEmployerJobs(c.Request.Context(), actor, employerID)
	if err != nil {
		respondError(c, h.logger, "fetch jobs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// UpdateJob godoc
// @Summary      Update job
// @Description  Only the employer who posted the job can edit it.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Param        request body UpdateJobRequest true "Fields to change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	job, err := h.jobUseCase.UpdateJob(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), entity.JobPatch{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, "update job", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
}

// DeleteJob godoc
// @Summary      Delete job
// @Description  The owner can delete their own job. Admins can delete any job.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.jobUseCase.DeleteJob(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete job", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListByStatus godoc
// @Summary      Jobs by status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending, active or rejected" default(pending)
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/jobs [get]
func (h *JobHandler) ListByStatus(c *gin.Context) {
	status, ok := entity.ParseJobStatus(c.DefaultQuery("status", string(entity.JobPending)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	jobs, err := h.jobUseCase.ListJobsByStatus(c.Request.Context(), middleware.CurrentIdentity(c), status)
	if err != nil {
		respondError(c, h.logger, "fetch jobs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// Approve godoc
// @Summary      Approve a pending job
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /admin/jobs/{id}/approve [post]
func (h *JobHandler) Approve(c *gin.Context) {
	if err := h.jobUseCase.ApproveJob(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.logger, "approve job", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reject godoc
// @Summary      Reject a pending job
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /admin/jobs/{id}/reject [post]
func (h *JobHandler) Reject(c *gin.Context) {
	if err := h.jobUseCase.RejectJob(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.logger, "reject job", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
