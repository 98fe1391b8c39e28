package http

import (
	"net/http"

	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/job/internal/entity"
	"horeca-board/services/job/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUseCase usecase.ApplicationUseCase
	logger             *logger.Logger
}

func NewApplicationHandler(applicationUseCase usecase.ApplicationUseCase, logger *logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applicationUseCase: applicationUseCase,
		logger:             logger,
	}
}

type ApplyRequest struct {
	Message string `json:"message"`
}

type DecisionRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Job seekers can apply once to each active job.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Param        request body ApplyRequest false "Cover message"
// @Success      201  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /jobs/{id}/applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
	}

	app, err := h.applicationUseCase.Apply(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req.Message)
	if err != nil {
		respondError(c, h.logger, "apply", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "application": app})
}

// ListForJob godoc
// @Summary      Applications for a job
// @Description  Visible to the employer who posted the job and to staff.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	apps, err := h.applicationUseCase.ListJobApplications(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "fetch applications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps, "count": len(apps)})
}

// ListMine godoc
// @Summary      My applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /applications/mine [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUseCase.ListMyApplications(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, h.logger, "fetch applications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps, "count": len(apps)})
}

// ListByStatus godoc
// @Summary      Applications by status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending, accepted or rejected" default(pending)
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/applications [get]
func (h *ApplicationHandler) ListByStatus(c *gin.Context) {
	status, ok := entity.ParseApplicationStatus(c.DefaultQuery("status", string(entity.ApplicationPending)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	apps, err := h.applicationUseCase.ListApplicationsByStatus(c.Request.Context(), middleware.CurrentIdentity(c), status)
	if err != nil {
		respondError(c, h.logger, "fetch applications", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps, "count": len(apps)})
}

// Decide godoc
// @Summary      Accept or reject an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Application ID"
// @Param        request body DecisionRequest true "accepted or rejected"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /applications/{id}/status [put]
func (h *ApplicationHandler) Decide(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	app, err := h.applicationUseCase.Decide(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), entity.ApplicationStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, "update application", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "application": app})
}
