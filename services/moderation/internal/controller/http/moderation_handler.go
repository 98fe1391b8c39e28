package http

import (
	"errors"
	"net/http"
	"strconv"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/moderation/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	moderationUseCase usecase.ModerationUseCase
	logger            *logger.Logger
}

func NewModerationHandler(moderationUseCase usecase.ModerationUseCase, logger *logger.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderationUseCase: moderationUseCase,
		logger:            logger,
	}
}

func respondError(c *gin.Context, log *logger.Logger, action string, err error) {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, access.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	default:
		log.Error("Failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to " + action})
	}
}

// Dashboard godoc
// @Summary      Admin dashboard counters
// @Description  Totals of profiles, jobs and applications plus the pending moderation counts
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /admin/dashboard [get]
func (h *ModerationHandler) Dashboard(c *gin.Context) {
	d, err := h.moderationUseCase.Dashboard(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, h.logger, "load dashboard", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": d, "pending_total": d.PendingTotal()})
}

// Queue godoc
// @Summary      Moderation queue
// @Description  Pending jobs and banners, oldest first, with the submitter's profile
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum items (max 200)" default(50)
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /admin/moderation/queue [get]
func (h *ModerationHandler) Queue(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.moderationUseCase.Queue(c.Request.Context(), middleware.CurrentIdentity(c), limit)
	if err != nil {
		respondError(c, h.logger, "load moderation queue", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
