package http

import (
	"errors"
	"net/http"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/services/job/internal/entity"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, access.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidTransition),
		errors.Is(err, entity.ErrAlreadyApplied),
		errors.Is(err, entity.ErrJobClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError hides internal failures behind a generic message and logs them.
func respondError(c *gin.Context, log *logger.Logger, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Failed to %s: %v", action, err)
		c.JSON(status, gin.H{"success": false, "error": "Failed to " + action})
		return
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
