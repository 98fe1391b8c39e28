package http

import (
	"errors"
	"net/http"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/services/auth/internal/entity"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, access.ErrUnauthenticated),
		errors.Is(err, access.ErrProfileNotFound),
		errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, access.ErrForbidden),
		errors.Is(err, entity.ErrRoleNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, log *logger.Logger, action string, err error) {
	status := statusFor(err)
	switch {
	case status == http.StatusInternalServerError:
		log.Error("Failed to %s: %v", action, err)
		c.JSON(status, gin.H{"success": false, "error": "Failed to " + action})
	case errors.Is(err, access.ErrProfileNotFound):
		c.JSON(status, gin.H{"success": false, "error": "Profile not found", "signed_out": true})
	default:
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
	}
}
