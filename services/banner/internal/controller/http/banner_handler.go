package http

import (
	"errors"
	"net/http"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/banner/internal/entity"
	"horeca-board/services/banner/internal/usecase"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

type BannerHandler struct {
	bannerUseCase usecase.BannerUseCase
	logger        *logger.Logger
}

func NewBannerHandler(bannerUseCase usecase.BannerUseCase, logger *logger.Logger) *BannerHandler {
	return &BannerHandler{
		bannerUseCase: bannerUseCase,
		logger:        logger,
	}
}

type BannerRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Link        string     `json:"link"`
	StartsAt    *time.Time `json:"starts_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Priority    *int       `json:"priority"`
	IsActive    *bool      `json:"is_active"`
}

func (r BannerRequest) draft() entity.Draft {
	return entity.Draft{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Link:        r.Link,
		StartsAt:    r.StartsAt,
		ExpiresAt:   r.ExpiresAt,
		Priority:    r.Priority,
		IsActive:    r.IsActive,
	}
}

type PriorityRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// statusFor maps use-case errors to HTTP codes.
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
	case errors.Is(err, entity.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *BannerHandler) fail(c *gin.Context, action string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Failed to %s: %v", action, err)
		c.JSON(status, gin.H{"success": false, "error": "Failed to " + action})
		return
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// ListActive godoc
// @Summary      Active banners
// @Description  Banners currently eligible for the public carousel. Falls back to the default set when none are eligible.
// @Tags         banners
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /banners/active [get]
func (h *BannerHandler) ListActive(c *gin.Context) {
	banners := h.bannerUseCase.ListActiveBanners(c.Request.Context())
	fallback := len(banners) == 0
	if fallback {
		banners = entity.DefaultBanners(time.Now())
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners, "count": len(banners), "default": fallback})
}

// CreateBanner godoc
// @Summary      Submit a banner
// @Description  Submit a banner for moderation. It starts as pending and expires after 7 days.
// @Tags         banners
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BannerRequest true "Banner"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /banners [post]
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	banner, err := h.bannerUseCase.CreateBanner(c.Request.Context(), middleware.CurrentIdentity(c), req.draft())
	if err != nil {
		h.fail(c, "create banner", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "banner": banner})
}

// CreateBannerDirect godoc
// @Summary      Create an active banner
// @Description  Staff path that skips moderation. Expires after 30 days unless expires_at is given.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BannerRequest true "Banner"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /admin/banners [post]
func (h *BannerHandler) CreateBannerDirect(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	banner, err := h.bannerUseCase.CreateBannerDirect(c.Request.Context(), middleware.CurrentIdentity(c), req.draft())
	if err != nil {
		h.fail(c, "create banner", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "banner": banner})
}

// UploadImage godoc
// @Summary      Upload a banner image
// @Tags         banners
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image formData file true "Image file (jpg/jpeg/png/webp/svg)"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /banners/upload [post]
func (h *BannerHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Image file is required"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Image must be at most 5MB"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read image"})
		return
	}
	defer src.Close()

	url, err := h.bannerUseCase.UploadImage(
		c.Request.Context(), middleware.CurrentIdentity(c), file.Filename, file.Header.Get("Content-Type"), src,
	)
	if err != nil {
		h.fail(c, "upload image", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "image_url": url})
}

// ListMine godoc
// @Summary      My banners
// @Description  Every banner the caller submitted, newest first, in all statuses.
// @Tags         banners
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /banners/mine [get]
func (h *BannerHandler) ListMine(c *gin.Context) {
	actor := middleware.CurrentIdentity(c)
	userID := ""
	if actor != nil {
		userID = actor.UserID
	}

	banners, err := h.bannerUseCase.ListOwnerBanners(c.Request.Context(), actor, userID)
	if err != nil {
		h.fail(c, "list banners", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners, "count": len(banners)})
}

// Reactivate godoc
// @Summary      Reactivate a banner
// @Description  Sends a rejected or expired banner back to moderation with a fresh 7 day window. Owner only.
// @Tags         banners
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /banners/{id}/reactivate [post]
func (h *BannerHandler) Reactivate(c *gin.Context) {
	if err := h.bannerUseCase.Reactivate(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		h.fail(c, "reactivate banner", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListByStatus godoc
// @Summary      Banners by status
// @Description  Moderation tab listing, ordered by priority then newest.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending, active, rejected or expired" default(pending)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /admin/banners [get]
func (h *BannerHandler) ListByStatus(c *gin.Context) {
	status, ok := entity.ParseStatus(c.DefaultQuery("status", string(entity.StatusPending)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown status"})
		return
	}

	banners, err := h.bannerUseCase.ListBannersByStatus(c.Request.Context(), middleware.CurrentIdentity(c), status)
	if err != nil {
		h.fail(c, "list banners", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners, "count": len(banners)})
}

// Approve godoc
// @Summary      Approve a pending banner
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /admin/banners/{id}/approve [post]
func (h *BannerHandler) Approve(c *gin.Context) {
	if err := h.bannerUseCase.Approve(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		h.fail(c, "approve banner", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reject godoc
// @Summary      Reject a pending banner
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /admin/banners/{id}/reject [post]
func (h *BannerHandler) Reject(c *gin.Context) {
	if err := h.bannerUseCase.Reject(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		h.fail(c, "reject banner", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetPriority godoc
// @Summary      Move a banner up or down
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Param        request body PriorityRequest true "up or down"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /admin/banners/{id}/priority [post]
func (h *BannerHandler) SetPriority(c *gin.Context) {
	var req PriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	dir, err := entity.ParseDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.bannerUseCase.SetPriority(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), dir); err != nil {
		h.fail(c, "change priority", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleActive godoc
// @Summary      Show or hide a banner
// @Description  Flips is_active. The moderation status is not touched.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/banners/{id}/toggle [post]
func (h *BannerHandler) ToggleActive(c *gin.Context) {
	if err := h.bannerUseCase.ToggleActive(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		h.fail(c, "toggle banner", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteBanner godoc
// @Summary      Delete a banner permanently
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Banner ID"
// @Param        confirm query bool true "Must be true"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /admin/banners/{id} [delete]
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Deletion must be confirmed with confirm=true"})
		return
	}

	if err := h.bannerUseCase.DeleteBanner(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		h.fail(c, "delete banner", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
