package http

import (
	"net/http"
	"strconv"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/auth/internal/entity"
	"horeca-board/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
)

const maxResumeSize = 10 << 20

// serviceIdentity is the caller behind the privileged service key.
var serviceIdentity = &access.Identity{UserID: "service", Role: access.RoleAdmin}

type ProfileHandler struct {
	profileUseCase   usecase.ProfileUseCase
	moderatorUseCase usecase.ModeratorUseCase
	logger           *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, moderatorUseCase usecase.ModeratorUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase:   profileUseCase,
		moderatorUseCase: moderatorUseCase,
		logger:           logger,
	}
}

type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	City       *string `json:"city"`
	Experience *string `json:"experience"`
	Skills     *string `json:"skills"`
}

type ModeratorRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// GetProfile godoc
// @Summary      Profile by id
// @Description  Own profile, or any profile for employers and staff.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  entity.Profile
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUseCase.GetProfile(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfileInternal serves the same lookup to other services. The route is
// guarded by the service key instead of a user token.
func (h *ProfileHandler) GetProfileInternal(c *gin.Context) {
	profile, err := h.profileUseCase.GetProfile(c.Request.Context(), serviceIdentity, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Fields to change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	patch := entity.ProfilePatch{
		Name:       req.Name,
		Phone:      req.Phone,
		City:       req.City,
		Experience: req.Experience,
		Skills:     req.Skills,
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Nothing to update"})
		return
	}

	profile, err := h.profileUseCase.UpdateProfile(c.Request.Context(), middleware.CurrentIdentity(c), patch)
	if err != nil {
		respondError(c, h.logger, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// UploadResume godoc
// @Summary      Upload resume
// @Description  Stores the file under resumes/ and saves its public URL on the profile.
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        resume  formData  file  true  "Resume file"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /profile/resume [post]
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Resume file is required"})
		return
	}
	if file.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Resume must be at most 10MB"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read resume"})
		return
	}
	defer src.Close()

	profile, err := h.profileUseCase.UploadResume(
		c.Request.Context(), middleware.CurrentIdentity(c), file.Filename, file.Header.Get("Content-Type"), src,
	)
	if err != nil {
		respondError(c, h.logger, "upload resume", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resume_url": profile.ResumeURL, "profile": profile})
}

// ListUsers godoc
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query  string  false  "Role filter"
// @Param        limit   query  int     false  "Page size"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /admin/users [get]
func (h *ProfileHandler) ListUsers(c *gin.Context) {
	var role access.Role
	if raw := c.Query("role"); raw != "" {
		parsed, ok := access.ParseRole(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown role"})
			return
		}
		role = parsed
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	users, err := h.profileUseCase.ListUsers(c.Request.Context(), middleware.CurrentIdentity(c), role, limit, offset)
	if err != nil {
		respondError(c, h.logger, "list users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// ListModerators godoc
// @Summary      List moderators
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /admin/moderators [get]
func (h *ProfileHandler) ListModerators(c *gin.Context) {
	moderators, err := h.moderatorUseCase.ListModerators(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, h.logger, "list moderators", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moderators": moderators, "count": len(moderators)})
}

// AddModerator godoc
// @Summary      Add moderator
// @Description  Registers an account and promotes it to moderator.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ModeratorRequest true "New moderator"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /admin/moderators [post]
func (h *ProfileHandler) AddModerator(c *gin.Context) {
	var req ModeratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	profile, err := h.moderatorUseCase.AddModerator(c.Request.Context(), middleware.CurrentIdentity(c), entity.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondError(c, h.logger, "add moderator", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "moderator": profile})
}

// DemoteModerator godoc
// @Summary      Demote moderator
// @Description  Sets the moderator's role back to job_seeker.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /admin/moderators/{id} [delete]
func (h *ProfileHandler) DemoteModerator(c *gin.Context) {
	if err := h.moderatorUseCase.DemoteModerator(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		respondError(c, h.logger, "demote moderator", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
