package http

import (
	"net/http"
	"time"

	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/auth/internal/entity"
	"horeca-board/services/auth/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Role     string `json:"role" example:"job_seeker"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp godoc
// @Summary      Register a new user
// @Description  Creates the account and its profile. Role is job_seeker or employer; job_seeker when omitted.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignUpRequest true "Registration data"
// @Success      201  {object}  entity.Session
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	session, err := h.authUseCase.SignUp(c.Request.Context(), entity.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, h.logger, "sign up", err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// SignIn godoc
// @Summary      Sign in
// @Description  Exchanges credentials for a bearer token. Accounts without a profile are refused.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignInRequest true "Credentials"
// @Success      200  {object}  entity.Session
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	session, err := h.authUseCase.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "sign in", err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// SignOut godoc
// @Summary      Sign out
// @Description  Revokes the presented token.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	expiresAt, _ := c.Get(middleware.ContextTokenExp)
	until, _ := expiresAt.(time.Time)

	err := h.authUseCase.SignOut(
		c.Request.Context(), middleware.CurrentIdentity(c), c.GetString(middleware.ContextTokenID), until,
	)
	if err != nil {
		respondError(c, h.logger, "sign out", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CheckSession godoc
// @Summary      Session check
// @Description  Cheap endpoint for clients to poll. 401 with signed_out=true once the profile is gone.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /session/check [get]
func (h *AuthHandler) CheckSession(c *gin.Context) {
	// AuthMiddleware already resolved the identity through the cached resolver.
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "identity": identity})
}

// Me godoc
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Profile
// @Failure      401  {object}  map[string]interface{}
// @Router       /profile [get]
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.authUseCase.CheckSession(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, h.logger, "load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
