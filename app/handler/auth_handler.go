package handler

import (
	"net/http"

	"planpulse/app/middleware"
	"planpulse/internal/model"
	"planpulse/internal/service"
	"planpulse/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication operations
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user
// @Summary Log in
// @Description Exchange email and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Credentials"
// @Success 200 {object} model.LoginResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		logger.WarnCtx(c.Request.Context(), "login failed for %s: %v", req.Email, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register creates a new user account
// @Summary Register user
// @Description Create a user account, admin only
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "New user"
// @Success 201 {object} model.User
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to register user: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Me returns the calling user's profile
// @Summary Current user
// @Description Get the profile of the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
