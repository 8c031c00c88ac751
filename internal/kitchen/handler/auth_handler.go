package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hungrybyte/galley/internal/config"
	"github.com/hungrybyte/galley/internal/kitchen/service"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.AuthService
	cfg *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /auth
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err, "")
		return
	}

	Success(c, gin.H{
		"user":   user,
		"tokens": pair,
	})
}

// Refresh GET /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		refreshToken = c.Query("refresh_token")
	}
	if refreshToken == "" {
		Unauthorized(c, "refresh token is required")
		return
	}

	pair, err := h.svc.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		Unauthorized(c, err.Error())
		return
	}
	Success(c, pair)
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		refreshToken = c.Query("refresh_token")
	}
	if err := h.svc.Logout(c.Request.Context(), refreshToken); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
