package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adces/internal/dto"
	"adces/internal/service"
	"adces/pkg/response"
)

// AuthHandler serves /auth routes.
type AuthHandler struct {
	svc    service.AuthService
	logger *zap.Logger
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(svc service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	resp, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt := currentTokenID(c)
	if err := h.svc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		h.logger.Warn("logout failed", zap.Error(err))
	}
	response.OK(c, nil)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.GetCurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, resp)
}

// ChangePassword handles POST /auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, err.Error())
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), currentUserID(c), &req); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}
