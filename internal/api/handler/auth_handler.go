package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/response"
)

// AuthHandler login and logout endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login root or admin login.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// LoginPembina supervisor login by id_pembina.
// POST /api/v1/auth/login/pembina
func (h *AuthHandler) LoginPembina(c *gin.Context) {
	var req dto.PembinaLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authSvc.LoginPembina(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the current token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := tokenInfo(c)
	if jti == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me the logged-in operator as carried by the token.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	uid, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	response.OK(c, dto.UserInfo{ID: uid, Role: role, Name: c.GetString("name")})
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "invalid credentials")
	default:
		if !handleValidation(c, err) {
			response.InternalError(c)
		}
	}
}
