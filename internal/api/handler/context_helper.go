package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	pkgerrors "pptq-absensi/pkg/errors"
	"pptq-absensi/pkg/response"
)

// MustGetUserID reads the user id injected by JWTAuth. On false a 401 has
// already been written and the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_id")
}

// MustGetRole reads the role injected by JWTAuth.
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, "role")
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return s, true
}

// operatorKey identifies who changes the shared attendance session.
// Role is part of the key since admin ids and supervisor ids share no namespace.
func operatorKey(c *gin.Context) (string, bool) {
	uid, ok := MustGetUserID(c)
	if !ok {
		return "", false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return "", false
	}
	return role + ":" + uid, true
}

// tokenInfo jti and expiry of the current access token.
func tokenInfo(c *gin.Context) (string, time.Time) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")
	t, _ := exp.(time.Time)
	return jti, t
}

// parseID reads the :id path parameter. On false a 400 has been written.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// bindError answers a failed ShouldBind with the validator's message.
func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid parameters", err.Error())
}

// handleValidation answers errors of the validation class; it reports false
// for anything else so the caller can fall through to its own mapping.
func handleValidation(c *gin.Context, err error) bool {
	if errors.Is(err, pkgerrors.ErrValidation) {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid parameters", err.Error())
		return true
	}
	return false
}
