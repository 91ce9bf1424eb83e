package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/service"
	pkgerrors "pptq-absensi/pkg/errors"
)

// StoreHandler the single-endpoint collection protocol. Rejections come back
// as 200 with {error: true, message}, server faults as 500 with the same body.
type StoreHandler struct {
	storeSvc service.StoreService
}

// NewStoreHandler creates a StoreHandler.
func NewStoreHandler(storeSvc service.StoreService) *StoreHandler {
	return &StoreHandler{storeSvc: storeSvc}
}

// Snapshot GET /api/v1/store
func (h *StoreHandler) Snapshot(c *gin.Context) {
	snap, err := h.storeSvc.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.StoreError{Error: true, Message: "failed to load collections"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Apply POST /api/v1/store
// The body is JSON whatever the Content-Type says; legacy clients send text/plain.
func (h *StoreHandler) Apply(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, dto.StoreError{Error: true, Message: "cannot read request body"})
		return
	}
	var req dto.StoreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusOK, dto.StoreError{Error: true, Message: "request body is not valid JSON"})
		return
	}

	result, err := h.storeSvc.Apply(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrValidation),
			errors.Is(err, service.ErrEntityNotFound),
			errors.Is(err, service.ErrEntityConflict):
			c.JSON(http.StatusOK, dto.StoreError{Error: true, Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.StoreError{Error: true, Message: "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
