package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/service"
)

// SummaryHandler AI summary relay. It answers with the relay's own bodies,
// {summary} or {message}, instead of the response envelope.
type SummaryHandler struct {
	summarySvc service.SummaryService
}

// NewSummaryHandler creates a SummaryHandler.
func NewSummaryHandler(summarySvc service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc}
}

// Summarize POST /api/v1/ai/summary
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req dto.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.SummaryError{Message: "invalid request body", Error: err.Error()})
		return
	}

	text, err := h.summarySvc.Summarize(c.Request.Context(), req.ReportType, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSummaryInvalidInput):
			c.JSON(http.StatusBadRequest, dto.SummaryError{Message: "data and reportType are required"})
		case errors.Is(err, service.ErrSummaryUnavailable):
			c.JSON(http.StatusInternalServerError, dto.SummaryError{Message: "AI summary is not configured"})
		default:
			c.JSON(http.StatusInternalServerError, dto.SummaryError{Message: "failed to generate summary", Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Summary: text})
}
