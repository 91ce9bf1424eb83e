package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/response"
)

// ReportHandler filtered report views, exports and summaries.
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// List GET /api/v1/reports/:category?period=&date=&month=&kelas=&status=&q=
func (h *ReportHandler) List(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.reportSvc.List(c.Request.Context(), c.Param("category"), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

// Export GET /api/v1/reports/:category/export?format=xlsx|pdf
func (h *ReportHandler) Export(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	var eq dto.ExportQuery
	if err := c.ShouldBindQuery(&eq); err != nil {
		bindError(c, err)
		return
	}

	f, err := h.reportSvc.Export(c.Request.Context(), c.Param("category"), &q, eq.Format)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	sendFile(c, f)
}

// Summary POST /api/v1/reports/:category/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.reportSvc.Summarize(c.Request.Context(), c.Param("category"), &q)
	if err != nil {
		h.handleReportError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownCategory):
		response.NotFound(c, 13001, "unknown report category")
	case errors.Is(err, service.ErrNothingToExport):
		response.BadRequest(c, 13002, "nothing to export")
	case errors.Is(err, service.ErrUnknownFormat):
		response.BadRequest(c, 13003, "unknown export format")
	case errors.Is(err, service.ErrSummaryInvalidInput):
		response.BadRequest(c, 13004, "no records to summarize")
	case errors.Is(err, service.ErrSummaryUnavailable):
		response.Error(c, http.StatusServiceUnavailable, 13005, "ai summary is not configured")
	case errors.Is(err, service.ErrSummaryFailed):
		response.Error(c, http.StatusBadGateway, 13006, "ai summary generation failed")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		if !handleValidation(c, err) {
			response.InternalError(c)
		}
	}
}

// sendFile writes a generated file as a download.
func sendFile(c *gin.Context, f *service.ExportFile) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(f.Filename))
	c.Data(http.StatusOK, f.ContentType, f.Buf.Bytes())
}
