package handler

import (
	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/response"
)

// DashboardHandler today's overview and the static catalogs.
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Today GET /api/v1/dashboard
func (h *DashboardHandler) Today(c *gin.Context) {
	result, err := h.dashboardSvc.Today(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Catalog GET /api/v1/catalog
func (h *DashboardHandler) Catalog(c *gin.Context) {
	response.OK(c, dto.CatalogResponse{
		StatusAbsensi:    model.AttendanceStatuses,
		JenisPelanggaran: model.ViolationTypes,
	})
}
