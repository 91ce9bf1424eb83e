package handler

import (
	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/response"
)

// RosterHandler roster listing and per-student history.
type RosterHandler struct {
	rosterSvc service.RosterService
}

// NewRosterHandler creates a RosterHandler.
func NewRosterHandler(rosterSvc service.RosterService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc}
}

// List GET /api/v1/students?kelas=&q=
func (h *RosterHandler) List(c *gin.Context) {
	var q dto.StudentListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	list, err := h.rosterSvc.List(c.Request.Context(), &q)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKList(c, list, len(list))
}

// History GET /api/v1/students/:id/history
func (h *RosterHandler) History(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.rosterSvc.History(c.Request.Context(), id)
	if err != nil {
		handleEntityError(c, "santri", err)
		return
	}
	response.OK(c, result)
}
