package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pptq-absensi/internal/attendance"
	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/response"
)

// AttendanceHandler the day's shared marking session.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// GetSession today's session and schedule.
// GET /api/v1/attendance/session
func (h *AttendanceHandler) GetSession(c *gin.Context) {
	op, ok := operatorKey(c)
	if !ok {
		return
	}
	result, err := h.attendanceSvc.Current(c.Request.Context(), op)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// SelectActivity choose the activity to mark; switching resets the roster.
// PUT /api/v1/attendance/session/activity
func (h *AttendanceHandler) SelectActivity(c *gin.Context) {
	var req dto.SelectActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	op, ok := operatorKey(c)
	if !ok {
		return
	}
	result, err := h.attendanceSvc.SelectActivity(c.Request.Context(), op, req.ActivityID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// ClearActivity deselect without resetting.
// DELETE /api/v1/attendance/session/activity
func (h *AttendanceHandler) ClearActivity(c *gin.Context) {
	op, ok := operatorKey(c)
	if !ok {
		return
	}
	result, err := h.attendanceSvc.ClearActivity(c.Request.Context(), op)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// Lock freeze the session.
// POST /api/v1/attendance/session/lock
func (h *AttendanceHandler) Lock(c *gin.Context) {
	op, ok := operatorKey(c)
	if !ok {
		return
	}
	result, err := h.attendanceSvc.Lock(c.Request.Context(), op)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, result)
}

// Mark record one student's status.
// POST /api/v1/attendance/mark
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	op, ok := operatorKey(c)
	if !ok {
		return
	}
	result, err := h.attendanceSvc.Mark(c.Request.Context(), op, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.Created(c, result)
}

// ResetDay clear the roster and every session by hand.
// POST /api/v1/attendance/reset
func (h *AttendanceHandler) ResetDay(c *gin.Context) {
	if err := h.attendanceSvc.ResetDay(c.Request.Context()); err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, attendance.ErrNoActivity):
		response.BadRequest(c, 12001, "select an activity first")
	case errors.Is(err, attendance.ErrSessionLocked):
		response.Error(c, http.StatusConflict, 12002, "attendance session is locked")
	case errors.Is(err, attendance.ErrInvalidStatus):
		response.BadRequest(c, 12003, "invalid attendance status")
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 12004, "activity not found")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12005, "student not found")
	default:
		if !handleValidation(c, err) {
			response.InternalError(c)
		}
	}
}
