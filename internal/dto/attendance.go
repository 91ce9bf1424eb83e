package dto

import "pptq-absensi/internal/model"

// ── attendance session ──

// SelectActivityRequest choose the activity attendance is taken for.
type SelectActivityRequest struct {
	ActivityID uint `json:"activity_id" binding:"required"`
}

// MarkRequest mark one student.
type MarkRequest struct {
	SantriID   uint   `json:"santri_id"  binding:"required"`
	Status     string `json:"status"     binding:"required,oneof=hadir tidak izin terlambat"`
	Keterangan string `json:"keterangan" binding:"max=500"`
}

// SessionResponse today's shared session.
type SessionResponse struct {
	Date         string           `json:"date"`
	ActivityID   uint             `json:"activity_id,omitempty"`
	ActivityName string           `json:"activity_name,omitempty"`
	Locked       bool             `json:"locked"`
	SelectedBy   string           `json:"selected_by,omitempty"`
	LockedBy     string           `json:"locked_by,omitempty"`
	Activities   []model.Activity `json:"activities"`
	ResetApplied bool             `json:"reset_applied,omitempty"`
}

// MarkResponse updated roster entry and the appended history row.
type MarkResponse struct {
	Student *model.Student          `json:"santri"`
	Record  *model.AttendanceRecord `json:"record"`
}
