// Package attendance holds the day's marking session, shared by every
// operator: which activity is being taken, whether it is locked, and how a
// mark becomes a history row.
package attendance

import (
	"fmt"
	"strings"
	"time"

	"pptq-absensi/internal/model"
	pkgerrors "pptq-absensi/pkg/errors"
)

// TimeLayout wall-clock stamp written to the roster and history.
const TimeLayout = "15:04"

var (
	ErrNoActivity    = fmt.Errorf("%w: select an activity first", pkgerrors.ErrValidation)
	ErrSessionLocked = fmt.Errorf("%w: attendance session is locked", pkgerrors.ErrValidation)
	ErrInvalidStatus = fmt.Errorf("%w: invalid attendance status", pkgerrors.ErrValidation)
)

// Session marking context of one day. The roster's transient fields always
// belong to its current activity.
type Session struct {
	Date         string `json:"date"`
	ActivityID   uint   `json:"activity_id,omitempty"`
	ActivityName string `json:"activity_name,omitempty"`
	Locked       bool   `json:"locked"`
	// SelectedBy and LockedBy name the operators behind the last change.
	SelectedBy string `json:"selected_by,omitempty"`
	LockedBy   string `json:"locked_by,omitempty"`
}

// NewSession an empty, unlocked session for date.
func NewSession(date string) *Session {
	return &Session{Date: date}
}

// HasActivity reports whether an activity is selected.
func (s *Session) HasActivity() bool {
	return s.ActivityID != 0
}

// Select makes act the current activity. It returns true when a different
// activity was already selected; the caller must then clear every roster
// entry's transient fields before any further mark.
// Re-selecting the current activity changes nothing, the lock included.
func (s *Session) Select(act *model.Activity) (resetRequired bool) {
	if s.ActivityID == act.ID && s.HasActivity() {
		s.ActivityName = act.Nama
		return false
	}
	resetRequired = s.HasActivity()
	s.ActivityID = act.ID
	s.ActivityName = act.Nama
	s.Locked = false
	s.LockedBy = ""
	return resetRequired
}

// Clear deselects the activity without touching the roster.
func (s *Session) Clear() {
	s.ActivityID = 0
	s.ActivityName = ""
	s.Locked = false
	s.LockedBy = ""
}

// Lock freezes the session. Locking twice is a no-op.
func (s *Session) Lock() error {
	if !s.HasActivity() {
		return ErrNoActivity
	}
	s.Locked = true
	return nil
}

// Mark applies status to st and returns the history row to append.
// On error st is left untouched.
func (s *Session) Mark(st *model.Student, status, note string, now time.Time) (*model.AttendanceRecord, error) {
	if !s.HasActivity() {
		return nil, ErrNoActivity
	}
	if s.Locked {
		return nil, ErrSessionLocked
	}
	if !model.IsAttendanceStatus(status) {
		return nil, ErrInvalidStatus
	}

	waktu := now.Format(TimeLayout)
	var keterangan *string
	if note = strings.TrimSpace(note); note != "" {
		keterangan = &note
	}

	st.Status = &status
	st.Waktu = &waktu
	st.Keterangan = keterangan

	return &model.AttendanceRecord{
		SantriID:   st.ID,
		SantriNama: st.Nama,
		Kelas:      st.Kelas,
		Status:     status,
		Waktu:      waktu,
		Tanggal:    now.Format("2006-01-02"),
		Kegiatan:   s.ActivityName,
		Keterangan: keterangan,
	}, nil
}
