package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pptq-absensi/internal/attendance"
	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
	"pptq-absensi/internal/repository"
	pkgerrors "pptq-absensi/pkg/errors"
	"pptq-absensi/pkg/metrics"
)

var ErrActivityNotFound = fmt.Errorf("%w: kegiatan does not exist", pkgerrors.ErrValidation)

// AttendanceService drives the day's marking session. There is one session
// for every operator: a switch or lock by anyone applies to all of them, and
// operator only records who made the change.
type AttendanceService interface {
	Current(ctx context.Context, operator string) (*dto.SessionResponse, error)
	SelectActivity(ctx context.Context, operator string, activityID uint) (*dto.SessionResponse, error)
	ClearActivity(ctx context.Context, operator string) (*dto.SessionResponse, error)
	Mark(ctx context.Context, operator string, req *dto.MarkRequest) (*dto.MarkResponse, error)
	Lock(ctx context.Context, operator string) (*dto.SessionResponse, error)
	// ResetDay clears every roster entry and every stored session.
	ResetDay(ctx context.Context) error
}

type attendanceService struct {
	repo     *repository.Repository
	sessions attendance.Store
	metrics  *metrics.Metrics
	now      func() time.Time
	logger   *zap.Logger

	// mu orders session changes against marks. Marks share it; anything
	// that rewrites the session holds it exclusively.
	mu sync.RWMutex
}

// NewAttendanceService creates an AttendanceService. m may be nil.
func NewAttendanceService(repo *repository.Repository, sessions attendance.Store, m *metrics.Metrics, now func() time.Time, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, sessions: sessions, metrics: m, now: now, logger: logger}
}

func (s *attendanceService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *attendanceService) load(ctx context.Context) (*attendance.Session, error) {
	sess, err := s.sessions.Get(ctx, s.today())
	if err != nil {
		s.logger.Error("load session failed", zap.Error(err))
		return nil, err
	}
	return sess, nil
}

func (s *attendanceService) save(ctx context.Context, operator string, sess *attendance.Session) error {
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("save session failed", zap.String("operator", operator), zap.Error(err))
		return err
	}
	return nil
}

// ────── Current ──────

func (s *attendanceService) Current(ctx context.Context, _ string) (*dto.SessionResponse, error) {
	s.mu.RLock()
	sess, err := s.load(ctx)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, sess, false)
}

// ────── SelectActivity ──────

func (s *attendanceService) SelectActivity(ctx context.Context, operator string, activityID uint) (*dto.SessionResponse, error) {
	act, err := s.repo.Activity.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("load activity failed", zap.Uint("activity_id", activityID), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	prev := sess.ActivityID
	resetRequired := sess.Select(act)
	if prev != act.ID {
		sess.SelectedBy = operator
	}
	if resetRequired {
		n, err := s.repo.Student.ResetAttendance(ctx)
		if err != nil {
			s.logger.Error("reset roster failed", zap.Error(err))
			return nil, err
		}
		s.logger.Info("roster reset on activity switch",
			zap.String("operator", operator),
			zap.String("activity", act.Nama),
			zap.Int64("students", n),
		)
	}

	if err := s.save(ctx, operator, sess); err != nil {
		return nil, err
	}
	return s.respond(ctx, sess, resetRequired)
}

// ────── ClearActivity ──────

func (s *attendanceService) ClearActivity(ctx context.Context, operator string) (*dto.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sess.Clear()
	sess.SelectedBy = operator
	if err := s.save(ctx, operator, sess); err != nil {
		return nil, err
	}
	return s.respond(ctx, sess, false)
}

// ────── Mark ──────

// Mark updates the roster entry and appends the history row as two separate
// writes. If the append fails the roster update stays in place.
func (s *attendanceService) Mark(ctx context.Context, operator string, req *dto.MarkRequest) (*dto.MarkResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	// reject before touching storage
	if !sess.HasActivity() {
		return nil, attendance.ErrNoActivity
	}
	if sess.Locked {
		return nil, attendance.ErrSessionLocked
	}

	st, err := s.repo.Student.GetByID(ctx, req.SantriID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("load student failed", zap.Uint("santri_id", req.SantriID), zap.Error(err))
		return nil, err
	}

	rec, err := sess.Mark(st, req.Status, req.Keterangan, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Student.UpdateAttendance(ctx, st.ID, st.Status, st.Waktu, st.Keterangan); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("update roster entry failed", zap.Uint("santri_id", st.ID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Attendance.Create(ctx, rec); err != nil {
		s.logger.Error("append attendance history failed; roster entry already updated",
			zap.String("operator", operator),
			zap.Uint("santri_id", st.ID),
			zap.String("kegiatan", rec.Kegiatan),
			zap.Error(err),
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.MarksTotal.WithLabelValues(req.Status).Inc()
	}
	return &dto.MarkResponse{Student: st, Record: rec}, nil
}

// ────── Lock ──────

func (s *attendanceService) Lock(ctx context.Context, operator string) (*dto.SessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := sess.Lock(); err != nil {
		return nil, err
	}
	sess.LockedBy = operator
	if err := s.save(ctx, operator, sess); err != nil {
		return nil, err
	}
	s.logger.Info("attendance session locked",
		zap.String("operator", operator),
		zap.String("activity", sess.ActivityName),
	)
	return s.respond(ctx, sess, false)
}

// ────── ResetDay ──────

func (s *attendanceService) ResetDay(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.Student.ResetAttendance(ctx)
	if err != nil {
		s.logger.Error("daily roster reset failed", zap.Error(err))
		return err
	}
	if err := s.sessions.Reset(ctx); err != nil {
		s.logger.Error("daily session reset failed", zap.Error(err))
		return err
	}
	s.logger.Info("daily attendance reset", zap.Int64("students", n))
	return nil
}

// respond attaches today's schedule to the session view.
func (s *attendanceService) respond(ctx context.Context, sess *attendance.Session, reset bool) (*dto.SessionResponse, error) {
	acts, err := todayActivities(ctx, s.repo, s.now())
	if err != nil {
		s.logger.Error("load today's activities failed", zap.Error(err))
		return nil, err
	}
	return &dto.SessionResponse{
		Date:         sess.Date,
		ActivityID:   sess.ActivityID,
		ActivityName: sess.ActivityName,
		Locked:       sess.Locked,
		SelectedBy:   sess.SelectedBy,
		LockedBy:     sess.LockedBy,
		Activities:   acts,
		ResetApplied: reset,
	}, nil
}

// todayActivities active activities scheduled on now's weekday, earliest first.
func todayActivities(ctx context.Context, repo *repository.Repository, now time.Time) ([]model.Activity, error) {
	acts, err := repo.Activity.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Activity, 0, len(acts))
	for i := range acts {
		if acts[i].ScheduledOn(now.Weekday()) {
			out = append(out, acts[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].JamMulai < out[j].JamMulai })
	return out, nil
}
