package service

import (
	"context"

	"go.uber.org/zap"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
	"pptq-absensi/internal/report"
	"pptq-absensi/internal/repository"
)

// HistoryLimit records of each kind shown in a student's history.
const HistoryLimit = 5

// RosterService roster queries beyond plain CRUD.
type RosterService interface {
	List(ctx context.Context, q *dto.StudentListQuery) ([]model.Student, error)
	History(ctx context.Context, id uint) (*dto.StudentHistory, error)
}

type rosterService struct {
	repo     *repository.Repository
	students EntityService[model.Student]
	logger   *zap.Logger
}

// NewRosterService creates a RosterService.
func NewRosterService(repo *repository.Repository, students EntityService[model.Student], logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, students: students, logger: logger}
}

func (s *rosterService) List(ctx context.Context, q *dto.StudentListQuery) ([]model.Student, error) {
	all, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.FilterRoster(all, q.Kelas, q.Q), nil
}

func (s *rosterService) History(ctx context.Context, id uint) (*dto.StudentHistory, error) {
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	incidents, err := s.repo.Incident.ListByStudent(ctx, id, HistoryLimit)
	if err != nil {
		s.logger.Error("load incident history failed", zap.Uint("santri_id", id), zap.Error(err))
		return nil, err
	}
	health, err := s.repo.Health.ListByStudent(ctx, id, HistoryLimit)
	if err != nil {
		s.logger.Error("load health history failed", zap.Uint("santri_id", id), zap.Error(err))
		return nil, err
	}
	attendance, err := s.repo.Attendance.ListByStudent(ctx, id, HistoryLimit)
	if err != nil {
		s.logger.Error("load attendance history failed", zap.Uint("santri_id", id), zap.Error(err))
		return nil, err
	}

	return &dto.StudentHistory{
		Student:    st,
		Incidents:  nonNil(incidents),
		Health:     nonNil(health),
		Attendance: nonNil(attendance),
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
