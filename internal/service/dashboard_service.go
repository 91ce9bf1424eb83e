package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
	"pptq-absensi/internal/repository"
)

// DashboardService today's overview.
type DashboardService interface {
	Today(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(repo *repository.Repository, now func() time.Time, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, now: now, logger: logger}
}

func (s *dashboardService) Today(ctx context.Context) (*dto.DashboardResponse, error) {
	now := s.now()
	date := now.Format("2006-01-02")

	acts, err := todayActivities(ctx, s.repo, now)
	if err != nil {
		s.logger.Error("load today's activities failed", zap.Error(err))
		return nil, err
	}
	total, err := s.repo.Student.Count(ctx)
	if err != nil {
		s.logger.Error("count students failed", zap.Error(err))
		return nil, err
	}
	records, err := s.repo.Attendance.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("load today's attendance failed", zap.Error(err))
		return nil, err
	}

	// a student marked in several activities counts once per status
	seen := map[string]map[uint]struct{}{
		model.StatusHadir: {},
		model.StatusTidak: {},
		model.StatusIzin:  {},
	}
	for _, r := range records {
		if set, ok := seen[r.Status]; ok {
			set[r.SantriID] = struct{}{}
		}
	}

	return &dto.DashboardResponse{
		Date:            date,
		Weekday:         model.WeekdayName(now.Weekday()),
		TodayActivities: acts,
		TotalSantri:     total,
		Hadir:           len(seen[model.StatusHadir]),
		Tidak:           len(seen[model.StatusTidak]),
		Izin:            len(seen[model.StatusIzin]),
	}, nil
}
