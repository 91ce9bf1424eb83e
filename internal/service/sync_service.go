package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
	"pptq-absensi/internal/repository"
	"pptq-absensi/pkg/storeclient"
)

// SnapshotSource is anything that can produce a full collection snapshot.
type SnapshotSource interface {
	FetchAll(ctx context.Context) (storeclient.Snapshot, error)
}

// SequenceResetter realigns id sequences after rows were written with explicit ids.
type SequenceResetter interface {
	ResetSequences(ctx context.Context) error
}

// SyncService copies a legacy store snapshot into the local database.
type SyncService interface {
	Pull(ctx context.Context) (*dto.SyncReport, error)
}

type syncService struct {
	source    SnapshotSource
	repo      *repository.Repository
	sequences SequenceResetter
	logger    *zap.Logger
}

// NewSyncService creates a SyncService.
func NewSyncService(source SnapshotSource, repo *repository.Repository, sequences SequenceResetter, logger *zap.Logger) SyncService {
	return &syncService{source: source, repo: repo, sequences: sequences, logger: logger}
}

func (s *syncService) Pull(ctx context.Context) (*dto.SyncReport, error) {
	snap, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.SyncReport{Collections: map[string]int{}}

	if err := pullCollection[model.Student](ctx, snap, storeclient.Santri, s.repo.Student, report, func(st *model.Student) error {
		st.ClearAttendance()
		return nil
	}); err != nil {
		return nil, err
	}
	if err := pullCollection[model.Supervisor](ctx, snap, storeclient.Pembina, s.repo.Supervisor, report, func(sp *model.Supervisor) error {
		return prepareSupervisor(ctx, sp, nil)
	}); err != nil {
		return nil, err
	}
	if err := pullCollection[model.Class](ctx, snap, storeclient.Kelas, s.repo.Class, report, nil); err != nil {
		return nil, err
	}
	if err := pullCollection[model.Activity](ctx, snap, storeclient.Kegiatan, s.repo.Activity, report, func(a *model.Activity) error {
		return prepareActivity(ctx, a, nil)
	}); err != nil {
		return nil, err
	}
	if err := pullCollection[model.Incident](ctx, snap, storeclient.Pelanggaran, s.repo.Incident, report, nil); err != nil {
		return nil, err
	}
	if err := pullCollection[model.HealthRecord](ctx, snap, storeclient.Kesehatan, s.repo.Health, report, nil); err != nil {
		return nil, err
	}
	if err := pullCollection[model.AttendanceRecord](ctx, snap, storeclient.AbsensiHistory, s.repo.Attendance, report, nil); err != nil {
		return nil, err
	}
	if err := s.pullAdmins(ctx, snap, report); err != nil {
		return nil, err
	}

	if err := s.sequences.ResetSequences(ctx); err != nil {
		s.logger.Error("reset sequences failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("legacy pull finished", zap.Any("collections", report.Collections))
	return report, nil
}

func (s *syncService) pullAdmins(ctx context.Context, snap storeclient.Snapshot, report *dto.SyncReport) error {
	// the legacy store keeps plaintext passwords; they are hashed on the way in
	var rows []model.Admin
	if err := snap.Decode(storeclient.Admin, &rows); err != nil {
		return err
	}
	admins := make([]model.Admin, 0, len(rows))
	for _, a := range rows {
		if a.Password == "" {
			return fmt.Errorf("admin %q has no password", a.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		a.PasswordHash = string(hash)
		a.Password = ""
		admins = append(admins, a)
	}
	if err := s.repo.Admin.Upsert(ctx, admins); err != nil {
		return fmt.Errorf("upsert %s: %w", storeclient.Admin, err)
	}
	report.Collections[storeclient.Admin] = len(admins)
	return nil
}

func pullCollection[T any](
	ctx context.Context,
	snap storeclient.Snapshot,
	name string,
	repo repository.CrudRepository[T],
	report *dto.SyncReport,
	fix func(*T) error,
) error {
	var items []T
	if err := snap.Decode(name, &items); err != nil {
		return err
	}
	if fix != nil {
		for i := range items {
			if err := fix(&items[i]); err != nil {
				return fmt.Errorf("%s row %d: %w", name, i, err)
			}
		}
	}
	if err := repo.Upsert(ctx, items); err != nil {
		return fmt.Errorf("upsert %s: %w", name, err)
	}
	report.Collections[name] = len(items)
	return nil
}
