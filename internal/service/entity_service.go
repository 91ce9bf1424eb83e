package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pptq-absensi/internal/model"
	"pptq-absensi/internal/repository"
	pkgerrors "pptq-absensi/pkg/errors"
)

// ── entity errors ──

var (
	ErrEntityNotFound     = errors.New("record not found")
	ErrEntityConflict     = errors.New("record already exists")
	ErrEntityIDChanged    = fmt.Errorf("%w: id cannot be changed", pkgerrors.ErrValidation)
	ErrStudentNotFound    = fmt.Errorf("%w: santri does not exist", pkgerrors.ErrValidation)
	ErrAdminPasswordEmpty = fmt.Errorf("%w: password is required", pkgerrors.ErrValidation)
)

// entity pointer constraint: every model exposes its primary key.
type entity[T any] interface {
	*T
	EntityID() uint
}

// EntityService CRUD over one entity kind.
type EntityService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	// Update loads the stored row, lets apply overlay the changes, then saves it.
	Update(ctx context.Context, id uint, apply func(*T) error) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// prepareFunc normalizes an item before it is written. existing is nil on create.
type prepareFunc[T any] func(ctx context.Context, item *T, existing *T) error

type entityService[T any, P entity[T]] struct {
	kind    string
	repo    repository.CrudRepository[T]
	prepare prepareFunc[T]
	logger  *zap.Logger
}

func newEntityService[T any, P entity[T]](kind string, repo repository.CrudRepository[T], prepare prepareFunc[T], logger *zap.Logger) EntityService[T] {
	return &entityService[T, P]{kind: kind, repo: repo, prepare: prepare, logger: logger}
}

func (s *entityService[T, P]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list failed", zap.String("kind", s.kind), zap.Error(err))
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *entityService[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id)
	}
	return item, nil
}

func (s *entityService[T, P]) Create(ctx context.Context, item *T) (*T, error) {
	if s.prepare != nil {
		if err := s.prepare(ctx, item, nil); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, s.translate(err, 0)
	}
	return item, nil
}

func (s *entityService[T, P]) Update(ctx context.Context, id uint, apply func(*T) error) (*T, error) {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id)
	}
	before := *cur

	if err := apply(cur); err != nil {
		if errors.Is(err, pkgerrors.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrValidation, err)
	}
	if P(cur).EntityID() != id {
		return nil, ErrEntityIDChanged
	}

	if s.prepare != nil {
		if err := s.prepare(ctx, cur, &before); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, cur); err != nil {
		return nil, s.translate(err, id)
	}
	return cur, nil
}

func (s *entityService[T, P]) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id)
	}
	return nil
}

// translate maps storage errors onto the entity error set and logs the rest.
func (s *entityService[T, P]) translate(err error, id uint) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s %d", ErrEntityNotFound, s.kind, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrEntityConflict, s.kind)
	}
	s.logger.Error("write failed", zap.String("kind", s.kind), zap.Uint("id", id), zap.Error(err))
	return err
}

// ── per-kind preparation ──

// prepareStudent keeps the session fields out of plain CRUD; only marking writes them.
func prepareStudent(_ context.Context, st *model.Student, existing *model.Student) error {
	st.NomorInduk = strings.TrimSpace(st.NomorInduk)
	st.Nama = strings.TrimSpace(st.Nama)
	st.Kelas = strings.TrimSpace(st.Kelas)
	if existing == nil {
		st.ClearAttendance()
		return nil
	}
	st.Status, st.Waktu, st.Keterangan = existing.Status, existing.Waktu, existing.Keterangan
	return nil
}

func prepareSupervisor(_ context.Context, sp *model.Supervisor, _ *model.Supervisor) error {
	sp.IDPembina = strings.TrimSpace(sp.IDPembina)
	if sp.Status == "" {
		sp.Status = "Aktif"
	}
	if sp.KelasDiampu == nil {
		sp.KelasDiampu = model.StringArray{}
	}
	return nil
}

func prepareActivity(_ context.Context, a *model.Activity, _ *model.Activity) error {
	if a.Status == "" {
		a.Status = model.ActivityActive
	}
	days := make(model.StringArray, 0, len(a.HariAktif))
	for _, d := range a.HariAktif {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			days = append(days, d)
		}
	}
	a.HariAktif = days
	return nil
}

func prepareAdmin(_ context.Context, a *model.Admin, existing *model.Admin) error {
	a.Username = strings.TrimSpace(a.Username)
	if a.Password == "" {
		if existing == nil {
			return ErrAdminPasswordEmpty
		}
		a.PasswordHash = existing.PasswordHash
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	a.Password = ""
	return nil
}

// studentRef resolves the denormalized name of a student-linked record and
// defaults its date to today.
type studentRef struct {
	students repository.StudentRepository
	today    func() string
}

func (r studentRef) resolve(ctx context.Context, santriID uint, nama, tanggal *string) error {
	st, err := r.students.GetByID(ctx, santriID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	*nama = st.Nama
	if *tanggal == "" {
		*tanggal = r.today()
	}
	return nil
}

func (r studentRef) prepareIncident(ctx context.Context, in *model.Incident, existing *model.Incident) error {
	if existing != nil && existing.SantriID == in.SantriID {
		if in.Tanggal == "" {
			in.Tanggal = existing.Tanggal
		}
		in.SantriNama = existing.SantriNama
		return nil
	}
	return r.resolve(ctx, in.SantriID, &in.SantriNama, &in.Tanggal)
}

func (r studentRef) prepareHealth(ctx context.Context, h *model.HealthRecord, existing *model.HealthRecord) error {
	if existing != nil && existing.SantriID == h.SantriID {
		if h.Tanggal == "" {
			h.Tanggal = existing.Tanggal
		}
		h.SantriNama = existing.SantriNama
		return nil
	}
	return r.resolve(ctx, h.SantriID, &h.SantriNama, &h.Tanggal)
}
