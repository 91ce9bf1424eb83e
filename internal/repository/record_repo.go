package repository

import (
	"context"

	"gorm.io/gorm"

	"pptq-absensi/internal/model"
)

// ActivityRepository activity data access.
type ActivityRepository interface {
	CrudRepository[model.Activity]
	ListActive(ctx context.Context) ([]model.Activity, error)
}

type activityRepo struct {
	CrudRepository[model.Activity]
	db *gorm.DB
}

// NewActivityRepo creates an ActivityRepository.
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{
		CrudRepository: NewCrudRepo[model.Activity](db, "jam_mulai ASC, id ASC"),
		db:             db,
	}
}

func (r *activityRepo) ListActive(ctx context.Context) ([]model.Activity, error) {
	var acts []model.Activity
	err := r.db.WithContext(ctx).
		Where("status = ?", model.ActivityActive).
		Order("jam_mulai ASC, id ASC").
		Find(&acts).Error
	return acts, err
}

// ── student-linked records ──

// IncidentRepository incident data access.
type IncidentRepository interface {
	CrudRepository[model.Incident]
	ListByStudent(ctx context.Context, santriID uint, limit int) ([]model.Incident, error)
}

// HealthRepository health record data access.
type HealthRepository interface {
	CrudRepository[model.HealthRecord]
	ListByStudent(ctx context.Context, santriID uint, limit int) ([]model.HealthRecord, error)
}

// AttendanceRepository attendance history data access. Rows are never updated.
type AttendanceRepository interface {
	CrudRepository[model.AttendanceRecord]
	ListByStudent(ctx context.Context, santriID uint, limit int) ([]model.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
}

// recordRepo adds the per-student history query to a CrudRepository.
type recordRepo[T any] struct {
	CrudRepository[T]
	db *gorm.DB
}

// Records are listed in insertion order so report filtering keeps a stable sequence.
const recordOrder = "id ASC"

func newRecordRepo[T any](db *gorm.DB) *recordRepo[T] {
	return &recordRepo[T]{
		CrudRepository: NewCrudRepo[T](db, recordOrder),
		db:             db,
	}
}

// ListByStudent newest first by date, then by insertion.
func (r *recordRepo[T]) ListByStudent(ctx context.Context, santriID uint, limit int) ([]T, error) {
	var items []T
	db := r.db.WithContext(ctx).
		Where("santri_id = ?", santriID).
		Order("tanggal DESC, id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&items).Error
	return items, err
}

// NewIncidentRepo creates an IncidentRepository.
func NewIncidentRepo(db *gorm.DB) IncidentRepository {
	return newRecordRepo[model.Incident](db)
}

// NewHealthRepo creates a HealthRepository.
func NewHealthRepo(db *gorm.DB) HealthRepository {
	return newRecordRepo[model.HealthRecord](db)
}

type attendanceRepo struct {
	*recordRepo[model.AttendanceRecord]
}

// NewAttendanceRepo creates an AttendanceRepository.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{recordRepo: newRecordRepo[model.AttendanceRecord](db)}
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	var recs []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("tanggal = ?", date).
		Order(recordOrder).
		Find(&recs).Error
	return recs, err
}
