package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pptq-absensi/internal/model"
)

// Repository aggregates every repository.
type Repository struct {
	Student    StudentRepository
	Supervisor SupervisorRepository
	Class      CrudRepository[model.Class]
	Activity   ActivityRepository
	Incident   IncidentRepository
	Health     HealthRepository
	Attendance AttendanceRepository
	Admin      AdminRepository

	db *gorm.DB
}

// NewRepository wires every repository onto db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Student:    NewStudentRepo(db),
		Supervisor: NewSupervisorRepo(db),
		Class:      NewCrudRepo[model.Class](db, "nama_kelas ASC"),
		Activity:   NewActivityRepo(db),
		Incident:   NewIncidentRepo(db),
		Health:     NewHealthRepo(db),
		Attendance: NewAttendanceRepo(db),
		Admin:      NewAdminRepo(db),
		db:         db,
	}
}

// SequenceTables tables whose id sequence follows imported ids.
var SequenceTables = []string{
	"students", "supervisors", "classes", "activities",
	"incidents", "health_records", "attendance_records", "admins",
}

// ResetSequences moves every id sequence past the largest stored id, so rows
// inserted with explicit ids do not collide with later autoincrement inserts.
func (r *Repository) ResetSequences(ctx context.Context) error {
	for _, table := range SequenceTables {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
			table,
		)
		if err := r.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("reset sequence of %s: %w", table, err)
		}
	}
	return nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
