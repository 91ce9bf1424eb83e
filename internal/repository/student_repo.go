package repository

import (
	"context"

	"gorm.io/gorm"

	"pptq-absensi/internal/model"
)

// StudentRepository roster data access.
type StudentRepository interface {
	CrudRepository[model.Student]
	GetByNomorInduk(ctx context.Context, nomorInduk string) (*model.Student, error)
	// UpdateAttendance writes only the transient session fields of one student.
	UpdateAttendance(ctx context.Context, id uint, status, waktu, keterangan *string) error
	// ResetAttendance clears the transient fields of every student in one statement.
	ResetAttendance(ctx context.Context) (int64, error)
}

type studentRepo struct {
	CrudRepository[model.Student]
	db *gorm.DB
}

// NewStudentRepo creates a StudentRepository.
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{
		CrudRepository: NewCrudRepo[model.Student](db, "kelas ASC, nama ASC"),
		db:             db,
	}
}

func (r *studentRepo) GetByNomorInduk(ctx context.Context, nomorInduk string) (*model.Student, error) {
	var s model.Student
	err := r.db.WithContext(ctx).
		Where("nomor_induk = ?", nomorInduk).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) UpdateAttendance(ctx context.Context, id uint, status, waktu, keterangan *string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"waktu":      waktu,
			"keterangan": keterangan,
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *studentRepo) ResetAttendance(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("status IS NOT NULL OR waktu IS NOT NULL OR keterangan IS NOT NULL").
		Updates(map[string]interface{}{
			"status":     nil,
			"waktu":      nil,
			"keterangan": nil,
		})
	return res.RowsAffected, res.Error
}
