package repository

import (
	"context"

	"gorm.io/gorm"

	"pptq-absensi/internal/model"
)

// SupervisorRepository supervisor data access.
type SupervisorRepository interface {
	CrudRepository[model.Supervisor]
	GetByIDPembina(ctx context.Context, idPembina string) (*model.Supervisor, error)
}

type supervisorRepo struct {
	CrudRepository[model.Supervisor]
	db *gorm.DB
}

// NewSupervisorRepo creates a SupervisorRepository.
func NewSupervisorRepo(db *gorm.DB) SupervisorRepository {
	return &supervisorRepo{
		CrudRepository: NewCrudRepo[model.Supervisor](db, "nama ASC"),
		db:             db,
	}
}

func (r *supervisorRepo) GetByIDPembina(ctx context.Context, idPembina string) (*model.Supervisor, error) {
	var s model.Supervisor
	err := r.db.WithContext(ctx).
		Where("id_pembina = ?", idPembina).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AdminRepository admin account data access.
type AdminRepository interface {
	CrudRepository[model.Admin]
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
}

type adminRepo struct {
	CrudRepository[model.Admin]
	db *gorm.DB
}

// NewAdminRepo creates an AdminRepository.
func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{
		CrudRepository: NewCrudRepo[model.Admin](db, "username ASC"),
		db:             db,
	}
}

func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}
