package repository

import (
	"clinic-directory/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClinicRepository interface {
	Create(db *gorm.DB, clinic *entity.Clinic) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Clinic, error)
	FindAll(db *gorm.DB, filter *entity.ClinicFilter) ([]entity.Clinic, error)
	Search(db *gorm.DB, term string) ([]entity.Clinic, error)
}
