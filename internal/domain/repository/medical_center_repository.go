package repository

import (
	"careslot/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalCenterRepository interface {
	Create(db *gorm.DB, center *entity.MedicalCenter) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalCenter, error)
	FindAll(db *gorm.DB) ([]entity.MedicalCenter, error)
	Update(db *gorm.DB, center *entity.MedicalCenter) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
