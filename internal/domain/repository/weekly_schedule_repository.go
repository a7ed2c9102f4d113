package repository

import (
	"careslot/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeeklyScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.WeeklySchedule) error
	FindByID(db *gorm.DB, id int) (*entity.WeeklySchedule, error)
	// FindByDoctor returns all template entries for a doctor, optionally
	// restricted to a center (NULL-center entries always match).
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID, centerID *uuid.UUID) ([]entity.WeeklySchedule, error)
	// FindAvailableByDoctor is FindByDoctor restricted to is_available entries.
	FindAvailableByDoctor(db *gorm.DB, doctorID uuid.UUID, centerID *uuid.UUID) ([]entity.WeeklySchedule, error)
	// FindForDay resolves the authoritative entry for one weekday.
	// A center-specific entry wins over the NULL-center entry.
	FindForDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int, centerID *uuid.UUID) (*entity.WeeklySchedule, error)
	Update(db *gorm.DB, schedule *entity.WeeklySchedule) error
	Delete(db *gorm.DB, id int) (int64, error)
}
