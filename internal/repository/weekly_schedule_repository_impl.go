package repository

import (
	"errors"

	"careslot/internal/domain/entity"
	domainRepo "careslot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type weeklyScheduleRepository struct{}

func NewWeeklyScheduleRepository() domainRepo.WeeklyScheduleRepository {
	return &weeklyScheduleRepository{}
}

func (r *weeklyScheduleRepository) Create(db *gorm.DB, schedule *entity.WeeklySchedule) error {
	return db.Create(schedule).Error
}

func (r *weeklyScheduleRepository) FindByID(db *gorm.DB, id int) (*entity.WeeklySchedule, error) {
	var schedule entity.WeeklySchedule
	err := db.Preload("Doctor.User").Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *weeklyScheduleRepository) FindByDoctor(db *gorm.DB, doctorID uuid.UUID, centerID *uuid.UUID) ([]entity.WeeklySchedule, error) {
	var schedules []entity.WeeklySchedule
	query := db.Where("doctor_id = ?", doctorID)
	if centerID != nil {
		query = query.Where("center_id = ? OR center_id IS NULL", *centerID)
	}
	err := query.Order("day_of_week ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *weeklyScheduleRepository) FindAvailableByDoctor(db *gorm.DB, doctorID uuid.UUID, centerID *uuid.UUID) ([]entity.WeeklySchedule, error) {
	var schedules []entity.WeeklySchedule
	query := db.Where("doctor_id = ? AND is_available = ?", doctorID, true)
	if centerID != nil {
		query = query.Where("center_id = ? OR center_id IS NULL", *centerID)
	}
	err := query.Order("day_of_week ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindForDay resolves the authoritative entry for one weekday.
// With a center given, the center-specific row is preferred and the
// NULL-center row is the fallback; without one, the NULL-center row wins.
func (r *weeklyScheduleRepository) FindForDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int, centerID *uuid.UUID) (*entity.WeeklySchedule, error) {
	var schedule entity.WeeklySchedule
	query := db.Where("doctor_id = ? AND day_of_week = ?", doctorID, dayOfWeek)
	if centerID != nil {
		query = query.Where("center_id = ? OR center_id IS NULL", *centerID).
			Order("center_id ASC NULLS LAST")
	} else {
		query = query.Order("center_id ASC NULLS FIRST")
	}
	err := query.First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *weeklyScheduleRepository) Update(db *gorm.DB, schedule *entity.WeeklySchedule) error {
	return db.Omit("Doctor", "Center").Save(schedule).Error
}

func (r *weeklyScheduleRepository) Delete(db *gorm.DB, id int) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.WeeklySchedule{})
	return affected.RowsAffected, affected.Error
}
