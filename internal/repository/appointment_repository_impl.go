package repository

import (
	"errors"
	"time"

	"careslot/internal/domain/entity"
	domainRepo "careslot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").Preload("Center").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").Preload("Center").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient.User").Preload("Center").
		Where("doctor_id = ?", doctorID)
	if !date.IsZero() {
		query = query.Where("appointment_date = ?", date.Format("2006-01-02"))
	}
	err := query.Order("appointment_date ASC, appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("doctor_id = ? AND appointment_date = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), entity.ActiveStatuses()).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindActiveAtSlot compares stored times at minute precision so a row
// persisted as 09:00:00 matches a requested 09:00.
func (r *appointmentRepository) FindActiveAtSlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeHHMM string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("doctor_id = ? AND appointment_date = ? AND to_char(appointment_time, 'HH24:MI') = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), timeHHMM, entity.ActiveStatuses()).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus transitions status atomically; affected rows 0 means the
// row left fromStatus between read and write.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, fromStatus, toStatus entity.AppointmentStatus, reason string) (int64, error) {
	updates := map[string]interface{}{"status": toStatus}
	if reason != "" {
		updates["cancellation_reason"] = reason
	}
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateSlot(db *gorm.DB, id uuid.UUID, date time.Time, timeHHMM string) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"appointment_date": date.Format("2006-01-02"),
			"appointment_time": timeHHMM,
		}).Error
}
