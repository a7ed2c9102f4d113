package repository

import (
	"time"

	"careslot/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	// FindByDoctorAndDate returns the doctor's day sheet; when date is the
	// zero time, all of the doctor's appointments are returned.
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// FindActiveByDoctorAndDate returns scheduled/confirmed appointments
	// for a doctor on a calendar date; the only statuses that occupy slots.
	FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// FindActiveAtSlot returns scheduled/confirmed appointments at an exact
	// (doctor, date, HH:MM) tuple, comparing stored times at minute precision.
	FindActiveAtSlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeHHMM string) ([]entity.Appointment, error)
	// UpdateStatus transitions status only while the row is still in
	// fromStatus; returns affected rows so callers can detect lost races.
	UpdateStatus(db *gorm.DB, id uuid.UUID, fromStatus, toStatus entity.AppointmentStatus, reason string) (int64, error)
	// UpdateSlot moves an appointment to a new date and time.
	UpdateSlot(db *gorm.DB, id uuid.UUID, date time.Time, timeHHMM string) error
}
