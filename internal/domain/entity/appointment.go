package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// AppointmentTypeDefault is used when a booking request carries no type
const AppointmentTypeDefault = "consultation"

// DefaultDurationMinutes is used when a booking request carries no duration
const DefaultDurationMinutes = 30

// Appointment represents a booked consultation slot.
// AppointmentTime is stored with seconds precision by the time column but
// all comparisons happen on the HH:MM normalization.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	CenterID           *uuid.UUID        `gorm:"type:uuid;index" json:"center_id,omitempty"`
	AppointmentDate    time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime    string            `gorm:"type:time;not null" json:"appointment_time"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	AppointmentType    string            `gorm:"type:varchar(50);not null;default:'consultation'" json:"appointment_type"`
	Symptoms           string            `gorm:"type:text" json:"symptoms,omitempty"`
	DurationMinutes    int               `gorm:"not null;default:30" json:"duration_minutes"`
	ConsultationFee    decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Center  *MedicalCenter `gorm:"foreignKey:CenterID" json:"center,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ActiveStatuses are the statuses that occupy a slot.
// Cancelled and no-show appointments release the slot.
func ActiveStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusConfirmed}
}

// OccupiesSlot reports whether the appointment blocks its slot
func (a *Appointment) OccupiesSlot() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}

// IsTerminal reports whether no further transition is allowed
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// CanTransitionTo validates the status state machine:
// scheduled -> confirmed -> completed, and scheduled/confirmed may be
// cancelled or marked no_show. Terminal states allow nothing.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled:
		return next == AppointmentStatusConfirmed ||
			next == AppointmentStatusCancelled ||
			next == AppointmentStatusNoShow
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted ||
			next == AppointmentStatusCancelled ||
			next == AppointmentStatusNoShow
	}
	return false
}
