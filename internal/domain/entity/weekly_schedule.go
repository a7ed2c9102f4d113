package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WeeklySchedule is one entry of a doctor's recurring weekly template.
// CenterID is nil for entries that apply regardless of center.
// At most one active entry exists per (doctor, center, day_of_week);
// the database enforces that with a unique index.
type WeeklySchedule struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	CenterID        *uuid.UUID      `gorm:"type:uuid;index" json:"center_id,omitempty"`
	DayOfWeek       int             `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	IsAvailable     bool            `gorm:"not null;default:true" json:"is_available"`
	TimeSlots       TimeSlotList    `gorm:"type:jsonb" json:"time_slots"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Center *MedicalCenter `gorm:"foreignKey:CenterID" json:"center,omitempty"`
}

func (WeeklySchedule) TableName() string {
	return "weekly_schedules"
}

// OpenSlotTimes returns the entry's candidate start times, normalized to
// HH:MM, with explicitly unavailable or malformed slots dropped.
// Order is preserved; callers sort when they need chronological order.
func (s *WeeklySchedule) OpenSlotTimes() []string {
	times := make([]string, 0, len(s.TimeSlots))
	for _, slot := range s.TimeSlots {
		if !slot.IsAvailable() {
			continue
		}
		if t := NormalizeClockTime(slot.StartTime); t != "" {
			times = append(times, t)
		}
	}
	return times
}
