package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type TimeSlotRequest struct {
	StartTime string `json:"start_time" validate:"required,clocktime"`
	Available *bool  `json:"is_available" validate:"omitempty"`
}

type CreateScheduleRequest struct {
	DoctorID        *uuid.UUID        `json:"doctor_id" validate:"omitempty"` // admins only; doctors create their own
	CenterID        *uuid.UUID        `json:"center_id" validate:"omitempty"`
	DayOfWeek       *int              `json:"day_of_week" validate:"required,gte=0,lte=6"` // 0=Sunday .. 6=Saturday
	IsAvailable     *bool             `json:"is_available" validate:"omitempty"`
	TimeSlots       []TimeSlotRequest `json:"time_slots" validate:"required,min=1,dive"`
	ConsultationFee decimal.Decimal   `json:"consultation_fee" validate:"omitempty"`
}

type UpdateScheduleRequest struct {
	IsAvailable     *bool             `json:"is_available" validate:"omitempty"`
	TimeSlots       []TimeSlotRequest `json:"time_slots" validate:"omitempty,min=1,dive"`
	ConsultationFee *decimal.Decimal  `json:"consultation_fee" validate:"omitempty"`
}

// Response DTOs

type TimeSlotResponse struct {
	StartTime string `json:"start_time"`
	Available *bool  `json:"is_available,omitempty"`
}

type ScheduleResponse struct {
	ID              int                `json:"id"`
	DoctorID        uuid.UUID          `json:"doctor_id"`
	CenterID        *uuid.UUID         `json:"center_id,omitempty"`
	DayOfWeek       int                `json:"day_of_week"`
	IsAvailable     bool               `json:"is_available"`
	TimeSlots       []TimeSlotResponse `json:"time_slots"`
	ConsultationFee decimal.Decimal    `json:"consultation_fee"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
