package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID        `json:"patient_id" validate:"required"`
	DoctorID        uuid.UUID        `json:"doctor_id" validate:"required"`
	AppointmentDate string           `json:"appointment_date" validate:"required,dateymd"`
	AppointmentTime string           `json:"appointment_time" validate:"required,clocktime"`
	CenterID        *uuid.UUID       `json:"center_id" validate:"omitempty"`
	AppointmentType string           `json:"appointment_type" validate:"omitempty"`
	Symptoms        string           `json:"symptoms" validate:"omitempty"`
	DurationMinutes *int             `json:"duration" validate:"omitempty,gte=5,lte=240"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" validate:"required,dateymd"`
	AppointmentTime string `json:"appointment_time" validate:"required,clocktime"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	PatientID          uuid.UUID       `json:"patient_id"`
	DoctorID           uuid.UUID       `json:"doctor_id"`
	CenterID           *uuid.UUID      `json:"center_id,omitempty"`
	DoctorName         string          `json:"doctor_name,omitempty"`
	PatientName        string          `json:"patient_name,omitempty"`
	CenterName         string          `json:"center_name,omitempty"`
	AppointmentDate    string          `json:"appointment_date"`
	AppointmentTime    string          `json:"appointment_time"`
	Status             string          `json:"status"`
	AppointmentType    string          `json:"appointment_type"`
	Symptoms           string          `json:"symptoms,omitempty"`
	DurationMinutes    int             `json:"duration_minutes"`
	ConsultationFee    decimal.Decimal `json:"consultation_fee"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
