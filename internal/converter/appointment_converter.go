package converter

import (
	"careslot/internal/delivery/dto"
	"careslot/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
// Doctor/patient/center names are included when the relations are loaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		CenterID:           appointment.CenterID,
		AppointmentDate:    appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime:    entity.NormalizeClockTime(appointment.AppointmentTime),
		Status:             string(appointment.Status),
		AppointmentType:    appointment.AppointmentType,
		Symptoms:           appointment.Symptoms,
		DurationMinutes:    appointment.DurationMinutes,
		ConsultationFee:    appointment.ConsultationFee,
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	if appointment.Doctor.UserID != uuid.Nil {
		response.DoctorName = appointment.Doctor.User.FullName
	}
	if appointment.Patient.UserID != uuid.Nil {
		response.PatientName = appointment.Patient.User.FullName
	}
	if appointment.Center != nil {
		response.CenterName = appointment.Center.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		if resp := AppointmentToResponse(&appointment); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
