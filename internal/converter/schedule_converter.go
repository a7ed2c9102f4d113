package converter

import (
	"careslot/internal/delivery/dto"
	"careslot/internal/domain/entity"
)

// ScheduleToResponse converts a WeeklySchedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.WeeklySchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	slots := make([]dto.TimeSlotResponse, len(schedule.TimeSlots))
	for i, slot := range schedule.TimeSlots {
		slots[i] = dto.TimeSlotResponse{
			StartTime: entity.NormalizeClockTime(slot.StartTime),
			Available: slot.Available,
		}
	}

	return &dto.ScheduleResponse{
		ID:              schedule.ID,
		DoctorID:        schedule.DoctorID,
		CenterID:        schedule.CenterID,
		DayOfWeek:       schedule.DayOfWeek,
		IsAvailable:     schedule.IsAvailable,
		TimeSlots:       slots,
		ConsultationFee: schedule.ConsultationFee,
		CreatedAt:       schedule.CreatedAt,
		UpdatedAt:       schedule.UpdatedAt,
	}
}

// SchedulesToResponses converts a slice of WeeklySchedule entities
func SchedulesToResponses(schedules []entity.WeeklySchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		if resp := ScheduleToResponse(&schedule); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
