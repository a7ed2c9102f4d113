package converter

import (
	"careslot/internal/delivery/dto"
	"careslot/internal/domain/entity"
)

func CenterToResponse(center *entity.MedicalCenter) *dto.CenterResponse {
	if center == nil {
		return nil
	}

	return &dto.CenterResponse{
		ID:        center.ID,
		Name:      center.Name,
		Address:   center.Address,
		Phone:     center.Phone,
		Email:     center.Email,
		IsActive:  center.IsActive,
		CreatedAt: center.CreatedAt,
		UpdatedAt: center.UpdatedAt,
	}
}

func CentersToResponses(centers []entity.MedicalCenter) []dto.CenterResponse {
	responses := make([]dto.CenterResponse, len(centers))
	for i, center := range centers {
		if resp := CenterToResponse(&center); resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
