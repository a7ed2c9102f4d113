package handler

import (
	"net/http"

	"careslot/internal/usecase"
	"careslot/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

// parseOptionalCenterID reads the center_id query parameter, if present.
func parseOptionalCenterID(r *http.Request) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get("center_id")
	if raw == "" {
		return nil, true
	}
	centerID, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &centerID, true
}

func (h *AvailabilityHandler) GetAvailableDates(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	centerID, ok := parseOptionalCenterID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid center ID", nil)
		return
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	dates, err := h.availabilityUsecase.ListAvailableDates(r.Context(), doctorID, centerID, startDate, endDate)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to get available dates")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available dates retrieved successfully", dates)
}

func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	centerID, ok := parseOptionalCenterID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid center ID", nil)
		return
	}

	slots, err := h.availabilityUsecase.ListAvailableSlots(r.Context(), doctorID, date, centerID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
