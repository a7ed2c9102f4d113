package handler

import (
	"encoding/json"
	"net/http"

	"careslot/internal/delivery/dto"
	"careslot/internal/delivery/http/middleware"
	"careslot/internal/usecase"
	"careslot/pkg/response"
	"careslot/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CenterHandler struct {
	centerUsecase usecase.MedicalCenterUsecase
	validator     *validator.CustomValidator
}

func NewCenterHandler(centerUsecase usecase.MedicalCenterUsecase, validator *validator.CustomValidator) *CenterHandler {
	return &CenterHandler{
		centerUsecase: centerUsecase,
		validator:     validator,
	}
}

func (h *CenterHandler) CreateCenter(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	center, err := h.centerUsecase.CreateCenter(r.Context(), actorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCenterAlreadyExists:
			response.Error(w, http.StatusConflict, "Medical center name already exists", nil)
		default:
			response.InternalServerError(w, "Failed to create medical center")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medical center created successfully", center)
}

func (h *CenterHandler) GetAllCenters(w http.ResponseWriter, r *http.Request) {
	centers, err := h.centerUsecase.GetAllCenters(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get medical centers")
		return
	}

	response.Success(w, http.StatusOK, "Medical centers retrieved successfully", centers)
}

func (h *CenterHandler) GetCenter(w http.ResponseWriter, r *http.Request) {
	centerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid center ID", nil)
		return
	}

	center, err := h.centerUsecase.GetCenter(r.Context(), centerID)
	if err != nil {
		switch err {
		case usecase.ErrCenterNotFound:
			response.NotFound(w, "Medical center not found")
		default:
			response.InternalServerError(w, "Failed to get medical center")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical center retrieved successfully", center)
}

func (h *CenterHandler) UpdateCenter(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	centerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid center ID", nil)
		return
	}

	var req dto.UpdateCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	center, err := h.centerUsecase.UpdateCenter(r.Context(), actorID, centerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrCenterNotFound:
			response.NotFound(w, "Medical center not found")
		case usecase.ErrCenterAlreadyExists:
			response.Error(w, http.StatusConflict, "Medical center name already exists", nil)
		default:
			response.InternalServerError(w, "Failed to update medical center")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical center updated successfully", center)
}

func (h *CenterHandler) DeleteCenter(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	centerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid center ID", nil)
		return
	}

	if err := h.centerUsecase.DeleteCenter(r.Context(), actorID, centerID); err != nil {
		switch err {
		case usecase.ErrCenterNotFound:
			response.NotFound(w, "Medical center not found")
		default:
			response.InternalServerError(w, "Failed to delete medical center")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical center deleted successfully", nil)
}
