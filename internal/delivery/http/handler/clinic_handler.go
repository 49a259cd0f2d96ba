package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"clinic-directory/internal/delivery/dto"
	"clinic-directory/internal/domain/entity"
	"clinic-directory/internal/usecase"
	"clinic-directory/pkg/response"
	"clinic-directory/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
	validator     *validator.CustomValidator
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase, validator *validator.CustomValidator) *ClinicHandler {
	return &ClinicHandler{
		clinicUsecase: clinicUsecase,
		validator:     validator,
	}
}

func (h *ClinicHandler) CreateClinic(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	req.Normalize()
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.CreateClinic(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicCodeExists:
			response.Conflict(w, "Clinic code already exists")
		default:
			response.InternalServerError(w, "Failed to create clinic")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Clinic created successfully", clinic)
}

func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	clinic, err := h.clinicUsecase.GetClinic(r.Context(), clinicID)
	if err != nil {
		if err == usecase.ErrClinicNotFound {
			response.NotFound(w, "Clinic not found")
			return
		}
		response.InternalServerError(w, "Failed to get clinic")
		return
	}

	response.Success(w, http.StatusOK, "Clinic retrieved successfully", clinic)
}

// GetAllClinics lists clinics, narrowed by any of the query parameters
// clinic_code, name, doctor_name, address, phone and services (comma separated).
func (h *ClinicHandler) GetAllClinics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.ClinicFilter{
		ClinicCode: strings.TrimSpace(query.Get("clinic_code")),
		Name:       strings.TrimSpace(query.Get("name")),
		DoctorName: strings.TrimSpace(query.Get("doctor_name")),
		Address:    strings.TrimSpace(query.Get("address")),
		Phone:      strings.TrimSpace(query.Get("phone")),
		Services:   dto.ParseServices(query["services"]...),
	}

	clinics, err := h.clinicUsecase.ListClinics(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get clinics")
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}

func (h *ClinicHandler) SearchClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicUsecase.SearchClinics(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.InternalServerError(w, "Failed to search clinics")
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}
