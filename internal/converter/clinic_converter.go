package converter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"clinic-directory/internal/delivery/dto"
	"clinic-directory/internal/domain/entity"

	"github.com/google/uuid"
)

// ClinicToResponse converts a Clinic entity to ClinicResponse DTO
func ClinicToResponse(clinic *entity.Clinic) *dto.ClinicResponse {
	if clinic == nil {
		return nil
	}

	return &dto.ClinicResponse{
		ID:         clinic.ID,
		ClinicCode: clinic.ClinicCode,
		Name:       clinic.Name,
		DoctorName: clinic.DoctorName,
		Address:    clinic.Address,
		Phone:      clinic.Phone,
		Services:   clinic.ServiceLabels(),
		CreatedAt:  clinic.CreatedAt,
		UpdatedAt:  clinic.UpdatedAt,
	}
}

// ClinicsToResponses converts a slice of Clinic entities to slice of ClinicResponse DTOs
func ClinicsToResponses(clinics []entity.Clinic) []dto.ClinicResponse {
	responses := make([]dto.ClinicResponse, len(clinics))
	for i := range clinics {
		responses[i] = *ClinicToResponse(&clinics[i])
	}
	return responses
}

// CreateClinicRequestToEntity converts a normalized request into a new Clinic
func CreateClinicRequestToEntity(req *dto.CreateClinicRequest) *entity.Clinic {
	return &entity.Clinic{
		ClinicCode: req.ClinicCode,
		Name:       req.Name,
		DoctorName: req.DoctorName,
		Address:    req.Address,
		Phone:      req.Phone,
		Services:   entity.NewServiceList(req.Services...),
	}
}

// ClinicToCreateRequest is the request body that registers clinic with the API.
func ClinicToCreateRequest(clinic *entity.Clinic) *dto.CreateClinicRequest {
	return &dto.CreateClinicRequest{
		ClinicCode: clinic.ClinicCode,
		Name:       clinic.Name,
		DoctorName: clinic.DoctorName,
		Address:    clinic.Address,
		Phone:      clinic.Phone,
		Services:   dto.ServiceInput(clinic.ServiceLabels()),
	}
}

// ClinicRecord is a clinic as any data source sends it. Sources disagree on
// field names, so every known variant is captured and RecordToClinic picks one.
type ClinicRecord struct {
	ID            string             `json:"id"`
	ClinicCode    string             `json:"clinic_code"`
	ClinicCodeAlt string             `json:"clinicCode"`
	ClinicID      string             `json:"clinicId"`
	Name          string             `json:"name"`
	DoctorName    string             `json:"doctor_name"`
	DoctorNameAlt string             `json:"doctorName"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	Services      entity.ServiceList `json:"services"`
	CreatedAt     *time.Time         `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at"`
}

// RecordToClinic normalizes a record into the canonical Clinic. Server naming
// wins over client naming; an unparsable id is left as the zero UUID.
func RecordToClinic(rec *ClinicRecord) entity.Clinic {
	clinic := entity.Clinic{
		ClinicCode: firstNonEmpty(rec.ClinicCode, rec.ClinicCodeAlt, rec.ClinicID),
		Name:       rec.Name,
		DoctorName: firstNonEmpty(rec.DoctorName, rec.DoctorNameAlt),
		Address:    rec.Address,
		Phone:      rec.Phone,
		Services:   rec.Services,
	}
	if id, err := uuid.Parse(rec.ID); err == nil {
		clinic.ID = id
	}
	if rec.CreatedAt != nil {
		clinic.CreatedAt = *rec.CreatedAt
	}
	if rec.UpdatedAt != nil {
		clinic.UpdatedAt = *rec.UpdatedAt
	}
	return clinic
}

// DecodeClinics decodes a JSON array of clinic records in any naming variant.
func DecodeClinics(data []byte) ([]entity.Clinic, error) {
	var records []ClinicRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode clinics: %w", err)
	}
	clinics := make([]entity.Clinic, len(records))
	for i := range records {
		clinics[i] = RecordToClinic(&records[i])
	}
	return clinics, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
