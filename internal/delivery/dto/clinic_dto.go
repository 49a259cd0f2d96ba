package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateClinicRequest struct {
	ClinicCode string       `json:"clinic_code" validate:"required,max=50"`
	Name       string       `json:"name" validate:"required,max=255"`
	DoctorName string       `json:"doctor_name" validate:"required,max=255"`
	Address    string       `json:"address" validate:"required"`
	Phone      string       `json:"phone" validate:"required,max=50"`
	Services   ServiceInput `json:"services" validate:"min=1,dive,required,max=100"`
}

// Normalize trims every text field. Call it before validation.
func (r *CreateClinicRequest) Normalize() {
	r.ClinicCode = strings.TrimSpace(r.ClinicCode)
	r.Name = strings.TrimSpace(r.Name)
	r.DoctorName = strings.TrimSpace(r.DoctorName)
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Services = ParseServices(r.Services...)
}

// ServiceInput accepts either a JSON array of strings or one comma-separated string.
type ServiceInput []string

func (s *ServiceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*s = ParseServices(joined)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("services must be a string or an array of strings: %w", err)
	}
	*s = ParseServices(list...)
	return nil
}

// ParseServices splits every value on commas, trims the parts and drops empty ones.
func ParseServices(values ...string) ServiceInput {
	services := ServiceInput{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				services = append(services, part)
			}
		}
	}
	return services
}

// Response DTOs

type ClinicResponse struct {
	ID         uuid.UUID `json:"id"`
	ClinicCode string    `json:"clinic_code"`
	Name       string    `json:"name"`
	DoctorName string    `json:"doctor_name"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	Services   []string  `json:"services"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ClinicListResponse struct {
	Clinics []ClinicResponse `json:"clinics"`
	Total   int              `json:"total"`
}
