package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clinic is the canonical clinic record. Every field-naming variant coming from a
// data source is normalized into this shape before filtering or display.
type Clinic struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicCode string      `gorm:"column:clinic_code;type:varchar(50);uniqueIndex;not null" json:"clinic_code"`
	Name       string      `gorm:"type:varchar(255);not null;index" json:"name"`
	DoctorName string      `gorm:"column:doctor_name;type:varchar(255);not null" json:"doctor_name"`
	Address    string      `gorm:"type:text;not null" json:"address"`
	Phone      string      `gorm:"type:varchar(50);not null" json:"phone"`
	Services   ServiceList `gorm:"type:jsonb;not null" json:"services"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Clinic) TableName() string {
	return "clinics"
}

// ServiceLabels returns the display label of every service, in order.
func (c *Clinic) ServiceLabels() []string {
	labels := make([]string, len(c.Services))
	for i, s := range c.Services {
		labels[i] = ServiceLabel(s)
	}
	return labels
}

// Service is one service a clinic offers. Sources send either a plain string or
// an object carrying a name; both decode into the same value.
type Service struct {
	Name string
}

// ServiceLabel is the display label of a service regardless of the shape it arrived in.
func ServiceLabel(s Service) string {
	return strings.TrimSpace(s.Name)
}

// UnmarshalJSON accepts "Dental" as well as {"name": "Dental"}.
func (s *Service) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Name)
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("service must be a string or an object with a name: %w", err)
	}
	s.Name = obj.Name
	return nil
}

// MarshalJSON always writes the plain string form.
func (s Service) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name)
}

// ServiceList is stored as a JSONB array of strings
type ServiceList []Service

// NewServiceList builds a list from plain labels.
func NewServiceList(labels ...string) ServiceList {
	list := make(ServiceList, len(labels))
	for i, l := range labels {
		list[i] = Service{Name: l}
	}
	return list
}

// Value returns json value, implement driver.Valuer interface
func (l ServiceList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan scan value into ServiceList, implements sql.Scanner interface
func (l *ServiceList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result ServiceList
	err := json.Unmarshal(raw, &result)
	*l = result
	return err
}
