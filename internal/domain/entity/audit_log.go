package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AuditLog represents a directory audit trail entry
type AuditLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Action     string    `gorm:"type:varchar(100);not null;index" json:"action"`
	EntityName string    `gorm:"column:entity_name;type:varchar(100);not null" json:"entity_name"`
	EntityID   string    `gorm:"column:entity_id;type:varchar(100);not null;index" json:"entity_id"`
	Metadata   JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
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

	result := map[string]interface{}{}
	err := json.Unmarshal(raw, &result)
	*j = JSON(result)
	return err
}

// Audit actions and entity names
const (
	AuditActionClinicCreate = "clinic.create"

	AuditEntityClinic = "clinic"
)

// AuditLogFilter narrows the audit trail. Empty fields match everything; a
// Limit of zero means no limit.
type AuditLogFilter struct {
	Action     string
	EntityName string
	EntityID   string
	Limit      int
}
