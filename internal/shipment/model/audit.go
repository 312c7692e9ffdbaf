package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction identifies what happened to a shipment.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog is an append-only history entry. Entries outlive the shipment they describe.
type AuditLog struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ShipmentID string      `gorm:"type:varchar(100);column:shipment_id;index;not null" json:"shipmentId"`
	Action     AuditAction `gorm:"type:varchar(20);column:action;not null" json:"action"`
	Field      string      `gorm:"type:varchar(50);column:field" json:"field,omitempty"`
	Summary    string      `gorm:"type:text;column:summary;not null" json:"summary"`
	Timestamp  time.Time   `gorm:"column:timestamp;index;not null" json:"timestamp"`
}

func (a *AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
