package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is an address book entry (agents, forwarders, inspectors).
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);column:name;not null" json:"name"`
	Details   string    `gorm:"type:text;column:details" json:"details"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (c *Contact) TableName() string {
	return "contacts"
}

func (c *Contact) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Note is a free-text note not tied to any shipment.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);column:name;not null" json:"name"`
	Notes     string    `gorm:"type:text;column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (n *Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// ContactRequest is the body for creating or updating a contact.
type ContactRequest struct {
	Name    *string `json:"name"`
	Details *string `json:"details"`
}

// NoteRequest is the body for creating or updating a note.
type NoteRequest struct {
	Name  *string `json:"name"`
	Notes *string `json:"notes"`
}
