package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Leaser represents the financing partner backing an offer
type Leaser struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name *string `json:"name,omitempty"`
}

// BeforeCreate hook to generate UUID
func (l *Leaser) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Leaser model
func (Leaser) TableName() string {
	return "leasers"
}
