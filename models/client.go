package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a prospect or customer an offer is addressed to
type Client struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID string  `gorm:"type:uuid;not null;index" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	Name        string  `gorm:"not null" json:"name"`
	CompanyName *string `json:"company_name,omitempty"` // Name of the client's own business, if any
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

// BeforeCreate hook to generate UUID
func (cl *Client) BeforeCreate(tx *gorm.DB) error {
	if cl.ID == "" {
		cl.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}
