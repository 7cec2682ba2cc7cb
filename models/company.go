package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a tenant: the leasing business issuing offers
type Company struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name  string  `gorm:"not null" json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`

	// Branding
	PrimaryColor *string `gorm:"size:7" json:"primary_color,omitempty"` // Hex color, e.g. #1A5276
	LogoURL      *string `json:"logo_url,omitempty"`

	// Relationships
	Users   []User  `gorm:"foreignKey:CompanyID" json:"users,omitempty"`
	Clients []Client `gorm:"foreignKey:CompanyID" json:"clients,omitempty"`
	Offers  []Offer `gorm:"foreignKey:CompanyID" json:"offers,omitempty"`
}

// BeforeCreate hook to generate UUID
func (co *Company) BeforeCreate(tx *gorm.DB) error {
	if co.ID == "" {
		co.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Company model
func (Company) TableName() string {
	return "companies"
}
