package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer status constants
const (
	OfferStatusDraft    = "DRAFT"
	OfferStatusSent     = "SENT"
	OfferStatusAccepted = "ACCEPTED"
	OfferStatusRejected = "REJECTED"
)

// Offer represents a leasing proposal: a client, a set of equipment lines
// and the financial terms of the contract
type Offer struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID string  `gorm:"type:uuid;not null;index:idx_offer_company_status" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	LeaserID *string `gorm:"type:uuid" json:"leaser_id,omitempty"`
	Leaser   *Leaser `gorm:"foreignKey:LeaserID" json:"leaser,omitempty"`

	Status          string  `gorm:"not null;default:DRAFT;index:idx_offer_company_status" json:"status"`
	DurationMonths  *int    `json:"duration_months,omitempty"`
	AdditionalTerms *string `gorm:"type:text" json:"additional_terms,omitempty"`

	Equipment []EquipmentLine `gorm:"foreignKey:OfferID" json:"equipment,omitempty"`
}

// BeforeCreate hook to generate UUID
func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Offer model
func (Offer) TableName() string {
	return "offers"
}

// Reference returns the short identifier used in document filenames
// and on the cover page (first 8 characters of the offer id)
func (o *Offer) Reference() string {
	if len(o.ID) < 8 {
		return o.ID
	}
	return o.ID[:8]
}

// IsValidOfferStatus checks if the status is valid
func IsValidOfferStatus(status string) bool {
	validStatuses := []string{
		OfferStatusDraft,
		OfferStatusSent,
		OfferStatusAccepted,
		OfferStatusRejected,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}
