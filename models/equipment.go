package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EquipmentLine represents one catalog item within an offer.
//
// PurchasePrice and Margin are confidential: they are pointer fields so the
// client-facing render path can remove them outright instead of zeroing them.
type EquipmentLine struct {
	ID      string `gorm:"type:uuid;primarykey" json:"id"`
	OfferID string `gorm:"type:uuid;not null;index" json:"offer_id"`

	Position       int     `gorm:"not null;default:0" json:"position"`
	Title          string  `gorm:"not null" json:"title"`
	Quantity       int     `gorm:"not null;default:1" json:"quantity"`
	MonthlyPayment float64 `gorm:"not null;default:0" json:"monthly_payment"`

	// Internal-only figures
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	Margin        *float64 `json:"margin,omitempty"`

	Attributes     []EquipmentAttribute     `gorm:"foreignKey:EquipmentLineID" json:"attributes,omitempty"`
	Specifications []EquipmentSpecification `gorm:"foreignKey:EquipmentLineID" json:"specifications,omitempty"`
}

// BeforeCreate hook to generate UUID
func (e *EquipmentLine) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for EquipmentLine model
func (EquipmentLine) TableName() string {
	return "equipment_lines"
}

// EquipmentAttribute is one (key, value) entry of a line's open-ended
// attribute bag (e.g. color, keyboard layout)
type EquipmentAttribute struct {
	ID              string `gorm:"type:uuid;primarykey" json:"id"`
	EquipmentLineID string `gorm:"type:uuid;not null;index" json:"equipment_line_id"`
	Position        int    `gorm:"not null;default:0" json:"position"`
	Key             string `gorm:"not null" json:"key"`
	Value           string `gorm:"not null" json:"value"`
}

// BeforeCreate hook to generate UUID
func (a *EquipmentAttribute) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for EquipmentAttribute model
func (EquipmentAttribute) TableName() string {
	return "equipment_attributes"
}

// EquipmentSpecification is one (key, value) entry of a line's technical
// specification bag (e.g. RAM, storage)
type EquipmentSpecification struct {
	ID              string `gorm:"type:uuid;primarykey" json:"id"`
	EquipmentLineID string `gorm:"type:uuid;not null;index" json:"equipment_line_id"`
	Position        int    `gorm:"not null;default:0" json:"position"`
	Key             string `gorm:"not null" json:"key"`
	Value           string `gorm:"not null" json:"value"`
}

// BeforeCreate hook to generate UUID
func (s *EquipmentSpecification) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for EquipmentSpecification model
func (EquipmentSpecification) TableName() string {
	return "equipment_specifications"
}
