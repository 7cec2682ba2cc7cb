package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User role constants
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents an operator of the platform. Credentials and sessions are
// handled by the upstream identity gateway; this record only carries the
// profile and role needed for authorization decisions.
type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null;uniqueIndex" json:"email"`
	Role     string `gorm:"not null;default:member" json:"role"`
	IsActive bool   `gorm:"not null" json:"is_active"`

	CompanyID string  `gorm:"type:uuid;not null;index" json:"company_id"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole checks if the role is valid
func IsValidRole(role string) bool {
	return role == RoleMember || role == RoleAdmin
}
