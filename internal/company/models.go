package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model untuk tabel companies (pihak pengiklan)
type Company struct {
	ID              string    `json:"id"              gorm:"column:id;primaryKey"`
	BusinessName    string    `json:"businessName"    gorm:"column:business_name"`
	Email           string    `json:"email"           gorm:"column:email"`
	PasswordHash    string    `json:"-"               gorm:"column:password_hash"`
	ContactNumber   string    `json:"contactNumber"   gorm:"column:contact_number"`
	IsEmailVerified bool      `json:"isEmailVerified" gorm:"column:is_email_verified"`
	CreatedAt       time.Time `json:"createdAt"       gorm:"column:created_at"`
	UpdatedAt       time.Time `json:"updatedAt"       gorm:"column:updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

func (co *Company) BeforeCreate(tx *gorm.DB) error {
	if co.ID == "" {
		co.ID = uuid.NewString()
	}
	return nil
}

// Model untuk tabel admins (cuma dipakai login + verifikasi manual)
type Admin struct {
	ID           string    `json:"id"        gorm:"column:id;primaryKey"`
	FullName     string    `json:"fullName"  gorm:"column:full_name"`
	Email        string    `json:"email"     gorm:"column:email"`
	PasswordHash string    `json:"-"         gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
