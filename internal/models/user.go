package models

import (
	"time"
)

// AuthProvider tags how an account authenticates. Local accounts carry a
// password hash and go through email verification; google accounts are
// created pre-verified from the OAuth callback and have no usable password.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	Username     string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"type:varchar(255);not null" json:"-"`
	Provider     AuthProvider `gorm:"type:varchar(20);not null;default:'local'" json:"provider"`
	ProviderID   string       `gorm:"type:varchar(255)" json:"-"`

	Verified              bool       `gorm:"not null;default:false" json:"verified"`
	VerificationToken     *string    `gorm:"type:varchar(10)" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`

	// XP is nullable on purpose: rows that predate the XP feature have no
	// value and are treated as constants.DefaultXP on first use.
	XP    *int   `json:"xp"`
	Theme string `gorm:"type:varchar(10);not null;default:'dark'" json:"theme"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Tasks      []Task      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Pets       []Pet       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	FocusTimes []FocusTime `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
