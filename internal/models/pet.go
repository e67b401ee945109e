package models

import (
	"time"
)

type Pet struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Species   string    `gorm:"type:varchar(50);not null" json:"type"`
	Age       float64   `gorm:"not null;default:0" json:"age"`
	Hunger    int       `gorm:"not null;default:100" json:"hunger"`
	LastFed   time.Time `gorm:"not null" json:"last_fed"`
	Alive     bool      `gorm:"not null;default:true" json:"is_alive"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
