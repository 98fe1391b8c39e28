package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Banner rows are deleted permanently, so there is no DeletedAt column.
type Banner struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string    `gorm:"type:uuid;index" json:"user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:varchar(500);not null" json:"image_url"`
	Link        string    `gorm:"type:varchar(500);not null;default:'/'" json:"link"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	Priority    int       `gorm:"not null;default:0" json:"priority"`
	StartsAt    time.Time `gorm:"not null" json:"starts_at"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

func (Banner) TableName() string {
	return "banners"
}
