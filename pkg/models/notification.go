package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationNewApplication    = "new_application"
	NotificationApplicationStatus = "application_status"
)

type Notification struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Type          string    `gorm:"type:varchar(50);not null" json:"type"`
	JobID         string    `gorm:"type:uuid" json:"job_id"`
	ApplicationID string    `gorm:"type:uuid" json:"application_id"`
	Message       string    `gorm:"type:text" json:"message"`
	Read          bool      `gorm:"not null;default:false;index" json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

func (Notification) TableName() string {
	return "notifications"
}
