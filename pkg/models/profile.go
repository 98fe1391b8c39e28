package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the credential record. A profile row is created right after it,
// in a separate statement, so a user may exist without a profile.
type User struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

type Profile struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Role       string         `gorm:"type:varchar(20);not null;default:'job_seeker';index" json:"role"`
	Name       string         `gorm:"type:varchar(255)" json:"name"`
	Phone      string         `gorm:"type:varchar(50)" json:"phone"`
	City       string         `gorm:"type:varchar(100)" json:"city"`
	Experience string         `gorm:"type:text" json:"experience"`
	Skills     string         `gorm:"type:text" json:"skills"`
	ResumeURL  string         `gorm:"type:varchar(500)" json:"resume_url"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (Profile) TableName() string {
	return "profiles"
}
