package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Job struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	EmployerID  string         `gorm:"type:uuid;not null;index" json:"employer_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Company     string         `gorm:"type:varchar(255)" json:"company"`
	Location    string         `gorm:"type:varchar(255)" json:"location"`
	Salary      string         `gorm:"type:varchar(100)" json:"salary"`
	Type        string         `gorm:"type:varchar(50)" json:"type"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	return nil
}

func (Job) TableName() string {
	return "jobs"
}

type Application struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	JobID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user" json:"job_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user;index" json:"user_id"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Job       *Job      `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (Application) TableName() string {
	return "applications"
}
