package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch st := ApplicationStatus(s); st {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return st, true
	}
	return "", false
}

const maxMessageLength = 2000

type Application struct {
	ID        string            `json:"id"`
	JobID     string            `json:"job_id"`
	UserID    string            `json:"user_id"`
	Status    ApplicationStatus `json:"status"`
	Message   string            `json:"message,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Job       *Job              `json:"job,omitempty"`
}

// NewApplication checks that the job is open before building a pending application.
func NewApplication(job *Job, userID, message string) (*Application, error) {
	if !job.IsOpen() {
		return nil, ErrJobClosed
	}
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, fmt.Errorf("%w: message must be at most %d characters", ErrValidation, maxMessageLength)
	}
	return &Application{
		JobID:   job.ID,
		UserID:  userID,
		Status:  ApplicationPending,
		Message: message,
	}, nil
}

// Decide accepts or rejects a pending application. Repeating the same decision is a no-op.
func (a *Application) Decide(to ApplicationStatus) (bool, error) {
	if to != ApplicationAccepted && to != ApplicationRejected {
		return false, fmt.Errorf("%w: cannot decide %s", ErrValidation, to)
	}
	switch a.Status {
	case to:
		return false, nil
	case ApplicationPending:
		a.Status = to
		return true, nil
	}
	return false, fmt.Errorf("%w: application is %s", ErrInvalidTransition, a.Status)
}
