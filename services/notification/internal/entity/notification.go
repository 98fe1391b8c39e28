package entity

import (
	"errors"
	"fmt"
	"time"

	"horeca-board/pkg/models"
	"horeca-board/pkg/queue"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("notification not found")
)

// Notification is an in-app message about an application event.
type Notification struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	JobID         string    `json:"job_id"`
	ApplicationID string    `json:"application_id"`
	Message       string    `json:"message"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromTask turns a queued application event into the notification its
// recipient will see.
func FromTask(task queue.NotificationTask) (*Notification, error) {
	if task.UserID == "" || task.JobID == "" || task.ApplicationID == "" {
		return nil, fmt.Errorf("%w: user_id, job_id and application_id are required", ErrValidation)
	}

	title := task.JobTitle
	if title == "" {
		title = "your vacancy"
	}

	n := &Notification{
		UserID:        task.UserID,
		Type:          task.Type,
		JobID:         task.JobID,
		ApplicationID: task.ApplicationID,
		CreatedAt:     task.OccurredAt,
	}

	switch task.Type {
	case models.NotificationNewApplication:
		n.Message = fmt.Sprintf("New application for %q", title)
	case models.NotificationApplicationStatus:
		if task.Status == "" {
			n.Message = fmt.Sprintf("The status of your application for %q has changed", title)
		} else {
			n.Message = fmt.Sprintf("Your application for %q was %s", title, task.Status)
		}
	default:
		return nil, fmt.Errorf("%w: unknown notification type %q", ErrValidation, task.Type)
	}

	return n, nil
}
