package entity

import (
	"testing"

	"horeca-board/pkg/models"
	"horeca-board/pkg/queue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTask(t *testing.T) {
	tests := []struct {
		name string
		task queue.NotificationTask
		want string
	}{
		{
			name: "new application",
			task: queue.NotificationTask{Type: models.NotificationNewApplication, UserID: "e1", JobID: "j1", ApplicationID: "a1", JobTitle: "Barista"},
			want: `New application for "Barista"`,
		},
		{
			name: "accepted",
			task: queue.NotificationTask{Type: models.NotificationApplicationStatus, UserID: "s1", JobID: "j1", ApplicationID: "a1", JobTitle: "Waiter", Status: "accepted"},
			want: `Your application for "Waiter" was accepted`,
		},
		{
			name: "status without value",
			task: queue.NotificationTask{Type: models.NotificationApplicationStatus, UserID: "s1", JobID: "j1", ApplicationID: "a1", JobTitle: "Waiter"},
			want: `The status of your application for "Waiter" has changed`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := FromTask(tt.task)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Message)
			assert.Equal(t, tt.task.UserID, n.UserID)
			assert.False(t, n.Read)
		})
	}
}

func TestFromTask_Invalid(t *testing.T) {
	_, err := FromTask(queue.NotificationTask{Type: "like", UserID: "u1", JobID: "j1", ApplicationID: "a1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = FromTask(queue.NotificationTask{Type: models.NotificationNewApplication})
	assert.ErrorIs(t, err, ErrValidation)
}
