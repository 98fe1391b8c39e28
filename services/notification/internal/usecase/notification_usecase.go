package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/queue"
	"horeca-board/services/notification/internal/entity"
	"horeca-board/services/notification/internal/repo/persistent"
)

const (
	defaultListLimit = 10
	maxListLimit     = 50
)

// QueueInspector reports the backlog of the notification queue. *queue.Client satisfies it.
type QueueInspector interface {
	GetQueueLength() (int, error)
}

type NotificationUseCase interface {
	HandleTask(ctx context.Context, task queue.NotificationTask) error
	ListNotifications(ctx context.Context, actor *access.Identity, limit int) ([]*entity.Notification, error)
	UnreadCount(ctx context.Context, actor *access.Identity) (int64, error)
	MarkRead(ctx context.Context, actor *access.Identity, id string) error
	MarkAllRead(ctx context.Context, actor *access.Identity) (int64, error)
	QueueLength(ctx context.Context, actor *access.Identity) (int, error)
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	stream           Stream
	inspector        QueueInspector
	logger           *logger.Logger
}

func NewNotificationUseCase(
	notificationRepo persistent.NotificationRepository,
	stream Stream,
	inspector QueueInspector,
	logger *logger.Logger,
) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		stream:           stream,
		inspector:        inspector,
		logger:           logger,
	}
}

// HandleTask stores the notification and pushes it to live clients. Only a
// failed insert is reported back, so the broker redelivers without duplicating
// rows that were already written.
func (uc *notificationUseCase) HandleTask(ctx context.Context, task queue.NotificationTask) error {
	n, err := entity.FromTask(task)
	if err != nil {
		uc.logger.Warn("[NOTIFICATION HANDLER] Skipping task: %v", err)
		return nil
	}

	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if uc.stream != nil {
		payload, err := json.Marshal(n)
		if err != nil {
			uc.logger.Error("[NOTIFICATION HANDLER] Failed to marshal notification %s: %v", n.ID, err)
			return nil
		}
		if err := uc.stream.Publish(ctx, n.UserID, payload); err != nil {
			uc.logger.Warn("[NOTIFICATION HANDLER] Realtime push failed for user %s: %v", n.UserID, err)
		}
	}

	uc.logger.Info("[NOTIFICATION HANDLER] Stored %s notification %s for user %s", n.Type, n.ID, n.UserID)
	return nil
}

func (uc *notificationUseCase) ListNotifications(ctx context.Context, actor *access.Identity, limit int) ([]*entity.Notification, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return uc.notificationRepo.ListByUser(ctx, actor.UserID, limit)
}

func (uc *notificationUseCase) UnreadCount(ctx context.Context, actor *access.Identity) (int64, error) {
	if err := access.Authorize(actor); err != nil {
		return 0, err
	}
	return uc.notificationRepo.CountUnread(ctx, actor.UserID)
}

func (uc *notificationUseCase) MarkRead(ctx context.Context, actor *access.Identity, id string) error {
	if err := access.Authorize(actor); err != nil {
		return err
	}
	return uc.notificationRepo.MarkRead(ctx, id, actor.UserID)
}

func (uc *notificationUseCase) MarkAllRead(ctx context.Context, actor *access.Identity) (int64, error) {
	if err := access.Authorize(actor); err != nil {
		return 0, err
	}
	return uc.notificationRepo.MarkAllRead(ctx, actor.UserID)
}

func (uc *notificationUseCase) QueueLength(ctx context.Context, actor *access.Identity) (int, error) {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return 0, err
	}
	if uc.inspector == nil {
		return 0, fmt.Errorf("queue client is not available")
	}
	return uc.inspector.GetQueueLength()
}
