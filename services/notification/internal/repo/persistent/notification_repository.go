package persistent

import (
	"context"

	"horeca-board/pkg/models"
	"horeca-board/services/notification/internal/entity"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	m := toModel(n)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*n = *toEntity(m)
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	var rows []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Notification, len(rows))
	for i := range rows {
		out[i] = toEntity(&rows[i])
	}
	return out, nil
}

// MarkRead only touches the recipient's own row.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func toEntity(m *models.Notification) *entity.Notification {
	return &entity.Notification{
		ID:            m.ID,
		UserID:        m.UserID,
		Type:          m.Type,
		JobID:         m.JobID,
		ApplicationID: m.ApplicationID,
		Message:       m.Message,
		Read:          m.Read,
		CreatedAt:     m.CreatedAt,
	}
}

func toModel(e *entity.Notification) *models.Notification {
	return &models.Notification{
		ID:            e.ID,
		UserID:        e.UserID,
		Type:          e.Type,
		JobID:         e.JobID,
		ApplicationID: e.ApplicationID,
		Message:       e.Message,
		Read:          e.Read,
		CreatedAt:     e.CreatedAt,
	}
}
