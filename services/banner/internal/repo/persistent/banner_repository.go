package persistent

import (
	"context"
	"errors"
	"time"

	"horeca-board/pkg/models"
	"horeca-board/services/banner/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const displayOrder = "priority DESC, created_at DESC, id ASC"

type BannerRepository interface {
	Create(ctx context.Context, banner *entity.Banner) error
	GetByID(ctx context.Context, id string) (*entity.Banner, error)
	// ListActive returns approved, enabled banners that have not expired by now, including
	// ones scheduled to start later.
	ListActive(ctx context.Context, now time.Time) ([]*entity.Banner, error)
	ListByOwner(ctx context.Context, userID string) ([]*entity.Banner, error)
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.Banner, error)
	// TransitionStatus writes the new status only while the row is still in one of the from states.
	// It reports whether a row was updated.
	TransitionStatus(ctx context.Context, id string, from []entity.Status, to entity.Status, expiresAt *time.Time) (bool, error)
	AdjustPriority(ctx context.Context, id string, delta int) error
	ToggleActive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ExpireElapsed(ctx context.Context, now time.Time) (int64, error)
}

type bannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	m := ToBannerModel(banner)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*banner = *ToBannerEntity(m)
	return nil
}

func (r *bannerRepository) GetByID(ctx context.Context, id string) (*entity.Banner, error) {
	var m models.Banner
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToBannerEntity(&m), nil
}

func (r *bannerRepository) ListActive(ctx context.Context, now time.Time) ([]*entity.Banner, error) {
	var rows []models.Banner
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_active = ? AND expires_at >= ?", string(entity.StatusActive), true, now).
		Order(displayOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toBannerEntities(rows), nil
}

func (r *bannerRepository) ListByOwner(ctx context.Context, userID string) ([]*entity.Banner, error) {
	var rows []models.Banner
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBannerEntities(rows), nil
}

func (r *bannerRepository) ListByStatus(ctx context.Context, status entity.Status) ([]*entity.Banner, error) {
	var rows []models.Banner
	if err := r.db.WithContext(ctx).Where("status = ?", string(status)).Order(displayOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBannerEntities(rows), nil
}

func (r *bannerRepository) TransitionStatus(ctx context.Context, id string, from []entity.Status, to entity.Status, expiresAt *time.Time) (bool, error) {
	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}

	updates := map[string]interface{}{"status": string(to)}
	if expiresAt != nil {
		updates["expires_at"] = *expiresAt
	}

	res := r.db.WithContext(ctx).Model(&models.Banner{}).
		Where("id = ? AND status IN ?", id, states).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *bannerRepository) AdjustPriority(ctx context.Context, id string, delta int) error {
	res := r.db.WithContext(ctx).Model(&models.Banner{}).
		Where("id = ?", id).
		UpdateColumn("priority", clause.Expr{SQL: "priority + ?", Vars: []interface{}{delta}})
	return affectedOne(res)
}

func (r *bannerRepository) ToggleActive(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Banner{}).
		Where("id = ?", id).
		UpdateColumn("is_active", gorm.Expr("NOT is_active"))
	return affectedOne(res)
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	return affectedOne(r.db.WithContext(ctx).Delete(&models.Banner{}, "id = ?", id))
}

// ExpireElapsed persists the expired status for active rows whose window has closed.
func (r *bannerRepository) ExpireElapsed(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Banner{}).
		Where("status = ? AND expires_at < ?", string(entity.StatusActive), now).
		Update("status", string(entity.StatusExpired))
	return res.RowsAffected, res.Error
}

func affectedOne(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
