package persistent

import (
	"context"
	"errors"
	"fmt"

	"horeca-board/pkg/access"
	"horeca-board/pkg/database"
	"horeca-board/pkg/models"
	"horeca-board/services/auth/internal/entity"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	Update(ctx context.Context, id string, columns map[string]interface{}) error
	SetRole(ctx context.Context, id string, role access.Role) error
	List(ctx context.Context, role access.Role, limit, offset int) ([]*entity.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileModel := ToProfileModel(profile)
	if err := r.db.WithContext(ctx).Create(profileModel).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return entity.ErrEmailTaken
		}
		return err
	}
	*profile = *ToProfileEntity(profileModel)
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profileModel models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profileModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return ToProfileEntity(&profileModel), nil
}

func (r *profileRepository) Update(ctx context.Context, id string, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *profileRepository) SetRole(ctx context.Context, id string, role access.Role) error {
	return r.Update(ctx, id, map[string]interface{}{"role": string(role)})
}

// List returns profiles newest first. An empty role lists everyone.
func (r *profileRepository) List(ctx context.Context, role access.Role, limit, offset int) ([]*entity.Profile, error) {
	query := r.db.WithContext(ctx).Model(&models.Profile{})
	if role != "" {
		query = query.Where("role = ?", string(role))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var profileModels []models.Profile
	if err := query.Order("created_at DESC").Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*entity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = ToProfileEntity(&profileModels[i])
	}
	return profiles, nil
}
