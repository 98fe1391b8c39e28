package persistent

import (
	"horeca-board/pkg/models"
	"horeca-board/services/banner/internal/entity"
)

func ToBannerEntity(m *models.Banner) *entity.Banner {
	if m == nil {
		return nil
	}

	return &entity.Banner{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Link:        m.Link,
		Status:      entity.Status(m.Status),
		IsActive:    m.IsActive,
		Priority:    m.Priority,
		StartsAt:    m.StartsAt,
		ExpiresAt:   m.ExpiresAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToBannerModel(e *entity.Banner) *models.Banner {
	if e == nil {
		return nil
	}

	return &models.Banner{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		Link:        e.Link,
		Status:      string(e.Status),
		IsActive:    e.IsActive,
		Priority:    e.Priority,
		StartsAt:    e.StartsAt,
		ExpiresAt:   e.ExpiresAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toBannerEntities(rows []models.Banner) []*entity.Banner {
	banners := make([]*entity.Banner, len(rows))
	for i := range rows {
		banners[i] = ToBannerEntity(&rows[i])
	}
	return banners
}
