package persistent

import (
	"horeca-board/pkg/access"
	"horeca-board/pkg/models"
	"horeca-board/services/auth/internal/entity"
)

func ToUserEntity(m *models.User) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func ToUserModel(e *entity.User) *models.User {
	if e == nil {
		return nil
	}

	return &models.User{
		ID:           e.ID,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
	}
}

func ToProfileEntity(m *models.Profile) *entity.Profile {
	if m == nil {
		return nil
	}

	return &entity.Profile{
		ID:         m.ID,
		Email:      m.Email,
		Role:       access.Role(m.Role),
		Name:       m.Name,
		Phone:      m.Phone,
		City:       m.City,
		Experience: m.Experience,
		Skills:     m.Skills,
		ResumeURL:  m.ResumeURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToProfileModel(e *entity.Profile) *models.Profile {
	if e == nil {
		return nil
	}

	return &models.Profile{
		ID:         e.ID,
		Email:      e.Email,
		Role:       string(e.Role),
		Name:       e.Name,
		Phone:      e.Phone,
		City:       e.City,
		Experience: e.Experience,
		Skills:     e.Skills,
		ResumeURL:  e.ResumeURL,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
