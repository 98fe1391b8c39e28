package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/s3"
	"horeca-board/services/auth/internal/entity"
	"horeca-board/services/auth/internal/repo/persistent"
)

const (
	defaultUserPageSize = 50
	maxUserPageSize     = 200
)

type ProfileUseCase interface {
	GetProfile(ctx context.Context, actor *access.Identity, id string) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, actor *access.Identity, patch entity.ProfilePatch) (*entity.Profile, error)
	UploadResume(ctx context.Context, actor *access.Identity, filename, contentType string, body io.Reader) (*entity.Profile, error)
	ListUsers(ctx context.Context, actor *access.Identity, role access.Role, limit, offset int) ([]*entity.Profile, error)
}

type profileUseCase struct {
	profileRepo persistent.ProfileRepository
	storage     s3.Storage
	logger      *logger.Logger
}

func NewProfileUseCase(profileRepo persistent.ProfileRepository, storage s3.Storage, logger *logger.Logger) ProfileUseCase {
	return &profileUseCase{
		profileRepo: profileRepo,
		storage:     storage,
		logger:      logger,
	}
}

// GetProfile lets users read their own profile. Employers read applicant
// profiles and staff read everyone's.
func (uc *profileUseCase) GetProfile(ctx context.Context, actor *access.Identity, id string) (*entity.Profile, error) {
	if err := access.AuthorizeOwner(actor, id, access.RoleEmployer, access.RoleAdmin, access.RoleModerator); err != nil {
		return nil, err
	}
	return uc.profileRepo.GetByID(ctx, id)
}

func (uc *profileUseCase) UpdateProfile(ctx context.Context, actor *access.Identity, patch entity.ProfilePatch) (*entity.Profile, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Update(ctx, actor.UserID, patch.Columns()); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, access.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return uc.profileRepo.GetByID(ctx, actor.UserID)
}

func (uc *profileUseCase) UploadResume(ctx context.Context, actor *access.Identity, filename, contentType string, body io.Reader) (*entity.Profile, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}
	if uc.storage == nil {
		return nil, errors.New("object storage is not configured")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := uc.storage.Upload(ctx, s3.ObjectKey(s3.PrefixResumes, actor.UserID, filename), body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}

	if err := uc.profileRepo.Update(ctx, actor.UserID, map[string]interface{}{"resume_url": url}); err != nil {
		return nil, fmt.Errorf("failed to save resume url: %w", err)
	}

	uc.logger.Info("Resume uploaded for %s", actor.UserID)
	return uc.profileRepo.GetByID(ctx, actor.UserID)
}

func (uc *profileUseCase) ListUsers(ctx context.Context, actor *access.Identity, role access.Role, limit, offset int) ([]*entity.Profile, error) {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultUserPageSize
	}
	if limit > maxUserPageSize {
		limit = maxUserPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.profileRepo.List(ctx, role, limit, offset)
}
