package usecase

import (
	"context"
	"fmt"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/services/auth/internal/entity"
	"horeca-board/services/auth/internal/repo/persistent"
)

// ModeratorUseCase is the admin-only moderator management.
type ModeratorUseCase interface {
	ListModerators(ctx context.Context, actor *access.Identity) ([]*entity.Profile, error)
	AddModerator(ctx context.Context, actor *access.Identity, reg entity.Registration) (*entity.Profile, error)
	DemoteModerator(ctx context.Context, actor *access.Identity, id string) error
}

type moderatorUseCase struct {
	accounts    *accounts
	profileRepo persistent.ProfileRepository
	identities  IdentityCache
	logger      *logger.Logger
}

func NewModeratorUseCase(
	userRepo persistent.UserRepository,
	profileRepo persistent.ProfileRepository,
	identities IdentityCache,
	logger *logger.Logger,
	opts ...Option,
) ModeratorUseCase {
	o := buildOptions(opts)
	return &moderatorUseCase{
		accounts:    &accounts{userRepo: userRepo, profileRepo: profileRepo, hashCost: o.hashCost, logger: logger},
		profileRepo: profileRepo,
		identities:  identities,
		logger:      logger,
	}
}

func (uc *moderatorUseCase) ListModerators(ctx context.Context, actor *access.Identity) ([]*entity.Profile, error) {
	if err := access.Authorize(actor, access.RoleAdmin); err != nil {
		return nil, err
	}
	return uc.profileRepo.List(ctx, access.RoleModerator, 0, 0)
}

// AddModerator registers an ordinary account and then promotes it. The
// promotion is a second write; if it fails the account stays a job seeker.
func (uc *moderatorUseCase) AddModerator(ctx context.Context, actor *access.Identity, reg entity.Registration) (*entity.Profile, error) {
	if err := access.Authorize(actor, access.RoleAdmin); err != nil {
		return nil, err
	}

	reg.Role = ""
	reg, role, err := reg.Normalize(false)
	if err != nil {
		return nil, err
	}

	profile, err := uc.accounts.create(ctx, reg, role)
	if err != nil {
		return nil, err
	}

	if err := uc.profileRepo.SetRole(ctx, profile.ID, access.RoleModerator); err != nil {
		uc.logger.Error("Account %s created but not promoted to moderator: %v", profile.ID, err)
		return nil, fmt.Errorf("failed to assign moderator role: %w", err)
	}
	profile.Role = access.RoleModerator

	uc.logger.Info("Moderator %s added by %s", profile.ID, actor.UserID)
	return profile, nil
}

func (uc *moderatorUseCase) DemoteModerator(ctx context.Context, actor *access.Identity, id string) error {
	if err := access.Authorize(actor, access.RoleAdmin); err != nil {
		return err
	}

	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if profile.Role != access.RoleModerator {
		return fmt.Errorf("%w: %s is not a moderator", entity.ErrValidation, id)
	}

	if err := uc.profileRepo.SetRole(ctx, id, access.RoleJobSeeker); err != nil {
		return fmt.Errorf("failed to demote moderator: %w", err)
	}
	if uc.identities != nil {
		uc.identities.Forget(ctx, id)
	}

	uc.logger.Info("Moderator %s demoted by %s", id, actor.UserID)
	return nil
}
