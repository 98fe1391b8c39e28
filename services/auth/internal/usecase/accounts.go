package usecase

import (
	"context"
	"fmt"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/services/auth/internal/entity"
	"horeca-board/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

// IdentityCache drops a cached identity after a role change.
type IdentityCache interface {
	Forget(ctx context.Context, userID string)
}

// accounts creates the credential record and then the profile. The two
// writes are separate statements: when the second fails the user row stays
// behind and the failure is logged.
type accounts struct {
	userRepo    persistent.UserRepository
	profileRepo persistent.ProfileRepository
	hashCost    int
	logger      *logger.Logger
}

func (a *accounts) create(ctx context.Context, reg entity.Registration, role access.Role) (*entity.Profile, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), a.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: reg.Email, PasswordHash: string(hashedPassword)}
	if err := a.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &entity.Profile{ID: user.ID, Email: user.Email, Name: reg.Name, Role: role}
	if err := a.profileRepo.Create(ctx, profile); err != nil {
		a.logger.Error("User %s was created without a profile: %v", user.ID, err)
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}
