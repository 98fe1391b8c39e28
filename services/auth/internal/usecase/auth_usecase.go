package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/auth/internal/entity"
	"horeca-board/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens. *jwt.Service satisfies it.
type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
	TTL() time.Duration
}

type AuthUseCase interface {
	SignUp(ctx context.Context, reg entity.Registration) (*entity.Session, error)
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)
	SignOut(ctx context.Context, actor *access.Identity, tokenID string, expiresAt time.Time) error
	CheckSession(ctx context.Context, actor *access.Identity) (*entity.Profile, error)
}

type Option func(*options)

type options struct {
	hashCost int
	now      func() time.Time
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(o *options) {
		o.hashCost = cost
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{hashCost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type authUseCase struct {
	accounts    *accounts
	userRepo    persistent.UserRepository
	profileRepo persistent.ProfileRepository
	tokens      TokenIssuer
	revoker     middleware.TokenRevoker
	logger      *logger.Logger
	now         func() time.Time
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	profileRepo persistent.ProfileRepository,
	tokens TokenIssuer,
	revoker middleware.TokenRevoker,
	logger *logger.Logger,
	opts ...Option,
) AuthUseCase {
	o := buildOptions(opts)
	return &authUseCase{
		accounts:    &accounts{userRepo: userRepo, profileRepo: profileRepo, hashCost: o.hashCost, logger: logger},
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		revoker:     revoker,
		logger:      logger,
		now:         o.now,
	}
}

func (uc *authUseCase) SignUp(ctx context.Context, reg entity.Registration) (*entity.Session, error) {
	reg, role, err := reg.Normalize(false)
	if err != nil {
		return nil, err
	}

	profile, err := uc.accounts.create(ctx, reg, role)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("User %s signed up as %s", profile.ID, profile.Role)
	return uc.issue(profile)
}

func (uc *authUseCase) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	reg, _, err := entity.Registration{Email: email, Password: password}.Normalize(false)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetByEmail(ctx, reg.Email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	// A user without a profile cannot hold a session.
	profile, err := uc.profileRepo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			uc.logger.Warn("Sign-in refused for %s: profile not found", user.ID)
			return nil, access.ErrProfileNotFound
		}
		return nil, err
	}

	return uc.issue(profile)
}

// SignOut revokes the presented token until it would have expired anyway.
func (uc *authUseCase) SignOut(ctx context.Context, actor *access.Identity, tokenID string, expiresAt time.Time) error {
	if err := access.Authorize(actor); err != nil {
		return err
	}
	if uc.revoker == nil || tokenID == "" {
		return nil
	}
	if err := uc.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	uc.logger.Info("User %s signed out", actor.UserID)
	return nil
}

func (uc *authUseCase) CheckSession(ctx context.Context, actor *access.Identity) (*entity.Profile, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}
	profile, err := uc.profileRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, access.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (uc *authUseCase) issue(profile *entity.Profile) (*entity.Session, error) {
	token, err := uc.tokens.GenerateToken(profile.ID, string(profile.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &entity.Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   uc.now().Add(uc.tokens.TTL()),
		Profile:     profile,
	}, nil
}
