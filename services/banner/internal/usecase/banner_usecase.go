package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/database"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/s3"
	"horeca-board/services/banner/internal/entity"
	"horeca-board/services/banner/internal/repo/persistent"
)

type BannerUseCase interface {
	CreateBanner(ctx context.Context, actor *access.Identity, draft entity.Draft) (*entity.Banner, error)
	CreateBannerDirect(ctx context.Context, actor *access.Identity, draft entity.Draft) (*entity.Banner, error)
	UploadImage(ctx context.Context, actor *access.Identity, filename, contentType string, body io.Reader) (string, error)
	Approve(ctx context.Context, actor *access.Identity, id string) error
	Reject(ctx context.Context, actor *access.Identity, id string) error
	Reactivate(ctx context.Context, actor *access.Identity, id string) error
	SetPriority(ctx context.Context, actor *access.Identity, id string, dir entity.Direction) error
	ToggleActive(ctx context.Context, actor *access.Identity, id string) error
	DeleteBanner(ctx context.Context, actor *access.Identity, id string) error
	ListActiveBanners(ctx context.Context) []*entity.Banner
	ListOwnerBanners(ctx context.Context, actor *access.Identity, userID string) ([]*entity.Banner, error)
	ListBannersByStatus(ctx context.Context, actor *access.Identity, status entity.Status) ([]*entity.Banner, error)
	ExpireElapsed(ctx context.Context) (int64, error)
}

type Option func(*bannerUseCase)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(uc *bannerUseCase) {
		uc.now = now
	}
}

type bannerUseCase struct {
	bannerRepo persistent.BannerRepository
	storage    s3.Storage
	cache      ActiveCache
	logger     *logger.Logger
	now        func() time.Time
}

func NewBannerUseCase(
	bannerRepo persistent.BannerRepository,
	storage s3.Storage,
	cache ActiveCache,
	logger *logger.Logger,
	opts ...Option,
) BannerUseCase {
	uc := &bannerUseCase{
		bannerRepo: bannerRepo,
		storage:    storage,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
	if uc.cache == nil {
		uc.cache = noCache{}
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *bannerUseCase) CreateBanner(ctx context.Context, actor *access.Identity, draft entity.Draft) (*entity.Banner, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}

	banner, err := entity.NewSubmitted(actor.UserID, draft, uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	recordTransition("submit")
	uc.logger.Info("Banner %s submitted by %s", banner.ID, actor.UserID)
	return banner, nil
}

func (uc *bannerUseCase) CreateBannerDirect(ctx context.Context, actor *access.Identity, draft entity.Draft) (*entity.Banner, error) {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return nil, err
	}

	banner, err := entity.NewDirect(actor.UserID, draft, uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	uc.cache.Invalidate(ctx)
	recordTransition("direct_create")
	uc.logger.Info("Banner %s created directly by %s %s", banner.ID, actor.Role, actor.UserID)
	return banner, nil
}

func (uc *bannerUseCase) UploadImage(ctx context.Context, actor *access.Identity, filename, contentType string, body io.Reader) (string, error) {
	if err := access.Authorize(actor); err != nil {
		return "", err
	}
	if uc.storage == nil {
		return "", errors.New("object storage is not configured")
	}
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := uc.storage.Upload(ctx, s3.ObjectKey(s3.PrefixBanners, actor.UserID, filename), body, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload banner image: %w", err)
	}
	return url, nil
}

func (uc *bannerUseCase) Approve(ctx context.Context, actor *access.Identity, id string) error {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return err
	}

	banner, err := uc.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	changed, err := banner.Approve()
	if err != nil || !changed {
		return err
	}

	return uc.transition(ctx, banner, entity.StatusPending, nil, "approve")
}

func (uc *bannerUseCase) Reject(ctx context.Context, actor *access.Identity, id string) error {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return err
	}

	banner, err := uc.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	changed, err := banner.Reject()
	if err != nil || !changed {
		return err
	}

	return uc.transition(ctx, banner, entity.StatusPending, nil, "reject")
}

func (uc *bannerUseCase) Reactivate(ctx context.Context, actor *access.Identity, id string) error {
	if err := access.Authorize(actor); err != nil {
		return err
	}

	banner, err := uc.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.AuthorizeOwner(actor, banner.UserID); err != nil {
		return err
	}

	from := banner.Status
	if err := banner.Reactivate(uc.now()); err != nil {
		return err
	}

	return uc.transition(ctx, banner, from, &banner.ExpiresAt, "reactivate")
}

// transition writes banner.Status only if the stored row is still in from.
func (uc *bannerUseCase) transition(ctx context.Context, banner *entity.Banner, from entity.Status, expiresAt *time.Time, event string) error {
	ok, err := uc.bannerRepo.TransitionStatus(ctx, banner.ID, []entity.Status{from}, banner.Status, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to %s banner: %w", event, err)
	}
	if !ok {
		return fmt.Errorf("%w: banner %s changed concurrently", entity.ErrInvalidTransition, banner.ID)
	}

	uc.cache.Invalidate(ctx)
	recordTransition(event)
	uc.logger.Info("Banner %s: %s -> %s", banner.ID, from, banner.Status)
	return nil
}

func (uc *bannerUseCase) SetPriority(ctx context.Context, actor *access.Identity, id string, dir entity.Direction) error {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return err
	}
	if dir != entity.Up && dir != entity.Down {
		return fmt.Errorf("%w: unknown direction", entity.ErrValidation)
	}

	if err := uc.bannerRepo.AdjustPriority(ctx, id, int(dir)); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx)
	return nil
}

func (uc *bannerUseCase) ToggleActive(ctx context.Context, actor *access.Identity, id string) error {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return err
	}

	if err := uc.bannerRepo.ToggleActive(ctx, id); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx)
	return nil
}

func (uc *bannerUseCase) DeleteBanner(ctx context.Context, actor *access.Identity, id string) error {
	if err := access.Authorize(actor, access.RoleAdmin); err != nil {
		return err
	}

	if err := uc.bannerRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx)
	recordTransition("delete")
	uc.logger.Info("Banner %s deleted by admin %s", id, actor.UserID)
	return nil
}

// ListActiveBanners never fails. A missing table or any read error yields an empty list.
func (uc *bannerUseCase) ListActiveBanners(ctx context.Context) []*entity.Banner {
	now := uc.now()

	if cached, ok := uc.cache.Get(ctx); ok {
		return entity.FilterEligible(cached, now)
	}

	banners, err := uc.bannerRepo.ListActive(ctx, now)
	if err != nil {
		if database.IsUndefinedTable(err) {
			uc.logger.Warn("Banners table is missing, serving an empty list")
		} else {
			uc.logger.Error("Failed to list active banners: %v", err)
		}
		return []*entity.Banner{}
	}

	// Candidates are cached unfiltered so a start time inside the TTL still takes effect.
	uc.cache.Set(ctx, banners)
	return entity.FilterEligible(banners, now)
}

func (uc *bannerUseCase) ListOwnerBanners(ctx context.Context, actor *access.Identity, userID string) ([]*entity.Banner, error) {
	if err := access.AuthorizeOwner(actor, userID, access.Staff...); err != nil {
		return nil, err
	}

	banners, err := uc.bannerRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (uc *bannerUseCase) ListBannersByStatus(ctx context.Context, actor *access.Identity, status entity.Status) ([]*entity.Banner, error) {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return nil, err
	}

	banners, err := uc.bannerRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s banners: %w", status, err)
	}
	return banners, nil
}

func (uc *bannerUseCase) ExpireElapsed(ctx context.Context) (int64, error) {
	n, err := uc.bannerRepo.ExpireElapsed(ctx, uc.now())
	if err != nil {
		return 0, fmt.Errorf("failed to expire banners: %w", err)
	}
	if n > 0 {
		uc.cache.Invalidate(ctx)
		bannerTransitions.WithLabelValues("expire").Add(float64(n))
		uc.logger.Info("Marked %d banners as expired", n)
	}
	return n, nil
}
