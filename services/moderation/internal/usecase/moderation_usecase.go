package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/services/moderation/internal/entity"
	"horeca-board/services/moderation/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	dashboardKey      = "moderation:dashboard"
	defaultQueueLimit = 50
	maxQueueLimit     = 200
)

type ModerationUseCase interface {
	Dashboard(ctx context.Context, actor *access.Identity) (entity.Dashboard, error)
	Queue(ctx context.Context, actor *access.Identity, limit int) ([]*entity.QueueItem, error)
}

type moderationUseCase struct {
	repo        persistent.ModerationRepository
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *logger.Logger
}

// NewModerationUseCase caches dashboard counters in redis for cacheTTL. A nil
// client or a zero TTL disables the cache.
func NewModerationUseCase(repo persistent.ModerationRepository, redisClient *redis.Client, cacheTTL time.Duration, logger *logger.Logger) ModerationUseCase {
	return &moderationUseCase{
		repo:        repo,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (uc *moderationUseCase) Dashboard(ctx context.Context, actor *access.Identity) (entity.Dashboard, error) {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return entity.Dashboard{}, err
	}

	if d, ok := uc.cachedDashboard(ctx); ok {
		return d, nil
	}

	d, err := uc.repo.Counts(ctx)
	if err != nil {
		return entity.Dashboard{}, err
	}
	uc.cacheDashboard(ctx, d)
	return d, nil
}

// Queue returns pending jobs and banners oldest first, each with the
// submitter's profile when it still exists.
func (uc *moderationUseCase) Queue(ctx context.Context, actor *access.Identity, limit int) ([]*entity.QueueItem, error) {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultQueueLimit
	}
	if limit > maxQueueLimit {
		limit = maxQueueLimit
	}

	jobs, err := uc.repo.PendingJobs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending jobs: %w", err)
	}
	banners, err := uc.repo.PendingBanners(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending banners: %w", err)
	}

	items := entity.MergeQueue(jobs, banners)
	if len(items) > limit {
		items = items[:limit]
	}

	submitters, err := uc.repo.Submitters(ctx, entity.SubmitterIDs(items))
	if err != nil {
		// The queue is still usable without names.
		uc.logger.Warn("Failed to load submitter profiles: %v", err)
		return items, nil
	}
	for _, it := range items {
		it.Submitter = submitters[it.SubmitterID]
	}
	return items, nil
}

func (uc *moderationUseCase) cachedDashboard(ctx context.Context) (entity.Dashboard, bool) {
	if uc.redisClient == nil || uc.cacheTTL <= 0 {
		return entity.Dashboard{}, false
	}
	data, err := uc.redisClient.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		return entity.Dashboard{}, false
	}
	var d entity.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return entity.Dashboard{}, false
	}
	return d, true
}

func (uc *moderationUseCase) cacheDashboard(ctx context.Context, d entity.Dashboard) {
	if uc.redisClient == nil || uc.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := uc.redisClient.Set(ctx, dashboardKey, data, uc.cacheTTL).Err(); err != nil {
		uc.logger.Warn("Failed to cache dashboard: %v", err)
	}
}
