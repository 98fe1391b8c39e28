package persistent

import (
	"context"
	"fmt"
	"strings"

	"horeca-board/pkg/models"
	"horeca-board/services/moderation/internal/entity"

	"gorm.io/gorm"
)

const summaryLength = 200

// ModerationRepository reads across the job, banner and profile tables. It
// never writes; approve and reject stay with the owning services.
type ModerationRepository interface {
	Counts(ctx context.Context) (entity.Dashboard, error)
	PendingJobs(ctx context.Context, limit int) ([]*entity.QueueItem, error)
	PendingBanners(ctx context.Context, limit int) ([]*entity.QueueItem, error)
	Submitters(ctx context.Context, ids []string) (map[string]*entity.Submitter, error)
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) Counts(ctx context.Context) (entity.Dashboard, error) {
	var d entity.Dashboard
	db := r.db.WithContext(ctx)

	counters := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"profiles", db.Model(&models.Profile{}), &d.Profiles},
		{"jobs", db.Model(&models.Job{}), &d.Jobs},
		{"applications", db.Model(&models.Application{}), &d.Applications},
		{"pending jobs", db.Model(&models.Job{}).Where("status = ?", entity.StatusPending), &d.PendingJobs},
		{"pending banners", db.Model(&models.Banner{}).Where("status = ?", entity.StatusPending), &d.PendingBanners},
	}

	for _, c := range counters {
		if err := c.query.Count(c.dest).Error; err != nil {
			return entity.Dashboard{}, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}
	return d, nil
}

func (r *moderationRepository) PendingJobs(ctx context.Context, limit int) ([]*entity.QueueItem, error) {
	var rows []models.Job
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]*entity.QueueItem, len(rows))
	for i, j := range rows {
		items[i] = &entity.QueueItem{
			Kind:        entity.KindJob,
			ID:          j.ID,
			Title:       j.Title,
			Summary:     joinNonEmpty(", ", j.Company, j.Location),
			SubmitterID: j.EmployerID,
			CreatedAt:   j.CreatedAt,
		}
	}
	return items, nil
}

func (r *moderationRepository) PendingBanners(ctx context.Context, limit int) ([]*entity.QueueItem, error) {
	var rows []models.Banner
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]*entity.QueueItem, len(rows))
	for i, b := range rows {
		items[i] = &entity.QueueItem{
			Kind:        entity.KindBanner,
			ID:          b.ID,
			Title:       b.Title,
			Summary:     truncate(b.Description, summaryLength),
			ImageURL:    b.ImageURL,
			SubmitterID: b.UserID,
			CreatedAt:   b.CreatedAt,
		}
	}
	return items, nil
}

func (r *moderationRepository) Submitters(ctx context.Context, ids []string) (map[string]*entity.Submitter, error) {
	out := make(map[string]*entity.Submitter, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = &entity.Submitter{ID: p.ID, Email: p.Email, Name: p.Name, Role: p.Role}
	}
	return out, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
