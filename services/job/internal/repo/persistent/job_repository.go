package persistent

import (
	"context"
	"errors"

	"horeca-board/pkg/models"
	"horeca-board/services/job/internal/entity"

	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	// ListOpen returns active jobs matching the filter, newest first.
	ListOpen(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*entity.Job, error)
	ListByStatus(ctx context.Context, status entity.JobStatus) ([]*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	TransitionStatus(ctx context.Context, id string, from, to entity.JobStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	m := ToJobModel(job)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*job = *ToJobEntity(m)
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	var m models.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToJobEntity(&m), nil
}

func (r *jobRepository) ListOpen(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error) {
	filter = filter.Normalized()

	query := r.db.WithContext(ctx).Where("status = ?", string(entity.JobActive))
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR company ILIKE ? OR location ILIKE ?", like, like, like)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}

	var rows []models.Job
	if err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toJobEntities(rows), nil
}

func (r *jobRepository) ListByEmployer(ctx context.Context, employerID string) ([]*entity.Job, error) {
	var rows []models.Job
	if err := r.db.WithContext(ctx).Where("employer_id = ?", employerID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toJobEntities(rows), nil
}

func (r *jobRepository) ListByStatus(ctx context.Context, status entity.JobStatus) ([]*entity.Job, error) {
	var rows []models.Job
	if err := r.db.WithContext(ctx).Where("status = ?", string(status)).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toJobEntities(rows), nil
}

// Update writes the editable columns only.
func (r *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", job.ID).
		Updates(map[string]interface{}{
			"title":       job.Title,
			"company":     job.Company,
			"location":    job.Location,
			"salary":      job.Salary,
			"type":        string(job.Type),
			"description": job.Description,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *jobRepository) TransitionStatus(ctx context.Context, id string, from, to entity.JobStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func toJobEntities(rows []models.Job) []*entity.Job {
	jobs := make([]*entity.Job, len(rows))
	for i := range rows {
		jobs[i] = ToJobEntity(&rows[i])
	}
	return jobs
}
