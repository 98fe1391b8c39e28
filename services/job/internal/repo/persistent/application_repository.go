package persistent

import (
	"context"
	"errors"

	"horeca-board/pkg/database"
	"horeca-board/pkg/models"
	"horeca-board/services/job/internal/entity"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create fails with entity.ErrAlreadyApplied when the user already applied to the job.
	Create(ctx context.Context, app *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*entity.Application, error)
	ListByStatus(ctx context.Context, status entity.ApplicationStatus) ([]*entity.Application, error)
	TransitionStatus(ctx context.Context, id string, from, to entity.ApplicationStatus) (bool, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *entity.Application) error {
	m := ToApplicationModel(app)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return entity.ErrAlreadyApplied
		}
		return err
	}
	job := app.Job
	*app = *ToApplicationEntity(m)
	app.Job = job
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	var m models.Application
	if err := r.db.WithContext(ctx).Preload("Job").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToApplicationEntity(&m), nil
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Application, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]*entity.Application, error) {
	return r.list(r.db.WithContext(ctx).Where("job_id = ?", jobID))
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status entity.ApplicationStatus) ([]*entity.Application, error) {
	return r.list(r.db.WithContext(ctx).Where("status = ?", string(status)))
}

func (r *applicationRepository) list(query *gorm.DB) ([]*entity.Application, error) {
	var rows []models.Application
	if err := query.Preload("Job").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	apps := make([]*entity.Application, len(rows))
	for i := range rows {
		apps[i] = ToApplicationEntity(&rows[i])
	}
	return apps, nil
}

func (r *applicationRepository) TransitionStatus(ctx context.Context, id string, from, to entity.ApplicationStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
