package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/models"
	"horeca-board/pkg/queue"
	"horeca-board/services/job/internal/entity"
	"horeca-board/services/job/internal/repo/persistent"
)

type ApplicationUseCase interface {
	Apply(ctx context.Context, actor *access.Identity, jobID, message string) (*entity.Application, error)
	ListMyApplications(ctx context.Context, actor *access.Identity) ([]*entity.Application, error)
	ListJobApplications(ctx context.Context, actor *access.Identity, jobID string) ([]*entity.Application, error)
	ListApplicationsByStatus(ctx context.Context, actor *access.Identity, status entity.ApplicationStatus) ([]*entity.Application, error)
	Decide(ctx context.Context, actor *access.Identity, applicationID string, status entity.ApplicationStatus) (*entity.Application, error)
}

type applicationUseCase struct {
	jobRepo   persistent.JobRepository
	appRepo   persistent.ApplicationRepository
	publisher queue.Publisher
	logger    *logger.Logger
}

// NewApplicationUseCase wires the application workflow. A nil publisher disables notifications.
func NewApplicationUseCase(
	jobRepo persistent.JobRepository,
	appRepo persistent.ApplicationRepository,
	publisher queue.Publisher,
	logger *logger.Logger,
) ApplicationUseCase {
	return &applicationUseCase{
		jobRepo:   jobRepo,
		appRepo:   appRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *applicationUseCase) Apply(ctx context.Context, actor *access.Identity, jobID, message string) (*entity.Application, error) {
	if err := access.Authorize(actor, access.RoleJobSeeker); err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	app, err := entity.NewApplication(job, actor.UserID, message)
	if err != nil {
		return nil, err
	}

	if err := uc.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, entity.ErrAlreadyApplied) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to apply: %w", err)
	}
	app.Job = job

	uc.notify(queue.RoutingApplicationCreated, queue.NotificationTask{
		Type:          models.NotificationNewApplication,
		UserID:        job.EmployerID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		ApplicationID: app.ID,
		Priority:      5,
	})

	uc.logger.Info("User %s applied to job %s", actor.UserID, job.ID)
	return app, nil
}

func (uc *applicationUseCase) ListMyApplications(ctx context.Context, actor *access.Identity) ([]*entity.Application, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}

	apps, err := uc.appRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (uc *applicationUseCase) ListJobApplications(ctx context.Context, actor *access.Identity, jobID string) ([]*entity.Application, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeOwner(actor, job.EmployerID, access.Staff...); err != nil {
		return nil, err
	}

	apps, err := uc.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (uc *applicationUseCase) ListApplicationsByStatus(ctx context.Context, actor *access.Identity, status entity.ApplicationStatus) ([]*entity.Application, error) {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return nil, err
	}

	apps, err := uc.appRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Decide lets the job owner or staff accept or reject an application.
func (uc *applicationUseCase) Decide(ctx context.Context, actor *access.Identity, applicationID string, status entity.ApplicationStatus) (*entity.Application, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}

	app, err := uc.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	job := app.Job
	if job == nil {
		if job, err = uc.jobRepo.GetByID(ctx, app.JobID); err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("%w: job for application %s", entity.ErrNotFound, applicationID)
			}
			return nil, err
		}
	}
	if err := access.AuthorizeOwner(actor, job.EmployerID, access.Staff...); err != nil {
		return nil, err
	}

	from := app.Status
	changed, err := app.Decide(status)
	if err != nil {
		return nil, err
	}
	if !changed {
		return app, nil
	}

	ok, err := uc.appRepo.TransitionStatus(ctx, app.ID, from, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: application %s changed concurrently", entity.ErrInvalidTransition, app.ID)
	}

	uc.notify(queue.RoutingApplicationStatus, queue.NotificationTask{
		Type:          models.NotificationApplicationStatus,
		UserID:        app.UserID,
		JobID:         job.ID,
		JobTitle:      job.Title,
		ApplicationID: app.ID,
		Status:        string(status),
		Priority:      7,
	})

	uc.logger.Info("Application %s: %s -> %s by %s", app.ID, from, status, actor.UserID)
	return app, nil
}

// notify is best effort. The application row is the source of truth.
func (uc *applicationUseCase) notify(routingKey string, task queue.NotificationTask) {
	if uc.publisher == nil {
		return
	}
	task.OccurredAt = time.Now().UTC()
	if err := uc.publisher.PublishNotificationTask(routingKey, task); err != nil {
		uc.logger.Warn("Failed to publish %s for user %s: %v", task.Type, task.UserID, err)
	}
}
