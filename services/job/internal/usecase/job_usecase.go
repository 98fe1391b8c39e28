package usecase

import (
	"context"
	"errors"
	"fmt"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/services/job/internal/entity"
	"horeca-board/services/job/internal/repo/persistent"
)

type JobUseCase interface {
	CreateJob(ctx context.Context, actor *access.Identity, draft entity.JobDraft) (*entity.Job, error)
	GetJob(ctx context.Context, actor *access.Identity, id string) (*entity.Job, error)
	ListJobs(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error)
	ListEmployerJobs(ctx context.Context, actor *access.Identity, employerID string) ([]*entity.Job, error)
	ListJobsByStatus(ctx context.Context, actor *access.Identity, status entity.JobStatus) ([]*entity.Job, error)
	UpdateJob(ctx context.Context, actor *access.Identity, id string, patch entity.JobPatch) (*entity.Job, error)
	DeleteJob(ctx context.Context, actor *access.Identity, id string) error
	ApproveJob(ctx context.Context, actor *access.Identity, id string) error
	RejectJob(ctx context.Context, actor *access.Identity, id string) error
}

type jobUseCase struct {
	jobRepo persistent.JobRepository
	logger  *logger.Logger
}

func NewJobUseCase(jobRepo persistent.JobRepository, logger *logger.Logger) JobUseCase {
	return &jobUseCase{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

func (uc *jobUseCase) CreateJob(ctx context.Context, actor *access.Identity, draft entity.JobDraft) (*entity.Job, error) {
	if err := access.Authorize(actor, access.RoleEmployer, access.RoleAdmin); err != nil {
		return nil, err
	}

	job, err := entity.NewJob(actor.UserID, draft)
	if err != nil {
		return nil, err
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	uc.logger.Info("Job %s created by %s", job.ID, actor.UserID)
	return job, nil
}

// GetJob hides jobs that are not yet public from everyone but their owner and staff.
func (uc *jobUseCase) GetJob(ctx context.Context, actor *access.Identity, id string) (*entity.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.IsOpen() {
		return job, nil
	}
	if access.AuthorizeOwner(actor, job.EmployerID, access.Staff...) != nil {
		return nil, entity.ErrNotFound
	}
	return job, nil
}

func (uc *jobUseCase) ListJobs(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error) {
	jobs, err := uc.jobRepo.ListOpen(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (uc *jobUseCase) ListEmployerJobs(ctx context.Context, actor *access.Identity, employerID string) ([]*entity.Job, error) {
	if err := access.AuthorizeOwner(actor, employerID, access.Staff...); err != nil {
		return nil, err
	}

	jobs, err := uc.jobRepo.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (uc *jobUseCase) ListJobsByStatus(ctx context.Context, actor *access.Identity, status entity.JobStatus) ([]*entity.Job, error) {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return nil, err
	}

	jobs, err := uc.jobRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s jobs: %w", status, err)
	}
	return jobs, nil
}

func (uc *jobUseCase) UpdateJob(ctx context.Context, actor *access.Identity, id string, patch entity.JobPatch) (*entity.Job, error) {
	if err := access.Authorize(actor); err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeOwner(actor, job.EmployerID); err != nil {
		return nil, err
	}

	if err := job.Apply(patch); err != nil {
		return nil, err
	}
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

func (uc *jobUseCase) DeleteJob(ctx context.Context, actor *access.Identity, id string) error {
	if err := access.Authorize(actor); err != nil {
		return err
	}

	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.AuthorizeOwner(actor, job.EmployerID, access.RoleAdmin); err != nil {
		return err
	}

	if err := uc.jobRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Job %s deleted by %s", id, actor.UserID)
	return nil
}

func (uc *jobUseCase) ApproveJob(ctx context.Context, actor *access.Identity, id string) error {
	return uc.moderate(ctx, actor, id, entity.JobActive)
}

func (uc *jobUseCase) RejectJob(ctx context.Context, actor *access.Identity, id string) error {
	return uc.moderate(ctx, actor, id, entity.JobRejected)
}

func (uc *jobUseCase) moderate(ctx context.Context, actor *access.Identity, id string, to entity.JobStatus) error {
	if err := access.Authorize(actor, access.Staff...); err != nil {
		return err
	}

	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	from := job.Status
	changed, err := job.Moderate(to)
	if err != nil || !changed {
		return err
	}

	ok, err := uc.jobRepo.TransitionStatus(ctx, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to moderate job: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: job %s changed concurrently", entity.ErrInvalidTransition, id)
	}

	uc.logger.Info("Job %s: %s -> %s by %s", id, from, to, actor.UserID)
	return nil
}

// isNotFound is shared by both use cases.
func isNotFound(err error) bool {
	return errors.Is(err, entity.ErrNotFound)
}
