package usecase

import (
	"context"
	"testing"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/services/job/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	employer  = &access.Identity{UserID: "emp-1", Role: access.RoleEmployer}
	rival     = &access.Identity{UserID: "emp-2", Role: access.RoleEmployer}
	seeker    = &access.Identity{UserID: "seeker-1", Role: access.RoleJobSeeker}
	moderator = &access.Identity{UserID: "mod-1", Role: access.RoleModerator}
	admin     = &access.Identity{UserID: "admin-1", Role: access.RoleAdmin}
)

func draft() entity.JobDraft {
	return entity.JobDraft{
		Title:       "Head waiter",
		Company:     "Cafe Central",
		Location:    "Astana",
		Salary:      "300 000",
		Type:        "full_time",
		Description: "Run the floor during lunch and dinner service.",
	}
}

func pendingJob() *entity.Job {
	return &entity.Job{ID: "job-1", EmployerID: "emp-1", Title: "Head waiter", Company: "Cafe Central",
		Location: "Astana", Salary: "300 000", Type: entity.FullTime,
		Description: "Run the floor during lunch and dinner service.", Status: entity.JobPending}
}

func TestCreateJob_EmployerOrAdminOnly(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())
	ctx := context.Background()

	_, err := uc.CreateJob(ctx, seeker, draft())
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = uc.CreateJob(ctx, moderator, draft())
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = uc.CreateJob(ctx, nil, draft())
	assert.ErrorIs(t, err, access.ErrUnauthenticated)
	repo.AssertNotCalled(t, "Create", mock.Anything)

	repo.On("Create", mock.MatchedBy(func(j *entity.Job) bool {
		return j.Status == entity.JobPending && j.EmployerID == "emp-1"
	})).Return(nil).Once()
	job, err := uc.CreateJob(ctx, employer, draft())
	require.NoError(t, err)
	assert.Equal(t, "job-new", job.ID)

	repo.On("Create", mock.Anything).Return(nil).Once()
	_, err = uc.CreateJob(ctx, admin, draft())
	assert.NoError(t, err)
}

func TestCreateJob_InvalidDraftNeverWrites(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())

	d := draft()
	d.Title = ""
	_, err := uc.CreateJob(context.Background(), employer, d)
	assert.ErrorIs(t, err, entity.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestGetJob_HidesUnpublished(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())
	ctx := context.Background()
	repo.On("GetByID", "job-1").Return(pendingJob(), nil)

	_, err := uc.GetJob(ctx, nil, "job-1")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = uc.GetJob(ctx, rival, "job-1")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	job, err := uc.GetJob(ctx, employer, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	_, err = uc.GetJob(ctx, moderator, "job-1")
	assert.NoError(t, err)
}

func TestApproveJob(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())
	ctx := context.Background()
	repo.On("GetByID", "job-1").Return(pendingJob(), nil)

	assert.ErrorIs(t, uc.ApproveJob(ctx, employer, "job-1"), access.ErrForbidden)
	repo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)

	repo.On("TransitionStatus", "job-1", entity.JobPending, entity.JobActive).Return(true, nil).Once()
	require.NoError(t, uc.ApproveJob(ctx, moderator, "job-1"))

	repo.On("TransitionStatus", "job-1", entity.JobPending, entity.JobRejected).Return(false, nil).Once()
	assert.ErrorIs(t, uc.RejectJob(ctx, admin, "job-1"), entity.ErrInvalidTransition)
}

func TestApproveJob_AlreadyActiveIsNoop(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())
	active := pendingJob()
	active.Status = entity.JobActive
	repo.On("GetByID", "job-1").Return(active, nil)

	require.NoError(t, uc.ApproveJob(context.Background(), moderator, "job-1"))
	assert.ErrorIs(t, uc.RejectJob(context.Background(), moderator, "job-1"), entity.ErrInvalidTransition)
	repo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateJob_OwnerOnly(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())
	ctx := context.Background()
	repo.On("GetByID", "job-1").Return(pendingJob(), nil)

	salary := "350 000"
	patch := entity.JobPatch{Salary: &salary}

	_, err := uc.UpdateJob(ctx, rival, "job-1", patch)
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = uc.UpdateJob(ctx, admin, "job-1", patch)
	assert.ErrorIs(t, err, access.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything)

	repo.On("Update", mock.MatchedBy(func(j *entity.Job) bool { return j.Salary == "350 000" })).Return(nil)
	job, err := uc.UpdateJob(ctx, employer, "job-1", patch)
	require.NoError(t, err)
	assert.Equal(t, entity.JobPending, job.Status)
}

func TestDeleteJob(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())
	ctx := context.Background()
	repo.On("GetByID", "job-1").Return(pendingJob(), nil)

	assert.ErrorIs(t, uc.DeleteJob(ctx, rival, "job-1"), access.ErrForbidden)
	assert.ErrorIs(t, uc.DeleteJob(ctx, moderator, "job-1"), access.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything)

	repo.On("Delete", "job-1").Return(nil).Twice()
	assert.NoError(t, uc.DeleteJob(ctx, employer, "job-1"))
	assert.NoError(t, uc.DeleteJob(ctx, admin, "job-1"))
	repo.AssertExpectations(t)
}

func TestListJobsByStatus_StaffOnly(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())

	_, err := uc.ListJobsByStatus(context.Background(), employer, entity.JobPending)
	assert.ErrorIs(t, err, access.ErrForbidden)

	repo.On("ListByStatus", entity.JobPending).Return([]*entity.Job{pendingJob()}, nil)
	jobs, err := uc.ListJobsByStatus(context.Background(), moderator, entity.JobPending)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestListEmployerJobs(t *testing.T) {
	repo := new(MockJobRepository)
	uc := NewJobUseCase(repo, logger.NewNop())
	repo.On("ListByEmployer", "emp-1").Return([]*entity.Job{pendingJob()}, nil)

	_, err := uc.ListEmployerJobs(context.Background(), rival, "emp-1")
	assert.ErrorIs(t, err, access.ErrForbidden)

	jobs, err := uc.ListEmployerJobs(context.Background(), employer, "emp-1")
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
