package usecase

import (
	"context"

	"horeca-board/pkg/queue"
	"horeca-board/services/job/internal/entity"
	"horeca-board/services/job/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *entity.Job) error {
	args := m.Called(job)
	if args.Error(0) == nil {
		job.ID = "job-new"
	}
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so use cases cannot mutate the fixture.
	job := *args.Get(0).(*entity.Job)
	return &job, args.Error(1)
}

func (m *MockJobRepository) ListOpen(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Job), args.Error(1)
}

func (m *MockJobRepository) ListByEmployer(ctx context.Context, employerID string) ([]*entity.Job, error) {
	args := m.Called(employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Job), args.Error(1)
}

func (m *MockJobRepository) ListByStatus(ctx context.Context, status entity.JobStatus) ([]*entity.Job, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Job), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, job *entity.Job) error {
	return m.Called(job).Error(0)
}

func (m *MockJobRepository) TransitionStatus(ctx context.Context, id string, from, to entity.JobStatus) (bool, error) {
	args := m.Called(id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepository) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

var _ persistent.JobRepository = (*MockJobRepository)(nil)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *entity.Application) error {
	args := m.Called(app)
	if args.Error(0) == nil {
		app.ID = "app-new"
	}
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	app := *args.Get(0).(*entity.Application)
	return &app, args.Error(1)
}

func (m *MockApplicationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Application, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]*entity.Application, error) {
	args := m.Called(jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListByStatus(ctx context.Context, status entity.ApplicationStatus) ([]*entity.Application, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Application), args.Error(1)
}

func (m *MockApplicationRepository) TransitionStatus(ctx context.Context, id string, from, to entity.ApplicationStatus) (bool, error) {
	args := m.Called(id, from, to)
	return args.Bool(0), args.Error(1)
}

var _ persistent.ApplicationRepository = (*MockApplicationRepository)(nil)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishNotificationTask(routingKey string, task queue.NotificationTask) error {
	return m.Called(routingKey, task).Error(0)
}

var _ queue.Publisher = (*MockPublisher)(nil)
