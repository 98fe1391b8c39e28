package persistent

import (
	"horeca-board/pkg/models"
	"horeca-board/services/job/internal/entity"
)

func ToJobEntity(m *models.Job) *entity.Job {
	if m == nil {
		return nil
	}

	return &entity.Job{
		ID:          m.ID,
		EmployerID:  m.EmployerID,
		Title:       m.Title,
		Company:     m.Company,
		Location:    m.Location,
		Salary:      m.Salary,
		Type:        entity.JobType(m.Type),
		Description: m.Description,
		Status:      entity.JobStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToJobModel(e *entity.Job) *models.Job {
	if e == nil {
		return nil
	}

	return &models.Job{
		ID:          e.ID,
		EmployerID:  e.EmployerID,
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		Salary:      e.Salary,
		Type:        string(e.Type),
		Description: e.Description,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToApplicationEntity(m *models.Application) *entity.Application {
	if m == nil {
		return nil
	}

	return &entity.Application{
		ID:        m.ID,
		JobID:     m.JobID,
		UserID:    m.UserID,
		Status:    entity.ApplicationStatus(m.Status),
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Job:       ToJobEntity(m.Job),
	}
}

func ToApplicationModel(e *entity.Application) *models.Application {
	if e == nil {
		return nil
	}

	return &models.Application{
		ID:        e.ID,
		JobID:     e.JobID,
		UserID:    e.UserID,
		Status:    string(e.Status),
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
