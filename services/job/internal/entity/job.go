package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobActive   JobStatus = "active"
	JobRejected JobStatus = "rejected"
)

func ParseJobStatus(s string) (JobStatus, bool) {
	switch st := JobStatus(s); st {
	case JobPending, JobActive, JobRejected:
		return st, true
	}
	return "", false
}

type JobType string

const (
	FullTime JobType = "full_time"
	PartTime JobType = "part_time"
	Contract JobType = "contract"
)

// ParseJobType accepts both snake and kebab spellings.
func ParseJobType(s string) (JobType, bool) {
	switch t := JobType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")); t {
	case FullTime, PartTime, Contract:
		return t, true
	}
	return "", false
}

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyApplied    = errors.New("already applied to this job")
	ErrJobClosed         = errors.New("job is not accepting applications")
)

type Job struct {
	ID          string    `json:"id"`
	EmployerID  string    `json:"employer_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Type        JobType   `json:"type"`
	Description string    `json:"description"`
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type JobDraft struct {
	Title       string
	Company     string
	Location    string
	Salary      string
	Type        string
	Description string
}

func lengthBetween(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		return fmt.Errorf("%w: %s must be at least %d characters", ErrValidation, field, min)
	}
	if max > 0 && n > max {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrValidation, field, max)
	}
	return nil
}

func (d JobDraft) normalize() JobDraft {
	return JobDraft{
		Title:       strings.TrimSpace(d.Title),
		Company:     strings.TrimSpace(d.Company),
		Location:    strings.TrimSpace(d.Location),
		Salary:      strings.TrimSpace(d.Salary),
		Type:        strings.TrimSpace(d.Type),
		Description: strings.TrimSpace(d.Description),
	}
}

func (d JobDraft) validate() (JobType, error) {
	if err := errors.Join(
		lengthBetween("title", d.Title, 5, 100),
		lengthBetween("company", d.Company, 2, 100),
		lengthBetween("location", d.Location, 2, 100),
		lengthBetween("salary", d.Salary, 2, 50),
		lengthBetween("description", d.Description, 20, 0),
	); err != nil {
		return "", err
	}
	jobType, ok := ParseJobType(d.Type)
	if !ok {
		return "", fmt.Errorf("%w: type must be full_time, part_time or contract", ErrValidation)
	}
	return jobType, nil
}

// NewJob builds a job awaiting moderation.
func NewJob(employerID string, d JobDraft) (*Job, error) {
	d = d.normalize()
	jobType, err := d.validate()
	if err != nil {
		return nil, err
	}
	return &Job{
		EmployerID:  employerID,
		Title:       d.Title,
		Company:     d.Company,
		Location:    d.Location,
		Salary:      d.Salary,
		Type:        jobType,
		Description: d.Description,
		Status:      JobPending,
	}, nil
}

// JobPatch carries the fields an owner may edit. Nil leaves the field alone.
type JobPatch struct {
	Title       *string
	Company     *string
	Location    *string
	Salary      *string
	Type        *string
	Description *string
}

// Apply edits the job in place and revalidates the result. Status is never touched.
func (j *Job) Apply(p JobPatch) error {
	d := JobDraft{
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Salary:      j.Salary,
		Type:        string(j.Type),
		Description: j.Description,
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&d.Title, p.Title)
	set(&d.Company, p.Company)
	set(&d.Location, p.Location)
	set(&d.Salary, p.Salary)
	set(&d.Type, p.Type)
	set(&d.Description, p.Description)

	d = d.normalize()
	jobType, err := d.validate()
	if err != nil {
		return err
	}
	j.Title, j.Company, j.Location, j.Salary, j.Description = d.Title, d.Company, d.Location, d.Salary, d.Description
	j.Type = jobType
	return nil
}

// Moderate moves a pending job to active or rejected. Repeating the same decision is a no-op.
func (j *Job) Moderate(to JobStatus) (bool, error) {
	if to != JobActive && to != JobRejected {
		return false, fmt.Errorf("%w: cannot moderate to %s", ErrInvalidTransition, to)
	}
	switch j.Status {
	case to:
		return false, nil
	case JobPending:
		j.Status = to
		return true, nil
	}
	return false, fmt.Errorf("%w: job is %s", ErrInvalidTransition, j.Status)
}

func (j *Job) IsOpen() bool {
	return j.Status == JobActive
}

// JobFilter narrows the public job list.
type JobFilter struct {
	Query  string
	Type   JobType
	Limit  int
	Offset int
}

func (f JobFilter) Normalized() JobFilter {
	f.Query = strings.TrimSpace(f.Query)
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
