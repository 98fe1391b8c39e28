package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusActive, StatusRejected, StatusExpired:
		return st, true
	}
	return "", false
}

const (
	DefaultLink = "/"

	// Lifetime of a submitted or reactivated banner.
	SubmittedTTL = 7 * 24 * time.Hour
	// Lifetime of a banner created directly by staff.
	DirectTTL = 30 * 24 * time.Hour
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("banner not found")
)

type Banner struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Link        string    `json:"link"`
	Status      Status    `json:"status"`
	IsActive    bool      `json:"is_active"`
	Priority    int       `json:"priority"`
	StartsAt    time.Time `json:"starts_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft is the input for both creation paths. Nil pointers take the path's defaults.
type Draft struct {
	Title       string
	Description string
	ImageURL    string
	Link        string
	StartsAt    *time.Time
	ExpiresAt   *time.Time
	Priority    *int
	IsActive    *bool
}

func (d Draft) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(d.ImageURL) == "" {
		return fmt.Errorf("%w: image_url is required", ErrValidation)
	}
	if d.StartsAt != nil && d.ExpiresAt != nil && !d.ExpiresAt.After(*d.StartsAt) {
		return fmt.Errorf("%w: expires_at must be after starts_at", ErrValidation)
	}
	return nil
}

func build(ownerID string, d Draft, now time.Time, status Status, ttl time.Duration) *Banner {
	b := &Banner{
		UserID:      ownerID,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		ImageURL:    strings.TrimSpace(d.ImageURL),
		Link:        strings.TrimSpace(d.Link),
		Status:      status,
		IsActive:    true,
		StartsAt:    now,
		ExpiresAt:   now.Add(ttl),
	}
	if b.Link == "" {
		b.Link = DefaultLink
	}
	if d.StartsAt != nil {
		b.StartsAt = *d.StartsAt
	}
	if d.ExpiresAt != nil {
		b.ExpiresAt = *d.ExpiresAt
	}
	return b
}

// NewSubmitted builds a banner from the user form. Priority and visibility are not the submitter's to choose.
func NewSubmitted(ownerID string, d Draft, now time.Time) (*Banner, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	return build(ownerID, d, now, StatusPending, SubmittedTTL), nil
}

// NewDirect builds a staff-created banner that skips moderation.
func NewDirect(ownerID string, d Draft, now time.Time) (*Banner, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	b := build(ownerID, d, now, StatusActive, DirectTTL)
	if d.Priority != nil {
		b.Priority = *d.Priority
	}
	if d.IsActive != nil {
		b.IsActive = *d.IsActive
	}
	return b, nil
}

// EffectiveStatus reports expired for an active banner whose window has closed,
// whatever the stored status says.
func (b *Banner) EffectiveStatus(now time.Time) Status {
	if b.Status == StatusActive && now.After(b.ExpiresAt) {
		return StatusExpired
	}
	return b.Status
}

// IsEligible is the public display predicate.
func (b *Banner) IsEligible(now time.Time) bool {
	return b.Status == StatusActive &&
		b.IsActive &&
		!now.Before(b.StartsAt) &&
		!now.After(b.ExpiresAt)
}

// Approve moves pending to active. It returns false when the banner is already active.
func (b *Banner) Approve() (bool, error) {
	switch b.Status {
	case StatusActive:
		return false, nil
	case StatusPending:
		b.Status = StatusActive
		return true, nil
	}
	return false, fmt.Errorf("%w: cannot approve a %s banner", ErrInvalidTransition, b.Status)
}

// Reject moves pending to rejected. It returns false when the banner is already rejected.
func (b *Banner) Reject() (bool, error) {
	switch b.Status {
	case StatusRejected:
		return false, nil
	case StatusPending:
		b.Status = StatusRejected
		return true, nil
	}
	return false, fmt.Errorf("%w: cannot reject a %s banner", ErrInvalidTransition, b.Status)
}

// Reactivate sends a rejected or expired banner back to moderation with a fresh window.
func (b *Banner) Reactivate(now time.Time) error {
	switch b.EffectiveStatus(now) {
	case StatusRejected, StatusExpired:
		b.Status = StatusPending
		b.ExpiresAt = now.Add(SubmittedTTL)
		return nil
	}
	return fmt.Errorf("%w: cannot reactivate a %s banner", ErrInvalidTransition, b.Status)
}

type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: direction must be up or down", ErrValidation)
}

// SortForDisplay orders by priority desc, then newest first, then id so equal rows keep a fixed order.
func SortForDisplay(banners []*Banner) {
	sort.SliceStable(banners, func(i, j int) bool {
		a, b := banners[i], banners[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// FilterEligible keeps the banners IsEligible accepts, in display order.
func FilterEligible(banners []*Banner, now time.Time) []*Banner {
	out := make([]*Banner, 0, len(banners))
	for _, b := range banners {
		if b.IsEligible(now) {
			out = append(out, b)
		}
	}
	SortForDisplay(out)
	return out
}

// DefaultBanners is what the carousel shows when nothing eligible can be read.
func DefaultBanners(now time.Time) []*Banner {
	demo := func(id, title, description, image, link string, priority int) *Banner {
		return &Banner{
			ID:          id,
			Title:       title,
			Description: description,
			ImageURL:    image,
			Link:        link,
			Status:      StatusActive,
			IsActive:    true,
			Priority:    priority,
			StartsAt:    now,
			ExpiresAt:   now.Add(SubmittedTTL),
		}
	}
	return []*Banner{
		demo("demo1", "Работа в лучших ресторанах", "Вакансии от премиальных заведений с высокой оплатой", "/banners/banner-1.svg", "/jobs", 3),
		demo("demo2", "Ищем шеф-поваров", "Особые условия для профессионалов высокого класса", "/banners/banner-2.svg", "/jobs?category=chef", 2),
		demo("demo3", "Разместите вакансию бесплатно", "Специальное предложение для работодателей до конца месяца", "/banners/banner-3.svg", "/post-job", 1),
	}
}
