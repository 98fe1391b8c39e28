package entity

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"horeca-board/pkg/access"
)

const (
	minPasswordLength = 6
	maxNameLength     = 255
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotAllowed     = errors.New("role cannot be self-assigned")
)

// User is the credential record. It never leaves the service.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Profile struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Role       access.Role `json:"role"`
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	City       string      `json:"city"`
	Experience string      `json:"experience"`
	Skills     string      `json:"skills"`
	ResumeURL  string      `json:"resume_url"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ProfilePatch carries the fields a user may edit on their own profile.
type ProfilePatch struct {
	Name       *string
	Phone      *string
	City       *string
	Experience *string
	Skills     *string
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.City == nil && p.Experience == nil && p.Skills == nil
}

func (p ProfilePatch) Validate() error {
	if p.Name != nil && utf8.RuneCountInString(strings.TrimSpace(*p.Name)) > maxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrValidation, maxNameLength)
	}
	return nil
}

// Columns returns the patch as a column map, trimmed.
func (p ProfilePatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	set := func(name string, v *string) {
		if v != nil {
			cols[name] = strings.TrimSpace(*v)
		}
	}
	set("name", p.Name)
	set("phone", p.Phone)
	set("city", p.City)
	set("experience", p.Experience)
	set("skills", p.Skills)
	return cols
}

// Registration is the sign-up input. An empty role means job_seeker.
type Registration struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Normalize validates the registration and resolves its role. Only
// self-assignable roles pass unless privileged is set.
func (r Registration) Normalize(privileged bool) (Registration, access.Role, error) {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)

	var errs []error
	if _, err := mail.ParseAddress(r.Email); err != nil || r.Email == "" {
		errs = append(errs, errors.New("email is invalid"))
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		errs = append(errs, fmt.Errorf("password must be at least %d characters", minPasswordLength))
	}
	if utf8.RuneCountInString(r.Name) > maxNameLength {
		errs = append(errs, fmt.Errorf("name must be at most %d characters", maxNameLength))
	}
	if len(errs) > 0 {
		return r, "", fmt.Errorf("%w: %w", ErrValidation, errors.Join(errs...))
	}

	if r.Role == "" {
		return r, access.RoleJobSeeker, nil
	}
	role, ok := access.ParseRole(r.Role)
	if !ok {
		return r, "", fmt.Errorf("%w: unknown role %q", ErrValidation, r.Role)
	}
	if !privileged && !role.SelfAssignable() {
		return r, "", ErrRoleNotAllowed
	}
	return r, role, nil
}

// Session is what a successful sign-in or sign-up hands back.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Profile     *Profile  `json:"profile"`
}

func (p *Profile) Identity() *access.Identity {
	return &access.Identity{UserID: p.ID, Email: p.Email, Name: p.Name, Role: p.Role}
}
