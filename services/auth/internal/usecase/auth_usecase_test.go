package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/jwt"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/auth/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	uc       AuthUseCase
	users    *MockUserRepository
	profiles *MockProfileRepository
	tokens   *jwt.Service
	revoker  *middleware.RedisRevoker
	now      time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &authFixture{
		users:    new(MockUserRepository),
		profiles: new(MockProfileRepository),
		tokens:   jwt.NewService("test-secret"),
		revoker:  middleware.NewRedisRevoker(client),
		now:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewAuthUseCase(f.users, f.profiles, f.tokens, f.revoker, logger.NewNop(),
		WithHashCost(bcrypt.MinCost),
		WithClock(func() time.Time { return f.now }),
	)
	return f
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestSignUp_DefaultRoleIsJobSeeker(t *testing.T) {
	f := newAuthFixture(t)

	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "cook@example.com" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)
	f.profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.ID == "user-new" && p.Role == access.RoleJobSeeker && p.Name == "Anna"
	})).Return(nil)

	session, err := f.uc.SignUp(context.Background(), entity.Registration{Email: "Cook@example.com", Password: "secret1", Name: "Anna"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, f.now.Add(24*time.Hour), session.ExpiresAt)
	claims, err := f.tokens.ValidateToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-new", claims.UserID)
	assert.Equal(t, "job_seeker", claims.Role)
	f.users.AssertExpectations(t)
	f.profiles.AssertExpectations(t)
}

func TestSignUp_Employer(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.Role == access.RoleEmployer
	})).Return(nil)

	session, err := f.uc.SignUp(context.Background(), entity.Registration{Email: "boss@example.com", Password: "secret1", Role: "employer"})
	require.NoError(t, err)
	assert.Equal(t, access.RoleEmployer, session.Profile.Role)
}

func TestSignUp_PrivilegedRoleRefused(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.SignUp(context.Background(), entity.Registration{Email: "x@example.com", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, entity.ErrRoleNotAllowed)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUp_ProfileFailureKeepsUser(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.profiles.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := f.uc.SignUp(context.Background(), entity.Registration{Email: "x@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create profile")
	f.users.AssertNumberOfCalls(t, "Create", 1)
}

func TestSignUp_EmailTaken(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("Create", mock.Anything, mock.Anything).Return(entity.ErrEmailTaken)

	_, err := f.uc.SignUp(context.Background(), entity.Registration{Email: "x@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
	f.profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignIn(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", mock.Anything, "cook@example.com").
		Return(&entity.User{ID: "u1", Email: "cook@example.com", PasswordHash: hashed(t, "secret1")}, nil)
	f.profiles.On("GetByID", mock.Anything, "u1").
		Return(&entity.Profile{ID: "u1", Email: "cook@example.com", Role: access.RoleEmployer}, nil)

	session, err := f.uc.SignIn(context.Background(), " COOK@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.Profile.ID)

	_, err = f.uc.SignIn(context.Background(), "cook@example.com", "wrong-password")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, entity.ErrNotFound)

	_, err := f.uc.SignIn(context.Background(), "ghost@example.com", "secret1")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestSignIn_WithoutProfile(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", mock.Anything, "cook@example.com").
		Return(&entity.User{ID: "u1", PasswordHash: hashed(t, "secret1")}, nil)
	f.profiles.On("GetByID", mock.Anything, "u1").Return(nil, entity.ErrNotFound)

	_, err := f.uc.SignIn(context.Background(), "cook@example.com", "secret1")
	assert.ErrorIs(t, err, access.ErrProfileNotFound)
}

func TestSignOut_RevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	actor := &access.Identity{UserID: "u1", Role: access.RoleJobSeeker}
	ctx := context.Background()

	require.NoError(t, f.uc.SignOut(ctx, actor, "jti-1", time.Now().Add(time.Hour)))

	revoked, err := f.revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, f.uc.SignOut(ctx, nil, "jti-2", time.Now().Add(time.Hour)), access.ErrUnauthenticated)
}

func TestCheckSession(t *testing.T) {
	f := newAuthFixture(t)
	f.profiles.On("GetByID", mock.Anything, "u1").Return(&entity.Profile{ID: "u1", Role: access.RoleJobSeeker}, nil)
	f.profiles.On("GetByID", mock.Anything, "gone").Return(nil, entity.ErrNotFound)

	profile, err := f.uc.CheckSession(context.Background(), &access.Identity{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)

	_, err = f.uc.CheckSession(context.Background(), &access.Identity{UserID: "gone"})
	assert.ErrorIs(t, err, access.ErrProfileNotFound)
}
