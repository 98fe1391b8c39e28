package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/moderation/internal/entity"
	"horeca-board/services/moderation/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockModerationUseCase struct {
	mock.Mock
}

var _ usecase.ModerationUseCase = (*MockModerationUseCase)(nil)

func (m *MockModerationUseCase) Dashboard(ctx context.Context, actor *access.Identity) (entity.Dashboard, error) {
	args := m.Called(actor)
	return args.Get(0).(entity.Dashboard), args.Error(1)
}

func (m *MockModerationUseCase) Queue(ctx context.Context, actor *access.Identity, limit int) ([]*entity.QueueItem, error) {
	args := m.Called(actor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.QueueItem), args.Error(1)
}

var moderator = &access.Identity{UserID: "mod-1", Role: access.RoleModerator}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func as(id *access.Identity, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextIdentity, id)
		h(c)
	}
}

func TestDashboard_Success(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.GET("/admin/dashboard", as(moderator, handler.Dashboard))

	mockUseCase.On("Dashboard", moderator).Return(entity.Dashboard{Profiles: 9, PendingJobs: 2, PendingBanners: 3}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(5), response["pending_total"])
	assert.Equal(t, float64(9), response["dashboard"].(map[string]interface{})["profiles"])
}

func TestDashboard_Forbidden(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	seeker := &access.Identity{UserID: "s1", Role: access.RoleJobSeeker}
	router.GET("/admin/dashboard", as(seeker, handler.Dashboard))

	mockUseCase.On("Dashboard", seeker).Return(entity.Dashboard{}, access.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestQueue_PassesLimit(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.GET("/admin/moderation/queue", as(moderator, handler.Queue))

	mockUseCase.On("Queue", moderator, 20).Return([]*entity.QueueItem{
		{Kind: entity.KindBanner, ID: "b1", Submitter: &entity.Submitter{ID: "u1", Name: "Bar Luna"}},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/moderation/queue?limit=20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"banner"`)
	assert.Contains(t, w.Body.String(), "Bar Luna")
}

func TestQueue_InternalErrorMasked(t *testing.T) {
	mockUseCase := new(MockModerationUseCase)
	handler := NewModerationHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.GET("/admin/moderation/queue", as(moderator, handler.Queue))

	mockUseCase.On("Queue", moderator, 0).Return(nil, errors.New("pq: connection refused"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/moderation/queue", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
