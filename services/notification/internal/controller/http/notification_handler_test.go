package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/pkg/queue"
	"horeca-board/services/notification/internal/entity"
	"horeca-board/services/notification/internal/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationUseCase struct {
	mock.Mock
}

var _ usecase.NotificationUseCase = (*MockNotificationUseCase)(nil)

func (m *MockNotificationUseCase) HandleTask(ctx context.Context, task queue.NotificationTask) error {
	return m.Called(task).Error(0)
}

func (m *MockNotificationUseCase) ListNotifications(ctx context.Context, actor *access.Identity, limit int) ([]*entity.Notification, error) {
	args := m.Called(actor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *MockNotificationUseCase) UnreadCount(ctx context.Context, actor *access.Identity) (int64, error) {
	args := m.Called(actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationUseCase) MarkRead(ctx context.Context, actor *access.Identity, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockNotificationUseCase) MarkAllRead(ctx context.Context, actor *access.Identity) (int64, error) {
	args := m.Called(actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationUseCase) QueueLength(ctx context.Context, actor *access.Identity) (int, error) {
	args := m.Called(actor)
	return args.Int(0), args.Error(1)
}

var seeker = &access.Identity{UserID: "seeker-1", Role: access.RoleJobSeeker}

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

func TestGetNotifications_Unauthenticated(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, nil, logger.NewNop())
	router := setupTestRouter()
	router.GET("/notifications", handler.GetNotifications)

	mockUseCase.On("ListNotifications", (*access.Identity)(nil), 0).Return(nil, access.ErrUnauthenticated)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetNotifications_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, nil, logger.NewNop())
	router := setupTestRouter()
	router.GET("/notifications", as(seeker, handler.GetNotifications))

	mockUseCase.On("ListNotifications", seeker, 5).Return([]*entity.Notification{{ID: "n1", UserID: "seeker-1"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/notifications?limit=5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestMarkRead_NotFound(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, nil, logger.NewNop())
	router := setupTestRouter()
	router.POST("/notifications/:id/read", as(seeker, handler.MarkRead))

	mockUseCase.On("MarkRead", seeker, "n9").Return(entity.ErrNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/notifications/n9/read", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, nil, logger.NewNop())
	router := setupTestRouter()
	router.POST("/notifications/read-all", as(seeker, handler.MarkAllRead))
	router.GET("/notifications/unread-count", as(seeker, handler.UnreadCount))

	mockUseCase.On("MarkAllRead", seeker).Return(int64(2), nil)
	mockUseCase.On("UnreadCount", seeker).Return(int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/notifications/read-all", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"updated":2`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/notifications/unread-count", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread":0`)
}

func TestQueueStatus_MasksInternalErrors(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, nil, nil, logger.NewNop())
	router := setupTestRouter()
	router.GET("/admin/notifications/queue", as(seeker, handler.QueueStatus))

	mockUseCase.On("QueueLength", seeker).Return(0, errors.New("channel closed"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/notifications/queue", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to get queue length")
	assert.NotContains(t, w.Body.String(), "channel closed")
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}

func TestHandleWebSocket_Unauthenticated(t *testing.T) {
	handler := NewNotificationHandler(new(MockNotificationUseCase), nil, nil, logger.NewNop())
	router := setupTestRouter()
	router.GET("/notifications/ws", handler.HandleWebSocket)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/notifications/ws", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleWebSocket_DeliversPublishedNotifications(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	stream := usecase.NewRedisStream(client)

	handler := NewNotificationHandler(new(MockNotificationUseCase), stream, nil, logger.NewNop())
	router := setupTestRouter()
	router.GET("/notifications/ws", as(seeker, handler.HandleWebSocket))

	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/notifications/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, stream.Publish(context.Background(), "seeker-1", []byte(`{"id":"n1"}`)))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	messageType, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, messageType)
	assert.JSONEq(t, `{"id":"n1"}`, string(payload))
}
