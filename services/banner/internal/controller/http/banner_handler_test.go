package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"horeca-board/pkg/access"
	"horeca-board/pkg/logger"
	"horeca-board/pkg/middleware"
	"horeca-board/services/banner/internal/entity"
	"horeca-board/services/banner/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBannerUseCase struct {
	mock.Mock
}

func (m *MockBannerUseCase) CreateBanner(ctx context.Context, actor *access.Identity, draft entity.Draft) (*entity.Banner, error) {
	args := m.Called(actor, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Banner), args.Error(1)
}

func (m *MockBannerUseCase) CreateBannerDirect(ctx context.Context, actor *access.Identity, draft entity.Draft) (*entity.Banner, error) {
	args := m.Called(actor, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Banner), args.Error(1)
}

func (m *MockBannerUseCase) UploadImage(ctx context.Context, actor *access.Identity, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(actor, filename, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBannerUseCase) Approve(ctx context.Context, actor *access.Identity, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockBannerUseCase) Reject(ctx context.Context, actor *access.Identity, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockBannerUseCase) Reactivate(ctx context.Context, actor *access.Identity, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockBannerUseCase) SetPriority(ctx context.Context, actor *access.Identity, id string, dir entity.Direction) error {
	return m.Called(actor, id, dir).Error(0)
}

func (m *MockBannerUseCase) ToggleActive(ctx context.Context, actor *access.Identity, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockBannerUseCase) DeleteBanner(ctx context.Context, actor *access.Identity, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockBannerUseCase) ListActiveBanners(ctx context.Context) []*entity.Banner {
	return m.Called().Get(0).([]*entity.Banner)
}

func (m *MockBannerUseCase) ListOwnerBanners(ctx context.Context, actor *access.Identity, userID string) ([]*entity.Banner, error) {
	args := m.Called(actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Banner), args.Error(1)
}

func (m *MockBannerUseCase) ListBannersByStatus(ctx context.Context, actor *access.Identity, status entity.Status) ([]*entity.Banner, error) {
	args := m.Called(actor, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Banner), args.Error(1)
}

func (m *MockBannerUseCase) ExpireElapsed(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

var _ usecase.BannerUseCase = (*MockBannerUseCase)(nil)

var (
	employer  = &access.Identity{UserID: "employer-1", Role: access.RoleEmployer}
	moderator = &access.Identity{UserID: "mod-1", Role: access.RoleModerator}
)

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

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListActive_ReturnsEligibleBanners(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.GET("/banners/active", handler.ListActive)

	mockUseCase.On("ListActiveBanners").Return([]*entity.Banner{{ID: "b1", Title: "Chef"}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/banners/active", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, false, body["default"])
	mockUseCase.AssertExpectations(t)
}

func TestListActive_FallsBackToDefaults(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.GET("/banners/active", handler.ListActive)

	mockUseCase.On("ListActiveBanners").Return([]*entity.Banner{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/banners/active", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["default"])
	assert.Equal(t, float64(3), body["count"])
}

func TestCreateBanner_Success(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.POST("/banners", as(employer, handler.CreateBanner))

	draft := entity.Draft{Title: "Sous-chef", ImageURL: "https://cdn/b.png", Link: "/jobs/1"}
	mockUseCase.On("CreateBanner", employer, draft).
		Return(&entity.Banner{ID: "b1", Title: "Sous-chef", Status: entity.StatusPending}, nil)

	payload, _ := json.Marshal(map[string]string{"title": "Sous-chef", "image_url": "https://cdn/b.png", "link": "/jobs/1"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/banners", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	mockUseCase.AssertExpectations(t)
}

func TestCreateBanner_ValidationError(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.POST("/banners", as(employer, handler.CreateBanner))

	mockUseCase.On("CreateBanner", employer, mock.Anything).
		Return(nil, fmt.Errorf("%w: title is required", entity.ErrValidation))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/banners", bytes.NewBufferString(`{"image_url":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "title is required")
}

func TestMutations_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", access.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", access.ErrForbidden, http.StatusForbidden},
		{"not found", entity.ErrNotFound, http.StatusNotFound},
		{"invalid transition", fmt.Errorf("%w: banner is pending", entity.ErrInvalidTransition), http.StatusConflict},
		{"store failure", fmt.Errorf("failed to reactivate banner: %w", io.ErrUnexpectedEOF), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockUseCase := new(MockBannerUseCase)
			handler := NewBannerHandler(mockUseCase, logger.NewNop())
			router := setupTestRouter()
			router.POST("/banners/:id/reactivate", as(employer, handler.Reactivate))

			mockUseCase.On("Reactivate", employer, "b1").Return(tc.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/banners/b1/reactivate", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestApprove_Success(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.POST("/admin/banners/:id/approve", as(moderator, handler.Approve))

	mockUseCase.On("Approve", moderator, "b1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/banners/b1/approve", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
	mockUseCase.AssertExpectations(t)
}

func TestSetPriority(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.POST("/admin/banners/:id/priority", as(moderator, handler.SetPriority))

	mockUseCase.On("SetPriority", moderator, "b1", entity.Down).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/banners/b1/priority", bytes.NewBufferString(`{"direction":"down"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/admin/banners/b1/priority", bytes.NewBufferString(`{"direction":"sideways"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockUseCase.AssertNumberOfCalls(t, "SetPriority", 1)
}

func TestListByStatus(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.GET("/admin/banners", as(moderator, handler.ListByStatus))

	mockUseCase.On("ListBannersByStatus", moderator, entity.StatusRejected).
		Return([]*entity.Banner{{ID: "b2", Status: entity.StatusRejected}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/banners?status=rejected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin/banners?status=archived", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteBanner_RequiresConfirmation(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	admin := &access.Identity{UserID: "admin-1", Role: access.RoleAdmin}
	router := setupTestRouter()
	router.DELETE("/admin/banners/:id", as(admin, handler.DeleteBanner))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/banners/b1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "DeleteBanner", mock.Anything, mock.Anything)

	mockUseCase.On("DeleteBanner", admin, "b1").Return(nil)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/admin/banners/b1?confirm=true", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestListMine(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.GET("/banners/mine", as(employer, handler.ListMine))

	mockUseCase.On("ListOwnerBanners", employer, "employer-1").
		Return([]*entity.Banner{{ID: "b1"}, {ID: "b2"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/banners/mine", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["count"])
}

func TestUploadImage(t *testing.T) {
	mockUseCase := new(MockBannerUseCase)
	handler := NewBannerHandler(mockUseCase, logger.NewNop())
	router := setupTestRouter()
	router.POST("/banners/upload", as(employer, handler.UploadImage))

	mockUseCase.On("UploadImage", employer, "promo.png", "application/octet-stream").
		Return("https://cdn/banners/employer-1/x.png", nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("image", "promo.png")
	part.Write([]byte("png"))
	writer.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/banners/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "https://cdn/banners/employer-1/x.png", decode(t, w)["image_url"])
	mockUseCase.AssertExpectations(t)
}
