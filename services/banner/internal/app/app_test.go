package internal

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"horeca-board/pkg/access"
	"horeca-board/pkg/config"
	"horeca-board/pkg/jwt"
	"horeca-board/pkg/logger"
	bannerHTTP "horeca-board/services/banner/internal/controller/http"
	"horeca-board/services/banner/internal/repo/persistent"
	"horeca-board/services/banner/internal/usecase"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testIdentities = access.StaticResolver{
	"owner-1": {UserID: "owner-1", Role: access.RoleEmployer},
}

func newTestRouter(t *testing.T, redisClient *redis.Client) (*gin.Engine, *jwt.Service, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	log := logger.NewNop()
	uc := usecase.NewBannerUseCase(
		persistent.NewBannerRepository(db),
		nil,
		usecase.NewRedisActiveCache(redisClient, activeCacheTTL, log),
		log,
	)
	cfg := &config.Config{CORSOrigins: []string{"http://localhost:3000"}}
	jwtService := jwt.NewService("test-secret-key")

	r := NewRouter(cfg, bannerHTTP.NewBannerHandler(uc, log), jwtService, testIdentities, nil, redisClient)
	return r, jwtService, mock
}

func TestRouter_ActiveBannersServedWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	router, _, mock := newTestRouter(t, client)
	mock.ExpectQuery(`SELECT \* FROM "banners"`).WillReturnError(errors.New("connection refused"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/banners/active", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["default"])
	assert.NotZero(t, response["count"])
}

func TestRouter_RateLimitKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	router, jwtService, mock := newTestRouter(t, client)

	mock.ExpectQuery(`SELECT \* FROM "banners"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "banners" WHERE user_id = \$1`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/banners/active", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mr.Exists("rate_limit:/api/v1/banners/active:192.0.2.1"))

	token, err := jwtService.GenerateToken("owner-1", "employer")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/banners/mine", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "99", w.Header().Get("X-RateLimit-Remaining"))
	assert.True(t, mr.Exists("rate_limit:/api/v1/banners/mine:user:owner-1"))
	assert.False(t, mr.Exists("rate_limit:/api/v1/banners/mine:192.0.2.1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_ProtectedRouteRejectsBeforeCounting(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	router, _, _ := newTestRouter(t, client)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/banners/mine", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, mr.Keys())
}
