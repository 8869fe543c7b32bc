package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuecore/backend/internal/infrastructure/auth"
	"github.com/venuecore/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthTestService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-bytes-long",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "venuecore-test",
	})
}

func newAuthTestRouter(svc *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))

	router.GET("/bookings", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newAuthTestService(t)
	hotelID := uuid.New()
	userID := uuid.New()

	token, _, err := svc.GenerateToken(auth.GenerateTokenInput{
		HotelID:       hotelID,
		UserID:        userID,
		Username:      "manager@hotel.test",
		Role:          "manager",
		Impersonating: true,
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/bookings", func(c *gin.Context) {
		assert.Equal(t, hotelID, GetHotelID(c))
		assert.Equal(t, userID, GetUserID(c))
		assert.Equal(t, "manager", GetRole(c))

		actor := GetAuditContext(c)
		assert.Equal(t, userID, actor.ActorID)
		assert.True(t, actor.IsImpersonating)

		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	router := newAuthTestRouter(newAuthTestService(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	router := newAuthTestRouter(newAuthTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-bytes-long",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "venuecore-test",
	})
	token, _, err := expired.GenerateToken(auth.GenerateTokenInput{
		HotelID: uuid.New(),
		UserID:  uuid.New(),
		Role:    "admin",
	})
	require.NoError(t, err)

	router := newAuthTestRouter(newAuthTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	router := newAuthTestRouter(newAuthTestService(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
