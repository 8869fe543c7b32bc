package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})

	return sr
}

func tracedRouter(t *testing.T, middleware ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "test-service"}))
	router.Use(middleware...)
	return router
}

func serverSpan(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.Name() == name {
			return span
		}
	}
	t.Fatalf("span %q not recorded", name)
	return nil
}

func spanAttribute(span sdktrace.ReadOnlySpan, key string) (string, bool) {
	for _, attr := range span.Attributes() {
		if string(attr.Key) == key {
			return attr.Value.AsString(), true
		}
	}
	return "", false
}

func TestTracing(t *testing.T) {
	t.Run("records a server span per request", func(t *testing.T) {
		sr := setupSpanRecorder(t)
		router := tracedRouter(t)
		router.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		span := serverSpan(t, sr, "GET /bookings")
		assert.True(t, span.SpanContext().IsValid())
	})

	t.Run("disabled config is a pass-through", func(t *testing.T) {
		sr := setupSpanRecorder(t)
		gin.SetMode(gin.TestMode)

		router := gin.New()
		router.Use(Tracing(TracingConfig{Enabled: false, ServiceName: "test-service"}))
		router.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, sr.Ended())
	})

	t.Run("stamps the request id from the RequestID middleware", func(t *testing.T) {
		sr := setupSpanRecorder(t)
		gin.SetMode(gin.TestMode)

		router := gin.New()
		router.Use(RequestID())
		router.Use(Tracing(TracingConfig{Enabled: true, ServiceName: "test-service"}))
		router.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("X-Request-ID", "req-abc-123")
		router.ServeHTTP(w, req)

		span := serverSpan(t, sr, "GET /bookings")
		got, ok := spanAttribute(span, "request_id")
		require.True(t, ok, "request_id attribute missing")
		assert.Equal(t, "req-abc-123", got)
	})

	t.Run("truncates an oversized request id header", func(t *testing.T) {
		sr := setupSpanRecorder(t)
		router := tracedRouter(t)
		router.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("x", 300))
		router.ServeHTTP(w, req)

		span := serverSpan(t, sr, "GET /bookings")
		got, ok := spanAttribute(span, "request_id")
		require.True(t, ok)
		assert.Len(t, got, maxRequestIDLength)
	})
}

func TestTracingAttributeInjector(t *testing.T) {
	t.Run("stamps the authenticated identity", func(t *testing.T) {
		sr := setupSpanRecorder(t)
		router := tracedRouter(t,
			func(c *gin.Context) {
				c.Set(JWTHotelIDKey, "b6f0e0a2-5b19-4d0d-9a0f-0f8f6a3d9c11")
				c.Set(JWTUserIDKey, "2f5cbb7e-42a6-4b59-8f9d-8a1f3f7b2d44")
				c.Next()
			},
			TracingAttributeInjector(),
		)
		router.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		router.ServeHTTP(w, req)

		span := serverSpan(t, sr, "GET /bookings")
		hotelID, ok := spanAttribute(span, "hotel_id")
		require.True(t, ok, "hotel_id attribute missing")
		assert.Equal(t, "b6f0e0a2-5b19-4d0d-9a0f-0f8f6a3d9c11", hotelID)

		userID, ok := spanAttribute(span, "user_id")
		require.True(t, ok, "user_id attribute missing")
		assert.Equal(t, "2f5cbb7e-42a6-4b59-8f9d-8a1f3f7b2d44", userID)
	})

	t.Run("does not panic without a recording span", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		router := gin.New()
		router.Use(TracingAttributeInjector())
		router.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSpanErrorMarker(t *testing.T) {
	statusTests := []struct {
		name        string
		status      int
		description string
	}{
		{"not found", http.StatusNotFound, "Not Found"},
		{"unauthorized", http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", http.StatusForbidden, "Forbidden"},
		{"bad request", http.StatusBadRequest, "Client Error"},
	}

	for _, tt := range statusTests {
		t.Run(tt.name, func(t *testing.T) {
			sr := setupSpanRecorder(t)
			router := tracedRouter(t, SpanErrorMarker())
			router.GET("/bookings", func(c *gin.Context) {
				c.JSON(tt.status, gin.H{"error": tt.name})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
			router.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			span := serverSpan(t, sr, "GET /bookings")
			assert.Equal(t, codes.Error, span.Status().Code)
			assert.Equal(t, tt.description, span.Status().Description)
		})
	}

	t.Run("server errors are marked", func(t *testing.T) {
		sr := setupSpanRecorder(t)
		router := tracedRouter(t, SpanErrorMarker())
		router.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		router.ServeHTTP(w, req)

		// otelgin may set its own description for 5xx; the code is what matters
		span := serverSpan(t, sr, "GET /bookings")
		assert.Equal(t, codes.Error, span.Status().Code)
	})

	t.Run("success leaves the span status unset", func(t *testing.T) {
		sr := setupSpanRecorder(t)
		router := tracedRouter(t, SpanErrorMarker())
		router.GET("/bookings", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"items": []string{}})
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		router.ServeHTTP(w, req)

		span := serverSpan(t, sr, "GET /bookings")
		assert.NotEqual(t, codes.Error, span.Status().Code)
	})
}
