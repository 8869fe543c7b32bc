package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venuecore/backend/internal/domain/audit"
	"github.com/venuecore/backend/internal/infrastructure/auth"
	"github.com/venuecore/backend/internal/infrastructure/logger"
	"github.com/venuecore/backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	JWTClaimsKey        = "jwt_claims"
	JWTHotelIDKey       = "jwt_hotel_id"
	JWTUserIDKey        = "jwt_user_id"
	JWTRoleKey          = "jwt_role"
	JWTImpersonatingKey = "jwt_impersonating"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for the auth middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
}

// DefaultJWTConfig returns the default auth middleware configuration
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/ready",
		},
	}
}

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity on both the gin context and the request context
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig validates the bearer token with custom config
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrCodeTokenExpired, "Token has expired"))
				return
			}
			abortUnauthorized(c, "Token validation failed")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTHotelIDKey, claims.HotelID)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTRoleKey, claims.Role)
		c.Set(JWTImpersonatingKey, claims.Impersonating)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithHotelID(ctx, log, claims.HotelID)
		ctx, _ = logger.WithUserID(ctx, log, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// GetHotelID returns the authenticated hotel ID, or uuid.Nil when the
// request is unauthenticated
func GetHotelID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(JWTHotelIDKey))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetUserID returns the authenticated user ID, or uuid.Nil when the
// request is unauthenticated
func GetUserID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(JWTUserIDKey))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetRole returns the authenticated caller's role
func GetRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}

// GetAuditContext builds the audit context for the current request
func GetAuditContext(c *gin.Context) audit.Context {
	return audit.Context{
		ActorID:         GetUserID(c),
		IsImpersonating: c.GetBool(JWTImpersonatingKey),
	}
}
