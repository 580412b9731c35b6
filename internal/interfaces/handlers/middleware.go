package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/services"
	"dochub-server/internal/interfaces/dto"
	"dochub-server/pkg/errors"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const principalKey = "principal"

func respondWithError(c *gin.Context, httpStatus, errorCode int, message string) {
	c.AbortWithStatusJSON(httpStatus, dto.APIResponse{
		Error: &dto.ErrorResponse{
			Code: errorCode,
			Text: message,
		},
	})
}

func respondWithSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.APIResponse{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.APIResponse{Data: data})
}

func handleServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errors.BadRequestError:
		respondWithError(c, http.StatusBadRequest, 400, e.Message)
	case *errors.UnauthorizedError:
		respondWithError(c, http.StatusUnauthorized, 401, e.Message)
	case *errors.ForbiddenError:
		respondWithError(c, http.StatusForbidden, 403, e.Message)
	case *errors.NotFoundError:
		respondWithError(c, http.StatusNotFound, 404, e.Message)
	case *errors.ConflictError:
		respondWithError(c, http.StatusConflict, 409, e.Message)
	case *errors.InternalError:
		respondWithError(c, http.StatusInternalServerError, 500, e.Message)
	default:
		respondWithError(c, http.StatusInternalServerError, 500, "internal server error")
	}
}

// AuthMiddleware resolves the bearer credential to a principal. Both session
// tokens and API tokens arrive through the same Authorization header.
func AuthMiddleware(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := extractBearer(c)

		principal, err := authSvc.Resolve(c.Request.Context(), bearer)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// SessionOnly rejects service principals; endpoints behind it belong to the
// human session flow (API tokens are never valid there).
func SessionOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principalFromContext(c)
		if p == nil || p.Kind != entities.PrincipalSession {
			respondWithError(c, http.StatusUnauthorized, 401, "session required")
			return
		}
		c.Next()
	}
}

// AdminOnly is the role gate.
func AdminOnly(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principalFromContext(c)
		if p == nil {
			respondWithError(c, http.StatusUnauthorized, 401, "missing credentials")
			return
		}
		if err := authSvc.RequireAdmin(p); err != nil {
			handleServiceError(c, err)
			return
		}
		c.Next()
	}
}

// Permission is the permission gate for service principals; session
// principals pass through and are filtered by the role/team model instead.
func Permission(authSvc *services.AuthService, perm entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principalFromContext(c)
		if p == nil {
			respondWithError(c, http.StatusUnauthorized, 401, "missing credentials")
			return
		}
		if err := authSvc.RequirePermission(p, perm); err != nil {
			handleServiceError(c, err)
			return
		}
		c.Next()
	}
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimitMiddleware applies a fixed-window limit per client IP. Limiter
// backend failures fail open; throttling is protection, not a dependency.
func RateLimitMiddleware(limiter RateLimiter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			respondWithError(c, http.StatusTooManyRequests, 429, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func principalFromContext(c *gin.Context) *entities.Principal {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, ok := value.(*entities.Principal)
	if !ok {
		return nil
	}
	return principal
}

// sessionUser returns the acting user for session-only endpoints; the
// SessionOnly middleware guarantees it is present.
func sessionUser(c *gin.Context) *entities.User {
	p := principalFromContext(c)
	if p == nil || p.User == nil {
		return nil
	}
	return p.User
}
