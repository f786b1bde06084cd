package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	identityKey     = "identity"
)

// Identity is the verified bearer of the request.
type Identity struct {
	EmployeeID int64
	Username   string
	Name       string
	IsAdmin    bool
}

func (id Identity) actor() service.Actor {
	return service.Actor{EmployeeID: id.EmployeeID, IsAdmin: id.IsAdmin}
}

// requestID propagates a caller-supplied X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(requestIDKey),
			"client_ip", c.ClientIP(),
		}
		if id, ok := identityFrom(c); ok {
			attrs = append(attrs, "employee_id", id.EmployeeID)
		}
		switch {
		case status >= 500:
			logger.ErrorContext(c.Request.Context(), "http_request", attrs...)
		case status >= 400:
			logger.WarnContext(c.Request.Context(), "http_request", attrs...)
		default:
			logger.InfoContext(c.Request.Context(), "http_request", attrs...)
		}
	}
}

func recoverer(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			"error", err,
			"request_id", c.GetString(requestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// authenticate rejects requests without a valid bearer token before any
// handler runs.
func authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(identityKey, Identity{
			EmployeeID: claims.EmployeeID,
			Username:   claims.Username,
			Name:       claims.Name,
			IsAdmin:    claims.IsAdmin(),
		})
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identityFrom(c)
		if !ok || !id.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator role required"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// mustIdentity is for handlers mounted behind authenticate.
func mustIdentity(c *gin.Context) Identity {
	id, _ := identityFrom(c)
	return id
}
