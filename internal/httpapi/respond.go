package httpapi

import (
	"errors"
	"net/http"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusOverride maps one specific error to a route-specific status.
type statusOverride struct {
	target error
	status int
}

func on(target error, status int) statusOverride {
	return statusOverride{target: target, status: status}
}

func statusFor(err error, overrides []statusOverride) int {
	for _, o := range overrides {
		if errors.Is(err, o.target) {
			return o.status
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Unclassified errors are logged and
// reported with a generic message.
func (h *handlers) respondError(c *gin.Context, err error, overrides ...statusOverride) {
	status := statusFor(err, overrides)
	if status == http.StatusInternalServerError {
		h.Logger.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
