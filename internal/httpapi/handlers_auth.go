package httpapi

import (
	"errors"
	"net/http"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAuthResponse(res, ""))
}

// setupAdmin bootstraps the first administrator. Only the very first call
// on an empty database succeeds.
func (h *handlers) setupAdmin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	res, err := h.Auth.SetupAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySetUp) || errors.Is(err, domain.ErrValidation) {
			h.respondError(c, err, on(domain.ErrAlreadySetUp, http.StatusBadRequest))
			return
		}
		h.Logger.ErrorContext(c.Request.Context(), "setup admin failed",
			"error", err,
			"request_id", c.GetString(requestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": "failed to create the admin user",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, newAuthResponse(res, "Admin user created successfully"))
}

func newAuthResponse(res *service.AuthResult, msg string) authResponse {
	return authResponse{
		Token:      res.Token,
		ExpiresAt:  res.ExpiresAt,
		EmployeeID: res.Employee.ID,
		Name:       res.Employee.Name,
		IsAdmin:    res.Employee.IsAdmin,
		Message:    msg,
	}
}
