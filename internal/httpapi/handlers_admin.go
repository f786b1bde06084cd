package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *handlers) monthlyReport(c *gin.Context) {
	employeeID, ok := pathInt64(c, "employeeId")
	if !ok {
		return
	}
	year, ok := pathInt(c, "year")
	if !ok {
		return
	}
	month, ok := pathInt(c, "month")
	if !ok {
		return
	}

	report, err := h.Reports.GetMonthlyReport(c.Request.Context(), mustIdentity(c).actor(), employeeID, year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMonthlyReportResponse(report))
}

func (h *handlers) createEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	e, err := h.Employees.Create(c.Request.Context(), service.CreateEmployeeInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	msg := "Employee created successfully"
	if e.IsAdmin {
		msg = "Admin employee created successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "isAdmin": e.IsAdmin, "employeeId": e.ID})
}

// listEmployees returns every employee, or the single one named by ?id=.
func (h *handlers) listEmployees(c *gin.Context) {
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			badRequest(c, "id must be a positive integer")
			return
		}
		h.writeEmployee(c, id)
		return
	}

	list, err := h.Employees.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]employeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, newEmployeeResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) getEmployee(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	h.writeEmployee(c, id)
}

func (h *handlers) writeEmployee(c *gin.Context, id int64) {
	e, err := h.Employees.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newEmployeeResponse(e))
}

func (h *handlers) updateEmployee(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	_, err := h.Employees.Update(c.Request.Context(), service.UpdateEmployeeInput{
		ID:       id,
		Name:     req.Name,
		Username: req.Username,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	message(c, "Employee updated successfully")
}

func (h *handlers) deleteEmployee(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	if err := h.Employees.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, "Employee deleted successfully")
}

func (h *handlers) changePassword(c *gin.Context) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.Employees.ChangePassword(c.Request.Context(), id, req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}
	message(c, "Password changed successfully")
}

func (h *handlers) addWorkHours(c *gin.Context) {
	var req workHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.respondError(c, err)
		return
	}

	s, err := h.Employees.AddWorkHours(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			badRequest(c, "employee already has an open session")
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Work hours recorded successfully", "id": s.ID})
}
