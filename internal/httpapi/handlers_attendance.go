package httpapi

import (
	"net/http"
	"strconv"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handlers) checkIn(c *gin.Context) {
	id := mustIdentity(c)
	s, err := h.Attendance.CheckIn(c.Request.Context(), id.EmployeeID)
	if err != nil {
		h.respondError(c, err, on(domain.ErrAlreadyCheckedIn, http.StatusBadRequest))
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *handlers) checkOut(c *gin.Context) {
	id := mustIdentity(c)
	s, err := h.Attendance.CheckOut(c.Request.Context(), id.EmployeeID)
	if err != nil {
		h.respondError(c, err, on(domain.ErrNoActiveSession, http.StatusBadRequest))
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func (h *handlers) currentSession(c *gin.Context) {
	id := mustIdentity(c)
	v, err := h.Attendance.GetCurrentSession(c.Request.Context(), id.EmployeeID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, currentSessionResponse{
		ID:         v.Session.ID,
		CheckIn:    v.Session.CheckIn,
		CheckOut:   v.Session.CheckOut,
		WorkedTime: v.WorkedTime,
	})
}

// monthlyStats lists the caller's sessions for ?year=&month=, defaulting to
// the current month.
func (h *handlers) monthlyStats(c *gin.Context) {
	now := h.Now()
	year, ok := queryInt(c, "year", now.Year())
	if !ok {
		return
	}
	month, ok := queryInt(c, "month", int(now.Month()))
	if !ok {
		return
	}

	id := mustIdentity(c)
	views, err := h.Attendance.GetMonthlyStats(c.Request.Context(), id.EmployeeID, year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]monthlyEntryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, monthlyEntryResponse{
			Date:       v.Date.Format(DateLayout),
			CheckIn:    v.Session.CheckIn,
			CheckOut:   v.Session.CheckOut,
			WorkedTime: v.WorkedTime,
		})
	}
	c.JSON(http.StatusOK, out)
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, key+" must be an integer")
		return 0, false
	}
	return n, true
}

func pathInt64(c *gin.Context, key string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(key), 10, 64)
	if err != nil || n <= 0 {
		badRequest(c, key+" must be a positive integer")
		return 0, false
	}
	return n, true
}

func pathInt(c *gin.Context, key string) (int, bool) {
	n, err := strconv.Atoi(c.Param(key))
	if err != nil {
		badRequest(c, key+" must be an integer")
		return 0, false
	}
	return n, true
}
