package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/auth"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Deps are the collaborators the HTTP layer dispatches to.
type Deps struct {
	Attendance  service.AttendanceService
	Reports     service.ReportService
	Employees   service.EmployeeService
	Auth        service.AuthService
	Tokens      TokenVerifier
	Logger      *slog.Logger
	CORSOrigins []string
	// Now picks the default month of /attendance/monthly. Nil means time.Now.
	Now func() time.Time
}

type handlers struct {
	Deps
}

// NewHandler builds the routed gin engine wrapped in CORS handling.
func NewHandler(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{Deps: d}

	engine := gin.New()
	engine.Use(requestID(), requestLogger(d.Logger), recoverer(d.Logger))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	authGroup := engine.Group("/auth")
	authGroup.POST("/login", h.login)
	authGroup.POST("/setup-admin", h.setupAdmin)

	authed := engine.Group("/", authenticate(d.Tokens))

	attendance := authed.Group("/attendance")
	attendance.POST("/checkin", h.checkIn)
	attendance.POST("/checkout", h.checkOut)
	attendance.GET("/current", h.currentSession)
	attendance.GET("/monthly", h.monthlyStats)

	// Admins read any report, employees only their own.
	authed.GET("/admin/monthly-report/:employeeId/:year/:month", h.monthlyReport)

	admin := authed.Group("/admin", requireAdmin())
	admin.POST("/employees", h.createEmployee)
	admin.GET("/employees", h.listEmployees)
	admin.GET("/employees/:id", h.getEmployee)
	admin.PUT("/employees/:id", h.updateEmployee)
	admin.DELETE("/employees/:id", h.deleteEmployee)
	admin.PUT("/employees/:id/password", h.changePassword)
	admin.POST("/work-hours", h.addWorkHours)

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	})(engine)
}

// NewServer wraps handler in an http.Server with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
