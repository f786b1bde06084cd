package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/auth"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/db"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/domain"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/repository"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/service"
	"github.com/adaotilia/Employee-Attendance-Api-Finale/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const (
	adminPassword = "admin-secret"
	userPassword  = "user-secret"
)

type testAPI struct {
	handler http.Handler
	clock   *testutil.Clock
	tokens  *auth.TokenIssuer
	staff   service.EmployeeService

	admin      *domain.Employee
	user       *domain.Employee
	adminToken string
	userToken  string
}

// newTestAPI serves the full stack over an in-memory database. With seed,
// it creates an administrator and a regular employee.
func newTestAPI(t *testing.T, seed bool) *testAPI {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewClock(time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local))
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewTokenIssuer("http-test-secret", time.Hour).WithClock(clock.Now)
	uow := testutil.NewTestUoW(database)

	employees := repository.NewSQLEmployeeRepo(database)
	sessions := repository.NewSQLWorkSessionRepo(database)
	monthly := repository.NewSQLMonthlyWorkRepo(database, db.SQLite)

	api := &testAPI{
		clock:  clock,
		tokens: tokens,
		staff:  service.NewEmployeeService(employees, sessions, hasher, uow, db.SQLite),
	}
	api.handler = NewHandler(Deps{
		Attendance: service.NewAttendanceService(employees, sessions, uow, db.SQLite, clock.Now),
		Reports:    service.NewReportService(employees, sessions, monthly),
		Employees:  api.staff,
		Auth:       service.NewAuthService(employees, hasher, tokens, uow),
		Tokens:     tokens,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:        clock.Now,
	})

	if seed {
		api.admin = api.createEmployee(t, "boss", adminPassword, true)
		api.user = api.createEmployee(t, "alice", userPassword, false)
		api.adminToken = api.token(t, api.admin)
		api.userToken = api.token(t, api.user)
	}
	return api
}

func (a *testAPI) createEmployee(t *testing.T, username, password string, admin bool) *domain.Employee {
	t.Helper()
	e, err := a.staff.Create(context.Background(), service.CreateEmployeeInput{
		Name:     username + " name",
		Username: username,
		Password: password,
		IsAdmin:  admin,
	})
	require.NoError(t, err)
	return e
}

func (a *testAPI) token(t *testing.T, e *domain.Employee) string {
	t.Helper()
	tok, _, err := a.tokens.Issue(e)
	require.NoError(t, err)
	return tok
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t, false)
	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeObject(t, rec)["ok"])
}

func TestRequestID(t *testing.T) {
	api := newTestAPI(t, false)

	rec := api.do(t, http.MethodGet, "/healthz", "", nil)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "trace-123")
	rec = httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(requestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t, false)
	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Less(t, rec.Code, 300)
}

func TestAuthentication(t *testing.T) {
	api := newTestAPI(t, true)

	t.Run("missing token", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/attendance/current", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, decodeObject(t, rec), "error")
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/attendance/current", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/attendance/current", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-admin on admin route", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/admin/employees", api.userToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		tok := api.token(t, api.user)
		api.clock.Advance(2 * time.Hour)
		rec := api.do(t, http.MethodGet, "/attendance/current", tok, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, true)

	rec := api.do(t, http.MethodPost, "/auth/login", "", credentialsRequest{Username: "alice", Password: userPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeObject(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.EqualValues(t, api.user.ID, body["employeeId"])
	assert.Equal(t, "alice name", body["name"])
	assert.Equal(t, false, body["isAdmin"])

	// The issued token authenticates.
	rec = api.do(t, http.MethodGet, "/attendance/monthly", body["token"].(string), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/auth/login", "", credentialsRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodPost, "/auth/login", "", credentialsRequest{Username: "nobody", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupAdmin(t *testing.T) {
	api := newTestAPI(t, false)

	rec := api.do(t, http.MethodPost, "/auth/setup-admin", "", credentialsRequest{Username: "root", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeObject(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["message"])
	assert.Equal(t, true, body["isAdmin"])
	assert.Equal(t, service.SetupAdminName, body["name"])

	rec = api.do(t, http.MethodPost, "/auth/setup-admin", "", credentialsRequest{Username: "again", Password: "s3cret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/auth/setup-admin", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceFlow(t *testing.T) {
	api := newTestAPI(t, true)
	tok := api.userToken

	rec := api.do(t, http.MethodGet, "/attendance/current", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/attendance/checkout", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/attendance/checkin", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	session := decodeObject(t, rec)
	assert.EqualValues(t, api.user.ID, session["employeeId"])
	assert.Nil(t, session["checkOut"])

	rec = api.do(t, http.MethodPost, "/attendance/checkin", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.clock.Advance(90*time.Minute + 59*time.Second)
	rec = api.do(t, http.MethodGet, "/attendance/current", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decodeObject(t, rec)
	assert.Equal(t, session["id"], current["id"])
	assert.Equal(t, "01:30", current["workedTime"])

	rec = api.do(t, http.MethodPost, "/attendance/checkout", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decodeObject(t, rec)["checkOut"])

	rec = api.do(t, http.MethodGet, "/attendance/current", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/attendance/monthly", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeList(t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-03-10", entries[0]["date"])
	assert.Equal(t, "01:30", entries[0]["workedTime"])

	rec = api.do(t, http.MethodGet, "/attendance/monthly?year=2025&month=2", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestAttendanceMonthlyBadQuery(t *testing.T) {
	api := newTestAPI(t, true)

	for _, q := range []string{"?month=abc", "?month=13", "?year=0", "?year=x"} {
		rec := api.do(t, http.MethodGet, "/attendance/monthly"+q, api.userToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestCheckInDeletedEmployee(t *testing.T) {
	api := newTestAPI(t, true)
	require.NoError(t, api.staff.Delete(context.Background(), api.user.ID))

	rec := api.do(t, http.MethodPost, "/attendance/checkin", api.userToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(t, http.MethodPost, "/attendance/checkout", api.userToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMonthlyReport(t *testing.T) {
	api := newTestAPI(t, true)
	tok := api.userToken

	path := "/admin/monthly-report/" + itoa(api.user.ID) + "/2025/3"

	rec := api.do(t, http.MethodGet, path, api.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no completed session yet")

	api.do(t, http.MethodPost, "/attendance/checkin", tok, nil)
	api.clock.Advance(30 * time.Minute)
	api.do(t, http.MethodPost, "/attendance/checkout", tok, nil)
	api.clock.Advance(time.Hour)
	api.do(t, http.MethodPost, "/attendance/checkin", tok, nil)
	api.clock.Advance(45 * time.Minute)
	api.do(t, http.MethodPost, "/attendance/checkout", tok, nil)

	rec = api.do(t, http.MethodGet, path, api.adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decodeObject(t, rec)
	assert.EqualValues(t, api.user.ID, report["employeeId"])
	assert.Equal(t, "alice name", report["employeeName"])
	assert.EqualValues(t, 2025, report["year"])
	assert.EqualValues(t, 3, report["month"])
	assert.EqualValues(t, 75, report["totalWorkedMinutes"])
	stats := report["dailyStats"].([]any)
	require.Len(t, stats, 2)
	assert.EqualValues(t, 30, stats[0].(map[string]any)["workedMinutes"])
	assert.Equal(t, "2025-03-10", stats[0].(map[string]any)["date"])

	// Employees may read their own report.
	rec = api.do(t, http.MethodGet, path, tok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/monthly-report/"+itoa(api.admin.ID)+"/2025/3", tok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/monthly-report/9999/2025/3", api.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/monthly-report/"+itoa(api.user.ID)+"/2025/13", api.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/monthly-report/abc/2025/3", api.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEmployeeAdministration(t *testing.T) {
	api := newTestAPI(t, true)
	tok := api.adminToken

	rec := api.do(t, http.MethodPost, "/admin/employees", tok, createEmployeeRequest{
		Name: "Bob", Username: "bob", Password: "bob-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeObject(t, rec)
	assert.Equal(t, false, created["isAdmin"])
	assert.NotEmpty(t, created["message"])
	bobID := int64(created["employeeId"].(float64))

	rec = api.do(t, http.MethodPost, "/admin/employees", tok, createEmployeeRequest{
		Name: "Bobby", Username: "bob", Password: "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/admin/employees", tok, createEmployeeRequest{Username: "nameless", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/employees", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, rec)
	assert.Len(t, list, 3)
	for _, e := range list {
		assert.NotContains(t, e, "passwordHash")
		assert.NotContains(t, e, "password")
	}

	rec = api.do(t, http.MethodGet, "/admin/employees?id="+itoa(bobID), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bob", decodeObject(t, rec)["username"])

	rec = api.do(t, http.MethodGet, "/admin/employees?id=9999", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/employees/"+itoa(bobID), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bob", decodeObject(t, rec)["name"])

	rec = api.do(t, http.MethodPut, "/admin/employees/"+itoa(bobID), tok, updateEmployeeRequest{
		Name: "Robert", Username: "robert", IsAdmin: true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/admin/employees/"+itoa(bobID), tok, nil)
	updated := decodeObject(t, rec)
	assert.Equal(t, "Robert", updated["name"])
	assert.Equal(t, "robert", updated["username"])
	assert.Equal(t, true, updated["isAdmin"])

	rec = api.do(t, http.MethodPut, "/admin/employees/"+itoa(bobID), tok, updateEmployeeRequest{
		Name: "Robert", Username: "alice",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPut, "/admin/employees/9999", tok, updateEmployeeRequest{Name: "X", Username: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPut, "/admin/employees/"+itoa(bobID)+"/password", tok, changePasswordRequest{NewPassword: "fresh-pass"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodPost, "/auth/login", "", credentialsRequest{Username: "robert", Password: "fresh-pass"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPut, "/admin/employees/"+itoa(bobID)+"/password", tok, changePasswordRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPut, "/admin/employees/9999/password", tok, changePasswordRequest{NewPassword: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodDelete, "/admin/employees/"+itoa(bobID), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodDelete, "/admin/employees/"+itoa(bobID), tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(t, http.MethodGet, "/admin/employees/"+itoa(bobID), tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/employees/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddWorkHours(t *testing.T) {
	api := newTestAPI(t, true)
	tok := api.adminToken

	rec := api.do(t, http.MethodPost, "/admin/work-hours", tok, map[string]any{
		"employeeId": api.user.ID,
		"checkIn":    "2025-03-03T08:00:00",
		"checkOut":   "2025-03-03T16:30:00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotZero(t, decodeObject(t, rec)["id"])

	rec = api.do(t, http.MethodGet, "/attendance/monthly", api.userToken, nil)
	entries := decodeList(t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "08:30", entries[0]["workedTime"])

	// Manual entries leave the monthly total untouched.
	rec = api.do(t, http.MethodGet, "/admin/monthly-report/"+itoa(api.user.ID)+"/2025/3", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	open := map[string]any{"employeeId": api.user.ID, "checkIn": "2025-03-04T08:00:00Z"}
	rec = api.do(t, http.MethodPost, "/admin/work-hours", tok, open)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodPost, "/admin/work-hours", tok, open)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/admin/work-hours", tok, map[string]any{"employeeId": 9999, "checkIn": "2025-03-04T08:00:00"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/admin/work-hours", tok, map[string]any{"employeeId": api.user.ID, "checkIn": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/admin/work-hours", tok, map[string]any{"employeeId": api.user.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/admin/work-hours", api.userToken, open)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
