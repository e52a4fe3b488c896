package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attendly/ems-backend-go/internal/config"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeUUID = "8e7a4e1a-1111-2222-3333-444455556666"

func okResponse(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type stubAuthHandler struct{}

func (stubAuthHandler) Register(w http.ResponseWriter, r *http.Request)       { okResponse(w, r) }
func (stubAuthHandler) Login(w http.ResponseWriter, r *http.Request)          { okResponse(w, r) }
func (stubAuthHandler) Logout(w http.ResponseWriter, r *http.Request)         { okResponse(w, r) }
func (stubAuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request)   { okResponse(w, r) }
func (stubAuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) { okResponse(w, r) }
func (stubAuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request)  { okResponse(w, r) }

type stubEmployeeHandler struct{}

func (stubEmployeeHandler) Create(w http.ResponseWriter, r *http.Request)            { okResponse(w, r) }
func (stubEmployeeHandler) List(w http.ResponseWriter, r *http.Request)              { okResponse(w, r) }
func (stubEmployeeHandler) Me(w http.ResponseWriter, r *http.Request)                { okResponse(w, r) }
func (stubEmployeeHandler) Get(w http.ResponseWriter, r *http.Request)               { okResponse(w, r) }
func (stubEmployeeHandler) Update(w http.ResponseWriter, r *http.Request)            { okResponse(w, r) }
func (stubEmployeeHandler) Delete(w http.ResponseWriter, r *http.Request)            { okResponse(w, r) }
func (stubEmployeeHandler) AttendanceSummary(w http.ResponseWriter, r *http.Request) { okResponse(w, r) }

type stubAttendanceHandler struct{}

func (stubAttendanceHandler) ClockIn(w http.ResponseWriter, r *http.Request)    { okResponse(w, r) }
func (stubAttendanceHandler) ClockOut(w http.ResponseWriter, r *http.Request)   { okResponse(w, r) }
func (stubAttendanceHandler) Today(w http.ResponseWriter, r *http.Request)      { okResponse(w, r) }
func (stubAttendanceHandler) ByEmployee(w http.ResponseWriter, r *http.Request) { okResponse(w, r) }
func (stubAttendanceHandler) All(w http.ResponseWriter, r *http.Request)        { okResponse(w, r) }
func (stubAttendanceHandler) ByID(w http.ResponseWriter, r *http.Request)       { okResponse(w, r) }

type stubReportHandler struct{}

func (stubReportHandler) Generate(w http.ResponseWriter, r *http.Request)       { okResponse(w, r) }
func (stubReportHandler) DownloadPDF(w http.ResponseWriter, r *http.Request)    { okResponse(w, r) }
func (stubReportHandler) DownloadExcel(w http.ResponseWriter, r *http.Request)  { okResponse(w, r) }
func (stubReportHandler) EmployeeReport(w http.ResponseWriter, r *http.Request) { okResponse(w, r) }
func (stubReportHandler) Dashboard(w http.ResponseWriter, r *http.Request)      { okResponse(w, r) }

func newRouterTestServer(t *testing.T) (http.Handler, jwt.Service) {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{
			Env:         "test",
			LogLevel:    "error",
			CORSOrigins: []string{"http://localhost:3000"},
		},
	}
	jwtService := jwt.NewJWTService("router-test-secret", "1h", "24h", "1h")

	router := NewRouter(cfg, jwtService, stubAuthHandler{}, stubEmployeeHandler{}, stubAttendanceHandler{}, stubReportHandler{})
	return router, jwtService
}

func bearerToken(t *testing.T, jwtService jwt.Service, role user.Role) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(testEmployeeUUID, "router@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doGet(t *testing.T, router http.Handler, path, authorization string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", authorization)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestRouter_AttendanceSummaryRequiresManager(t *testing.T) {
	router, jwtService := newRouterTestServer(t)
	path := fmt.Sprintf("/api/v1/employees/%s/attendance-summary", testEmployeeUUID)

	assert.Equal(t, http.StatusForbidden, doGet(t, router, path, bearerToken(t, jwtService, user.RoleEmployee)))
	assert.Equal(t, http.StatusOK, doGet(t, router, path, bearerToken(t, jwtService, user.RoleManager)))
	assert.Equal(t, http.StatusOK, doGet(t, router, path, bearerToken(t, jwtService, user.RoleAdmin)))
}

func TestRouter_AttendanceAllPath(t *testing.T) {
	router, jwtService := newRouterTestServer(t)

	assert.Equal(t, http.StatusOK, doGet(t, router, "/api/v1/attendance/all", bearerToken(t, jwtService, user.RoleManager)))
	assert.Equal(t, http.StatusForbidden, doGet(t, router, "/api/v1/attendance/all", bearerToken(t, jwtService, user.RoleEmployee)))
}

func TestRouter_ReportPaths(t *testing.T) {
	router, jwtService := newRouterTestServer(t)
	manager := bearerToken(t, jwtService, user.RoleManager)

	monthly := fmt.Sprintf("/api/v1/reports/employee/%s/monthly/2026/3", testEmployeeUUID)
	assert.Equal(t, http.StatusOK, doGet(t, router, monthly, manager))
	assert.Equal(t, http.StatusOK, doGet(t, router, "/api/v1/reports/dashboard", manager))

	assert.Equal(t, http.StatusForbidden, doGet(t, router, "/api/v1/reports/dashboard", bearerToken(t, jwtService, user.RoleEmployee)))
}

func TestRouter_UnauthenticatedRejected(t *testing.T) {
	router, _ := newRouterTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
