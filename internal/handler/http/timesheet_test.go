package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronohr/timesheet-backend-go/internal/domain/employee"
	"github.com/chronohr/timesheet-backend-go/internal/domain/ruleset"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/jwt"
	"github.com/chronohr/timesheet-backend-go/internal/pkg/timeutil"
	"github.com/chronohr/timesheet-backend-go/internal/repository/memory"
	rulesetService "github.com/chronohr/timesheet-backend-go/internal/service/ruleset"
	shiftService "github.com/chronohr/timesheet-backend-go/internal/service/shift"
	timesheetService "github.com/chronohr/timesheet-backend-go/internal/service/timesheet"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	server     *httptest.Server
	jwtService jwt.Service
	ruleSetID  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	rulesetRepo := memory.NewRuleSetRepository()
	shiftRepo := memory.NewShiftTemplateRepository()
	employeeRepo := memory.NewEmployeeRepository()
	attendanceRepo := memory.NewEventRepository()
	timesheetRepo := memory.NewTimesheetRepository()

	employeeRepo.Seed(employee.Employee{ID: "emp-1", FullName: "Dewi Lestari", Active: true})

	rs, err := rulesetRepo.Create(context.Background(), ruleset.AttendanceRuleSet{
		Name:                "Standard Office",
		StandardHoursPerDay: 8,
		RoundingPolicy:      ruleset.RoundingNone,
		NightDiffStart:      timeutil.MustClock("22:00"),
		NightDiffEnd:        timeutil.MustClock("06:00"),
		HolidayMultiplier:   1,
	})
	require.NoError(t, err)

	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")

	rulesetSvc := rulesetService.NewRuleSetService(rulesetRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, employeeRepo, nil)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo, rulesetRepo, shiftRepo, employeeRepo, attendanceRepo)

	router := NewRouter(jwtSvc,
		NewTimesheetHandler(timesheetSvc),
		NewRuleSetHandler(rulesetSvc),
		NewShiftHandler(shiftSvc),
	)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return &testServer{server: ts, jwtService: jwtSvc, ruleSetID: rs.ID}
}

func (s *testServer) token(t *testing.T, userID string, role jwt.Role) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken(userID, nil, role)
	require.NoError(t, err)
	return token
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func computeBody(ruleSetID string) map[string]interface{} {
	return map[string]interface{}{
		"employee_id": "emp-1",
		"date":        "2026-03-02",
		"rule_set_id": ruleSetID,
		"check_in":    "08:00",
		"check_out":   "17:00",
	}
}

func TestComputeEndpointRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	resp := s.request(t, http.MethodPost, "/api/v1/timesheets/compute", "", computeBody(s.ruleSetID))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestComputeEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "user-1", jwt.RoleEmployee)

	resp := s.request(t, http.MethodPost, "/api/v1/timesheets/compute", token, computeBody(s.ruleSetID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, "computed", data["status"])
	assert.Equal(t, "8", data["total_hours"])

	// Same slot again conflicts.
	resp = s.request(t, http.MethodPost, "/api/v1/timesheets/compute", token, computeBody(s.ruleSetID))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestComputeEndpointValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "user-1", jwt.RoleEmployee)

	body := computeBody(s.ruleSetID)
	body["date"] = "03/02/2026"

	resp := s.request(t, http.MethodPost, "/api/v1/timesheets/compute", token, body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestApprovalFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	employeeToken := s.token(t, "user-1", jwt.RoleEmployee)
	managerToken := s.token(t, "mgr-1", jwt.RoleManager)

	resp := s.request(t, http.MethodPost, "/api/v1/timesheets/compute", employeeToken, computeBody(s.ruleSetID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeData(t, resp)["id"].(string)

	base := fmt.Sprintf("/api/v1/timesheets/%s", id)

	// Approval needs an approver role.
	resp = s.request(t, http.MethodPost, base+"/approve", employeeToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Approval before submission is refused even for a manager.
	resp = s.request(t, http.MethodPost, base+"/approve", managerToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.request(t, http.MethodPost, base+"/submit", employeeToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.request(t, http.MethodPost, base+"/approve", managerToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.request(t, http.MethodGet, base, employeeToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, "approved", data["status"])
	assert.Equal(t, "mgr-1", data["approved_by"])
}

func TestRejectAndClearOverHTTP(t *testing.T) {
	s := newTestServer(t)
	employeeToken := s.token(t, "user-1", jwt.RoleEmployee)
	managerToken := s.token(t, "mgr-1", jwt.RoleAdmin)

	resp := s.request(t, http.MethodPost, "/api/v1/timesheets/compute", employeeToken, computeBody(s.ruleSetID))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeData(t, resp)["id"].(string)

	base := fmt.Sprintf("/api/v1/timesheets/%s", id)

	resp = s.request(t, http.MethodPost, base+"/submit", employeeToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.request(t, http.MethodPost, base+"/reject", managerToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Clearing is approver-gated.
	resp = s.request(t, http.MethodDelete, base, employeeToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.request(t, http.MethodDelete, base, managerToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The slot is free for recomputation.
	resp = s.request(t, http.MethodPost, "/api/v1/timesheets/compute", employeeToken, computeBody(s.ruleSetID))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGetUnknownTimesheet(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "user-1", jwt.RoleEmployee)

	resp := s.request(t, http.MethodGet, "/api/v1/timesheets/0195e000-0000-7000-8000-000000000000", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
