package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-lite/internal/api/http/handlers"
	"github.com/spec-kit/hrms-lite/internal/observability"
	"github.com/spec-kit/hrms-lite/internal/repository"
	"github.com/spec-kit/hrms-lite/internal/service"
)

func newTestApp() *fiber.App {
	employeeRepo := repository.NewMemoryEmployeeRepository()
	attendanceRepo := repository.NewMemoryAttendanceRepository()

	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: attendanceRepo,
	})
	attendanceService := service.NewAttendanceService(service.AttendanceDependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: attendanceRepo,
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler("hrms-lite", "test", nil, nil),
		Employees:  handlers.NewEmployeesHandler(employeeService),
		Attendance: handlers.NewAttendanceHandler(attendanceService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var payload map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}
	return resp, payload
}

func TestEndToEndScenario(t *testing.T) {
	app := newTestApp()

	resp, created := doJSON(t, app, http.MethodPost, "/employees", map[string]string{
		"employee_id": "EMP001",
		"full_name":   "John Doe",
		"email":       "john@x.com",
		"department":  "Engineering",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create employee: expected 201, got %d (%v)", resp.StatusCode, created)
	}
	storageID, _ := created["_id"].(string)
	if created["employee_id"] != "EMP001" || storageID == "" {
		t.Fatalf("unexpected employee payload: %v", created)
	}

	resp, marked := doJSON(t, app, http.MethodPost, "/attendance", map[string]string{
		"employee_id": "EMP001",
		"date":        "2024-01-01",
		"status":      "Present",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("mark attendance: expected 201, got %d (%v)", resp.StatusCode, marked)
	}

	resp, summary := doJSON(t, app, http.MethodGet, "/attendance/summary/EMP001", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", resp.StatusCode)
	}
	if summary["total_records"] != float64(1) || summary["present_days"] != float64(1) {
		t.Fatalf("unexpected summary: %v", summary)
	}
	if summary["absent_days"] != float64(0) || summary["attendance_percentage"] != float64(100) {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestCreateEmployeeValidationFailure(t *testing.T) {
	app := newTestApp()

	resp, payload := doJSON(t, app, http.MethodPost, "/employees", map[string]string{
		"employee_id": "EMP001",
		"full_name":   "   ",
		"email":       "john@x.com",
		"department":  "Engineering",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (%v)", resp.StatusCode, payload)
	}
}

func TestDuplicateEmployeeReturnsBadRequest(t *testing.T) {
	app := newTestApp()

	body := map[string]string{
		"employee_id": "EMP001",
		"full_name":   "John Doe",
		"email":       "john@x.com",
		"department":  "Engineering",
	}
	if resp, _ := doJSON(t, app, http.MethodPost, "/employees", body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create failed: %d", resp.StatusCode)
	}
	resp, payload := doJSON(t, app, http.MethodPost, "/employees", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", resp.StatusCode, payload)
	}
}

func TestGetUnknownEmployee(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodGet, "/employees/NOPE", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateEmployeeEmptyBody(t *testing.T) {
	app := newTestApp()

	doJSON(t, app, http.MethodPost, "/employees", map[string]string{
		"employee_id": "EMP001",
		"full_name":   "John Doe",
		"email":       "john@x.com",
		"department":  "Engineering",
	})

	resp, payload := doJSON(t, app, http.MethodPut, "/employees/EMP001", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", resp.StatusCode, payload)
	}
	errObj, _ := payload["error"].(map[string]any)
	if errObj["message"] != "No fields to update" {
		t.Fatalf("unexpected error payload: %v", payload)
	}
}

func TestDeleteEmployeeReturnsNoContent(t *testing.T) {
	app := newTestApp()

	doJSON(t, app, http.MethodPost, "/employees", map[string]string{
		"employee_id": "EMP001",
		"full_name":   "John Doe",
		"email":       "john@x.com",
		"department":  "Engineering",
	})

	resp, _ := doJSON(t, app, http.MethodDelete, "/employees/EMP001", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/employees/EMP001", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestAttendanceBadRecordID(t *testing.T) {
	app := newTestApp()

	resp, payload := doJSON(t, app, http.MethodGet, "/attendance/record/not-hex", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", resp.StatusCode, payload)
	}
	errObj, _ := payload["error"].(map[string]any)
	if errObj["message"] != "Invalid record ID format" {
		t.Fatalf("unexpected error payload: %v", payload)
	}
}

func TestAttendanceRecordLifecycle(t *testing.T) {
	app := newTestApp()

	doJSON(t, app, http.MethodPost, "/employees", map[string]string{
		"employee_id": "EMP001",
		"full_name":   "John Doe",
		"email":       "john@x.com",
		"department":  "Engineering",
	})
	_, marked := doJSON(t, app, http.MethodPost, "/attendance", map[string]string{
		"employee_id": "EMP001",
		"date":        "2024-01-01",
		"status":      "Present",
	})
	recordID, _ := marked["_id"].(string)
	if recordID == "" {
		t.Fatalf("no record id in response: %v", marked)
	}

	resp, updated := doJSON(t, app, http.MethodPut, "/attendance/record/"+recordID, map[string]string{
		"status": "Absent",
	})
	if resp.StatusCode != http.StatusOK || updated["status"] != "Absent" {
		t.Fatalf("update failed: %d %v", resp.StatusCode, updated)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/attendance/record/"+recordID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/attendance/record/"+recordID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAttendanceListWithUnknownEmployeeFilter(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, http.MethodGet, "/attendance?employee_id=NOPE", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestInvalidDateRangeParam(t *testing.T) {
	app := newTestApp()

	doJSON(t, app, http.MethodPost, "/employees", map[string]string{
		"employee_id": "EMP001",
		"full_name":   "John Doe",
		"email":       "john@x.com",
		"department":  "Engineering",
	})

	resp, payload := doJSON(t, app, http.MethodGet, "/attendance/employee/EMP001?start_date=01-02-2024", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", resp.StatusCode, payload)
	}
}

func TestRootEndpoint(t *testing.T) {
	app := newTestApp()

	resp, payload := doJSON(t, app, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if payload["status"] != "running" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}
