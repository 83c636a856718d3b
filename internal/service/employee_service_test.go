package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/spec-kit/hrms-lite/internal/domain"
	"github.com/spec-kit/hrms-lite/internal/repository"
	apperrors "github.com/spec-kit/hrms-lite/pkg/util"
)

func newEmployeeService() (*EmployeeService, *repository.MemoryEmployeeRepository, *repository.MemoryAttendanceRepository) {
	employeeRepo := repository.NewMemoryEmployeeRepository()
	attendanceRepo := repository.NewMemoryAttendanceRepository()
	svc := NewEmployeeService(EmployeeDependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: attendanceRepo,
	})
	return svc, employeeRepo, attendanceRepo
}

func createInput(employeeID, email string) EmployeeCreateInput {
	return EmployeeCreateInput{
		EmployeeID: employeeID,
		FullName:   "John Doe",
		Email:      email,
		Department: "Engineering",
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestEmployeeCreateThenGetRoundTrip(t *testing.T) {
	svc, _, _ := newEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("EMP001", "john@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("storage identifier not assigned")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatal("created_at and updated_at must be equal on creation")
	}

	got, err := svc.Get(ctx, "EMP001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.EmployeeID != "EMP001" || got.FullName != "John Doe" || got.Email != "john@example.com" || got.Department != "Engineering" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestEmployeeGetByStorageIdentifier(t *testing.T) {
	svc, _, _ := newEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("EMP001", "john@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("get by object id: %v", err)
	}
	if got.EmployeeID != "EMP001" {
		t.Fatalf("unexpected employee: %+v", got)
	}
}

func TestEmployeeGetUnknown(t *testing.T) {
	svc, _, _ := newEmployeeService()

	_, err := svc.Get(context.Background(), "NOPE")
	if status := statusOf(t, err); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if apperrors.ToDomainError(err).Message != "Employee with ID 'NOPE' not found" {
		t.Fatalf("unexpected message: %q", apperrors.ToDomainError(err).Message)
	}
}

func TestEmployeeCreateDuplicateID(t *testing.T) {
	svc, _, _ := newEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createInput("EMP001", "john@example.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, createInput("EMP001", "other@example.com"))
	if status := statusOf(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if apperrors.ToDomainError(err).Message != "Employee with ID 'EMP001' already exists" {
		t.Fatalf("unexpected message: %q", apperrors.ToDomainError(err).Message)
	}
}

func TestEmployeeCreateDuplicateEmail(t *testing.T) {
	svc, _, _ := newEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createInput("EMP001", "john@example.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, createInput("EMP002", "john@example.com"))
	if status := statusOf(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if apperrors.ToDomainError(err).Message != "Employee with email 'john@example.com' already exists" {
		t.Fatalf("unexpected message: %q", apperrors.ToDomainError(err).Message)
	}
}

func TestEmployeeUpdateMergesPartialFields(t *testing.T) {
	svc, _, _ := newEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("EMP001", "john@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	dept := "Platform"
	updated, err := svc.Update(ctx, "EMP001", domain.EmployeePatch{Department: &dept})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Department != "Platform" {
		t.Fatalf("department not applied: %+v", updated)
	}
	if updated.FullName != "John Doe" || updated.Email != "john@example.com" {
		t.Fatalf("unspecified fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatal("updated_at did not advance")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("created_at must not change on update")
	}
}

func TestEmployeeUpdateEmptyPatch(t *testing.T) {
	svc, _, _ := newEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createInput("EMP001", "john@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Update(ctx, "EMP001", domain.EmployeePatch{})
	if status := statusOf(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if apperrors.ToDomainError(err).Message != "No fields to update" {
		t.Fatalf("unexpected message: %q", apperrors.ToDomainError(err).Message)
	}
}

func TestEmployeeUpdateEmailConflict(t *testing.T) {
	svc, _, _ := newEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createInput("EMP001", "john@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, createInput("EMP002", "jane@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	email := "jane@example.com"
	_, err := svc.Update(ctx, "EMP001", domain.EmployeePatch{Email: &email})
	if status := statusOf(t, err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if apperrors.ToDomainError(err).Message != "Email 'jane@example.com' is already in use" {
		t.Fatalf("unexpected message: %q", apperrors.ToDomainError(err).Message)
	}

	// re-submitting an employee's own email is not a conflict
	own := "john@example.com"
	if _, err := svc.Update(ctx, "EMP001", domain.EmployeePatch{Email: &own}); err != nil {
		t.Fatalf("own email should be allowed: %v", err)
	}
}

func TestEmployeeDeleteCascadesAttendance(t *testing.T) {
	svc, _, attendanceRepo := newEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, createInput("EMP001", "john@example.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		err := attendanceRepo.Insert(ctx, &domain.AttendanceRecord{
			EmployeeID: "EMP001",
			Date:       date,
			Status:     domain.AttendanceStatusPresent,
			CreatedAt:  time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("seed attendance: %v", err)
		}
	}

	if err := svc.Delete(ctx, "EMP001"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	remaining, err := attendanceRepo.ListAllByEmployee(ctx, "EMP001")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected cascade to remove all records, %d left", len(remaining))
	}
}

func TestEmployeeDeleteUnknown(t *testing.T) {
	svc, _, _ := newEmployeeService()

	err := svc.Delete(context.Background(), "NOPE")
	if status := statusOf(t, err); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestEmployeeListPaginationClamping(t *testing.T) {
	svc, _, _ := newEmployeeService()
	ctx := context.Background()

	ids := []string{"EMP001", "EMP002", "EMP003"}
	for i, id := range ids {
		input := createInput(id, id+"@example.com")
		if _, err := svc.Create(ctx, input); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	all, err := svc.List(ctx, -10, 5000)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("clamped list should return all 3, got %d", len(all))
	}
	for i, id := range ids {
		if all[i].EmployeeID != id {
			t.Fatalf("insertion order not preserved at %d: %s", i, all[i].EmployeeID)
		}
	}

	page, err := svc.List(ctx, 1, 1)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].EmployeeID != "EMP002" {
		t.Fatalf("unexpected page: %+v", page)
	}
}
