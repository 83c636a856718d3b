package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hrms-lite/internal/domain"
	"github.com/spec-kit/hrms-lite/internal/events"
	"github.com/spec-kit/hrms-lite/internal/repository"
	apperrors "github.com/spec-kit/hrms-lite/pkg/util"
)

// SummaryCache abstracts the attendance summary cache so services stay
// storage-agnostic. Implementations must tolerate a nil receiver path and
// never fail the request.
type SummaryCache interface {
	Get(ctx context.Context, employeeID string) *domain.AttendanceSummary
	Set(ctx context.Context, summary *domain.AttendanceSummary)
	Invalidate(ctx context.Context, employeeID string)
}

// EmployeeService owns the employee lifecycle: uniqueness of the business key
// and email, partial updates, and the cascade delete of attendance records.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	dispatcher events.Dispatcher
	cache      SummaryCache
}

// EmployeeDependencies bundles collaborators for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	AttendanceRepo repository.AttendanceRepository
	Dispatcher     events.Dispatcher
	Cache          SummaryCache
}

// EmployeeCreateInput describes a creation payload already normalized by the
// validation layer.
type EmployeeCreateInput struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		attendance: deps.AttendanceRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
	}
}

// Create persists a new employee. The id check runs before the email check so
// the first violated constraint is the one reported. The unique index on
// employee_id remains the authority under concurrent creates.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeCreateInput) (*domain.Employee, error) {
	existing, err := s.employees.FindByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("Employee with ID '%s' already exists", input.EmployeeID), nil)
	}

	existingEmail, err := s.employees.FindByEmail(ctx, input.Email, "")
	if err != nil {
		return nil, err
	}
	if existingEmail != nil {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("Employee with email '%s' already exists", input.Email), nil)
	}

	now := time.Now().UTC()
	emp := &domain.Employee{
		EmployeeID: input.EmployeeID,
		FullName:   input.FullName,
		Email:      input.Email,
		Department: input.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.employees.Insert(ctx, emp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("Employee with ID '%s' already exists", input.EmployeeID), nil)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:       events.EventEmployeeCreated,
		EmployeeID: emp.EmployeeID,
		Payload: events.EmployeeCreatedPayload{
			Email:      emp.Email,
			Department: emp.Department,
		},
	})
	return emp, nil
}

// Get resolves an employee by either identifier. A hex-shaped identifier is
// tried as a storage id first, then as the business key.
func (s *EmployeeService) Get(ctx context.Context, identifier string) (*domain.Employee, error) {
	if oid, err := primitive.ObjectIDFromHex(identifier); err == nil {
		emp, err := s.employees.FindByObjectID(ctx, oid)
		if err != nil {
			return nil, err
		}
		if emp != nil {
			return emp, nil
		}
	}

	emp, err := s.employees.FindByEmployeeID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, notFoundEmployee(identifier)
	}
	return emp, nil
}

// List returns employees in storage order with clamped pagination.
func (s *EmployeeService) List(ctx context.Context, skip, limit int) ([]domain.Employee, error) {
	skip, limit = clampPagination(skip, limit)
	return s.employees.List(ctx, skip, limit)
}

// Update applies a partial update keyed by the business identifier. Only
// supplied fields overwrite; updated_at always advances.
func (s *EmployeeService) Update(ctx context.Context, employeeID string, patch domain.EmployeePatch) (*domain.Employee, error) {
	emp, err := s.employees.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, notFoundEmployee(employeeID)
	}

	if patch.IsEmpty() {
		return nil, apperrors.NewValidationError("No fields to update", nil)
	}

	if patch.Email != nil {
		taken, err := s.employees.FindByEmail(ctx, *patch.Email, employeeID)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("Email '%s' is already in use", *patch.Email), nil)
		}
	}

	matched, err := s.employees.Update(ctx, employeeID, patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, notFoundEmployee(employeeID)
	}

	updated, err := s.employees.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFoundEmployee(employeeID)
	}

	s.publish(ctx, events.Event{
		Type:       events.EventEmployeeUpdated,
		EmployeeID: employeeID,
		Payload: events.EmployeeUpdatedPayload{
			UpdatedFields: patchFieldNames(patch),
		},
	})
	return updated, nil
}

// Delete removes the employee, then cascades to every attendance record with
// the same business key. The two deletes are not transactional; a crash in
// between leaves orphaned attendance records.
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	deleted, err := s.employees.Delete(ctx, employeeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFoundEmployee(employeeID)
	}

	removed, err := s.attendance.DeleteByEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, employeeID)
	}

	s.publish(ctx, events.Event{
		Type:       events.EventEmployeeDeleted,
		EmployeeID: employeeID,
		Payload: events.EmployeeDeletedPayload{
			AttendanceRemoved: removed,
		},
	})
	return nil
}

func (s *EmployeeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func notFoundEmployee(identifier string) error {
	return apperrors.NewNotFound(
		fmt.Sprintf("Employee with ID '%s' not found", identifier), nil)
}

func patchFieldNames(patch domain.EmployeePatch) []string {
	fields := []string{}
	if patch.FullName != nil {
		fields = append(fields, "full_name")
	}
	if patch.Email != nil {
		fields = append(fields, "email")
	}
	if patch.Department != nil {
		fields = append(fields, "department")
	}
	return fields
}
