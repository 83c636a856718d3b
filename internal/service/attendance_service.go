package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hrms-lite/internal/domain"
	"github.com/spec-kit/hrms-lite/internal/events"
	"github.com/spec-kit/hrms-lite/internal/repository"
	apperrors "github.com/spec-kit/hrms-lite/pkg/util"
)

// AttendanceService enforces referential existence of the employee, the
// one-record-per-employee-per-date invariant, and computes summaries.
type AttendanceService struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	dispatcher events.Dispatcher
	cache      SummaryCache
}

// AttendanceDependencies bundles collaborators for the attendance service.
type AttendanceDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	AttendanceRepo repository.AttendanceRepository
	Dispatcher     events.Dispatcher
	Cache          SummaryCache
}

// MarkAttendanceInput describes a mark request already normalized by the
// validation layer; Date is canonical YYYY-MM-DD.
type MarkAttendanceInput struct {
	EmployeeID string
	Date       string
	Status     domain.AttendanceStatus
}

// AttendanceListFilter describes listing parameters before clamping.
type AttendanceListFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Skip       int
	Limit      int
}

// NewAttendanceService constructs the service.
func NewAttendanceService(deps AttendanceDependencies) *AttendanceService {
	return &AttendanceService{
		employees:  deps.EmployeeRepo,
		attendance: deps.AttendanceRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
	}
}

// Mark records one day's status for an employee. The unique compound index on
// (employee_id, date) backs the duplicate check under concurrency.
func (s *AttendanceService) Mark(ctx context.Context, input MarkAttendanceInput) (*domain.AttendanceRecord, error) {
	if err := s.ensureEmployee(ctx, input.EmployeeID); err != nil {
		return nil, err
	}

	existing, err := s.attendance.FindByEmployeeAndDate(ctx, input.EmployeeID, input.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateAttendance(input.EmployeeID, input.Date)
	}

	rec := &domain.AttendanceRecord{
		EmployeeID: input.EmployeeID,
		Date:       input.Date,
		Status:     input.Status,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.attendance.Insert(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateAttendance(input.EmployeeID, input.Date)
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, rec.EmployeeID)
	}
	s.publish(ctx, events.Event{
		Type:       events.EventAttendanceMarked,
		EmployeeID: rec.EmployeeID,
		Payload: events.AttendanceMarkedPayload{
			Date:   rec.Date,
			Status: rec.Status,
		},
	})
	return rec, nil
}

// List returns records sorted by date descending. A supplied employee filter
// must reference an existing employee.
func (s *AttendanceService) List(ctx context.Context, filter AttendanceListFilter) ([]domain.AttendanceRecord, error) {
	if filter.EmployeeID != nil {
		if err := s.ensureEmployee(ctx, *filter.EmployeeID); err != nil {
			return nil, err
		}
	}

	filter.Skip, filter.Limit = clampPagination(filter.Skip, filter.Limit)
	return s.attendance.List(ctx, repository.AttendanceFilter{
		EmployeeID: filter.EmployeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Skip:       filter.Skip,
		Limit:      filter.Limit,
	})
}

// ListForEmployee returns one employee's records, optionally bounded by an
// inclusive date range.
func (s *AttendanceService) ListForEmployee(ctx context.Context, employeeID string, skip, limit int, startDate, endDate *string) ([]domain.AttendanceRecord, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	skip, limit = clampPagination(skip, limit)
	return s.attendance.List(ctx, repository.AttendanceFilter{
		EmployeeID: &employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Skip:       skip,
		Limit:      limit,
	})
}

// GetByID fetches a record by its storage identifier.
func (s *AttendanceService) GetByID(ctx context.Context, recordID string) (*domain.AttendanceRecord, error) {
	oid, err := parseRecordID(recordID)
	if err != nil {
		return nil, err
	}
	rec, err := s.attendance.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundRecord()
	}
	return rec, nil
}

// Update replaces the status field only. Attendance carries no updated_at and
// created_at is never touched.
func (s *AttendanceService) Update(ctx context.Context, recordID string, status domain.AttendanceStatus) (*domain.AttendanceRecord, error) {
	oid, err := parseRecordID(recordID)
	if err != nil {
		return nil, err
	}

	rec, err := s.attendance.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundRecord()
	}

	matched, err := s.attendance.UpdateStatus(ctx, oid, status)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, notFoundRecord()
	}

	updated, err := s.attendance.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFoundRecord()
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, updated.EmployeeID)
	}
	s.publish(ctx, events.Event{
		Type:       events.EventAttendanceUpdated,
		EmployeeID: updated.EmployeeID,
		Payload: events.AttendanceUpdatedPayload{
			RecordID: recordID,
			Status:   updated.Status,
		},
	})
	return updated, nil
}

// Delete removes a single record by its storage identifier.
func (s *AttendanceService) Delete(ctx context.Context, recordID string) error {
	oid, err := parseRecordID(recordID)
	if err != nil {
		return err
	}

	rec, err := s.attendance.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if rec == nil {
		return notFoundRecord()
	}

	deleted, err := s.attendance.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return notFoundRecord()
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, rec.EmployeeID)
	}
	s.publish(ctx, events.Event{
		Type:       events.EventAttendanceDeleted,
		EmployeeID: rec.EmployeeID,
		Payload: events.AttendanceDeletedPayload{
			RecordID: recordID,
			Date:     rec.Date,
		},
	})
	return nil
}

// Summary scans an employee's full history and aggregates it. Results are
// cached; any cache failure falls back to a collection scan.
func (s *AttendanceService) Summary(ctx context.Context, employeeID string) (*domain.AttendanceSummary, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached := s.cache.Get(ctx, employeeID); cached != nil {
			return cached, nil
		}
	}

	records, err := s.attendance.ListAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	summary := &domain.AttendanceSummary{
		EmployeeID:   employeeID,
		TotalRecords: len(records),
	}
	for _, rec := range records {
		switch rec.Status {
		case domain.AttendanceStatusPresent:
			summary.PresentDays++
		case domain.AttendanceStatusAbsent:
			summary.AbsentDays++
		}
	}
	if summary.TotalRecords > 0 {
		pct := float64(summary.PresentDays) / float64(summary.TotalRecords) * 100
		summary.AttendancePercentage = math.Round(pct*100) / 100
	}

	if s.cache != nil {
		s.cache.Set(ctx, summary)
	}
	return summary, nil
}

func (s *AttendanceService) ensureEmployee(ctx context.Context, employeeID string) error {
	emp, err := s.employees.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return notFoundEmployee(employeeID)
	}
	return nil
}

func (s *AttendanceService) publish(ctx context.Context, event events.Event) {
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

func parseRecordID(recordID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewInvalidArgument("Invalid record ID format")
	}
	return oid, nil
}

func notFoundRecord() error {
	return apperrors.NewNotFound("Attendance record not found", nil)
}

func duplicateAttendance(employeeID, date string) error {
	return apperrors.NewConflict(
		fmt.Sprintf("Attendance for employee '%s' on %s already marked", employeeID, date), nil)
}
