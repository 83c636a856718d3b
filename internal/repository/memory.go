package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/hrms-lite/internal/domain"
)

// In-memory implementations used by tests. They mirror the Mongo repositories'
// observable behavior: insertion-order employee listing, date-descending
// attendance listing, and (nil, nil) lookups for absent documents.

// MemoryEmployeeRepository is a map-backed EmployeeRepository.
type MemoryEmployeeRepository struct {
	mu        sync.Mutex
	employees []domain.Employee
}

// NewMemoryEmployeeRepository constructs an empty repository.
func NewMemoryEmployeeRepository() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{}
}

func (r *MemoryEmployeeRepository) Insert(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp.ID = primitive.NewObjectID()
	r.employees = append(r.employees, *emp)
	return nil
}

func (r *MemoryEmployeeRepository) FindByEmployeeID(_ context.Context, employeeID string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.employees {
		if r.employees[i].EmployeeID == employeeID {
			emp := r.employees[i]
			return &emp, nil
		}
	}
	return nil, nil
}

func (r *MemoryEmployeeRepository) FindByObjectID(_ context.Context, id primitive.ObjectID) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.employees {
		if r.employees[i].ID == id {
			emp := r.employees[i]
			return &emp, nil
		}
	}
	return nil, nil
}

func (r *MemoryEmployeeRepository) FindByEmail(_ context.Context, email, excludeEmployeeID string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.employees {
		if r.employees[i].Email != email {
			continue
		}
		if excludeEmployeeID != "" && r.employees[i].EmployeeID == excludeEmployeeID {
			continue
		}
		emp := r.employees[i]
		return &emp, nil
	}
	return nil, nil
}

func (r *MemoryEmployeeRepository) List(_ context.Context, skip, limit int) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if skip >= len(r.employees) {
		return []domain.Employee{}, nil
	}
	end := skip + limit
	if end > len(r.employees) {
		end = len(r.employees)
	}
	out := make([]domain.Employee, end-skip)
	copy(out, r.employees[skip:end])
	return out, nil
}

func (r *MemoryEmployeeRepository) Update(_ context.Context, employeeID string, patch domain.EmployeePatch, updatedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.employees {
		if r.employees[i].EmployeeID != employeeID {
			continue
		}
		if patch.FullName != nil {
			r.employees[i].FullName = *patch.FullName
		}
		if patch.Email != nil {
			r.employees[i].Email = *patch.Email
		}
		if patch.Department != nil {
			r.employees[i].Department = *patch.Department
		}
		r.employees[i].UpdatedAt = updatedAt
		return 1, nil
	}
	return 0, nil
}

func (r *MemoryEmployeeRepository) Delete(_ context.Context, employeeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.employees {
		if r.employees[i].EmployeeID == employeeID {
			r.employees = append(r.employees[:i], r.employees[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// MemoryAttendanceRepository is a slice-backed AttendanceRepository.
type MemoryAttendanceRepository struct {
	mu      sync.Mutex
	records []domain.AttendanceRecord
}

// NewMemoryAttendanceRepository constructs an empty repository.
func NewMemoryAttendanceRepository() *MemoryAttendanceRepository {
	return &MemoryAttendanceRepository{}
}

func (r *MemoryAttendanceRepository) Insert(_ context.Context, rec *domain.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	r.records = append(r.records, *rec)
	return nil
}

func (r *MemoryAttendanceRepository) FindByEmployeeAndDate(_ context.Context, employeeID, date string) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].EmployeeID == employeeID && r.records[i].Date == date {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *MemoryAttendanceRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *MemoryAttendanceRepository) List(_ context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error) {
	r.mu.Lock()
	matched := []domain.AttendanceRecord{}
	for i := range r.records {
		rec := r.records[i]
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.StartDate != nil && rec.Date < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && rec.Date > *filter.EndDate {
			continue
		}
		matched = append(matched, rec)
	}
	r.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date > matched[j].Date
	})

	if filter.Skip >= len(matched) {
		return []domain.AttendanceRecord{}, nil
	}
	end := filter.Skip + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Skip:end], nil
}

func (r *MemoryAttendanceRepository) ListAllByEmployee(_ context.Context, employeeID string) ([]domain.AttendanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.AttendanceRecord{}
	for i := range r.records {
		if r.records[i].EmployeeID == employeeID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *MemoryAttendanceRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.AttendanceStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records[i].Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (r *MemoryAttendanceRepository) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *MemoryAttendanceRepository) DeleteByEmployee(_ context.Context, employeeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	var deleted int64
	for i := range r.records {
		if r.records[i].EmployeeID == employeeID {
			deleted++
			continue
		}
		kept = append(kept, r.records[i])
	}
	r.records = kept
	return deleted, nil
}
