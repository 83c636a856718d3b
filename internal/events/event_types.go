package events

import (
	"time"

	"github.com/spec-kit/hrms-lite/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated   EventType = "employee_created"
	EventEmployeeUpdated   EventType = "employee_updated"
	EventEmployeeDeleted   EventType = "employee_deleted"
	EventAttendanceMarked  EventType = "attendance_marked"
	EventAttendanceUpdated EventType = "attendance_updated"
	EventAttendanceDeleted EventType = "attendance_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EmployeeID string      `json:"employee_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	Email      string `json:"email"`
	Department string `json:"department"`
}

// EmployeeUpdatedPayload lists the fields an update touched.
type EmployeeUpdatedPayload struct {
	UpdatedFields []string `json:"updated_fields"`
}

// EmployeeDeletedPayload reports how many attendance records the cascade removed.
type EmployeeDeletedPayload struct {
	AttendanceRemoved int64 `json:"attendance_removed"`
}

// AttendanceMarkedPayload payload.
type AttendanceMarkedPayload struct {
	Date   string                  `json:"date"`
	Status domain.AttendanceStatus `json:"status"`
}

// AttendanceUpdatedPayload payload.
type AttendanceUpdatedPayload struct {
	RecordID string                  `json:"record_id"`
	Status   domain.AttendanceStatus `json:"status"`
}

// AttendanceDeletedPayload payload.
type AttendanceDeletedPayload struct {
	RecordID string `json:"record_id"`
	Date     string `json:"date"`
}
