package dto

import (
	"time"

	"github.com/spec-kit/hrms-lite/internal/domain"
)

// MarkAttendanceRequest payload.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// UpdateAttendanceRequest payload; only the status is mutable.
type UpdateAttendanceRequest struct {
	Status string `json:"status"`
}

// AttendanceResponse mirrors the persisted record.
type AttendanceResponse struct {
	ID         string                  `json:"_id"`
	EmployeeID string                  `json:"employee_id"`
	Date       string                  `json:"date"`
	Status     domain.AttendanceStatus `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
}

// NewAttendanceResponse maps a domain record to its wire shape.
func NewAttendanceResponse(rec *domain.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:         rec.ID.Hex(),
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		Status:     rec.Status,
		CreatedAt:  rec.CreatedAt,
	}
}
