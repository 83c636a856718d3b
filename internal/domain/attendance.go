package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceStatus enumerates daily presence states.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
)

// AttendanceRecord is one day's presence status for one employee. Date is kept
// as an ISO YYYY-MM-DD string; the fixed format makes lexicographic comparison
// equivalent to date comparison. Attendance has no updated_at field.
type AttendanceRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	Date       string             `bson:"date"`
	Status     AttendanceStatus   `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// AttendanceSummary aggregates an employee's attendance history.
type AttendanceSummary struct {
	EmployeeID           string  `json:"employee_id"`
	TotalRecords         int     `json:"total_records"`
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}
