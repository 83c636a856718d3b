// Package validation holds the schema-level constraints on incoming payloads.
// Validators are pure: they either return a normalized value or a DomainError
// naming the offending field, and never touch storage.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/spec-kit/hrms-lite/internal/api/dto"
	"github.com/spec-kit/hrms-lite/internal/domain"
	apperrors "github.com/spec-kit/hrms-lite/pkg/util"
)

const (
	maxEmployeeIDLen = 50
	maxFullNameLen   = 100
	maxDepartmentLen = 100

	dateLayout = "2006-01-02"
)

// EmployeeCreate normalizes and validates a creation payload in place.
func EmployeeCreate(req *dto.CreateEmployeeRequest) error {
	employeeID, err := requiredString("Employee ID", req.EmployeeID, maxEmployeeIDLen)
	if err != nil {
		return err
	}
	fullName, err := requiredString("Full name", req.FullName, maxFullNameLen)
	if err != nil {
		return err
	}
	department, err := requiredString("Department", req.Department, maxDepartmentLen)
	if err != nil {
		return err
	}
	email, err := emailAddress(req.Email)
	if err != nil {
		return err
	}

	req.EmployeeID = employeeID
	req.FullName = fullName
	req.Department = department
	req.Email = email
	return nil
}

// EmployeePatch validates the supplied fields of a partial update and returns
// the normalized patch. Omitted fields stay nil.
func EmployeePatch(req dto.UpdateEmployeeRequest) (domain.EmployeePatch, error) {
	var patch domain.EmployeePatch

	if req.FullName != nil {
		fullName, err := requiredString("Full name", *req.FullName, maxFullNameLen)
		if err != nil {
			return patch, err
		}
		patch.FullName = &fullName
	}
	if req.Email != nil {
		email, err := emailAddress(*req.Email)
		if err != nil {
			return patch, err
		}
		patch.Email = &email
	}
	if req.Department != nil {
		department, err := requiredString("Department", *req.Department, maxDepartmentLen)
		if err != nil {
			return patch, err
		}
		patch.Department = &department
	}

	return patch, nil
}

// AttendanceCreate normalizes and validates a mark-attendance payload in place.
func AttendanceCreate(req *dto.MarkAttendanceRequest) error {
	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return apperrors.NewUnprocessable("Employee ID cannot be empty", field("employee_id"))
	}
	date, err := isoDate("date", req.Date)
	if err != nil {
		return err
	}
	if err := AttendanceStatus(req.Status); err != nil {
		return err
	}

	req.EmployeeID = employeeID
	req.Date = date
	return nil
}

// AttendanceStatus rejects anything but the two allowed values.
func AttendanceStatus(status string) error {
	switch domain.AttendanceStatus(status) {
	case domain.AttendanceStatusPresent, domain.AttendanceStatusAbsent:
		return nil
	}
	return apperrors.NewUnprocessable("Status must be either Present or Absent", field("status"))
}

// DateParam validates an optional ISO date query parameter such as start_date.
func DateParam(name, value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return apperrors.NewValidationError(
			fmt.Sprintf("Invalid %s format. Use YYYY-MM-DD", name), field(name))
	}
	return nil
}

func requiredString(label, value string, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.NewUnprocessable(label+" cannot be empty", field(label))
	}
	if len(trimmed) > max {
		return "", apperrors.NewUnprocessable(
			fmt.Sprintf("%s must be at most %d characters", label, max), field(label))
	}
	return trimmed, nil
}

func emailAddress(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.NewUnprocessable("Email cannot be empty", field("email"))
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", apperrors.NewUnprocessable("Email is not a valid email address", field("email"))
	}
	return trimmed, nil
}

func isoDate(name, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return "", apperrors.NewUnprocessable(
			fmt.Sprintf("Invalid %s format. Use YYYY-MM-DD", name), field(name))
	}
	return parsed.Format(dateLayout), nil
}

func field(name string) map[string]any {
	return map[string]any{"field": name}
}
