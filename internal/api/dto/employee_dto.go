package dto

import (
	"time"

	"github.com/spec-kit/hrms-lite/internal/domain"
)

// CreateEmployeeRequest payload.
type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// UpdateEmployeeRequest payload; pointer fields distinguish "omitted" from "empty".
type UpdateEmployeeRequest struct {
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
}

// EmployeeResponse mirrors the persisted record; the storage identifier is
// exposed as a hex string under _id.
type EmployeeResponse struct {
	ID         string    `json:"_id"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewEmployeeResponse maps a domain record to its wire shape.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         emp.ID.Hex(),
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
		CreatedAt:  emp.CreatedAt,
		UpdatedAt:  emp.UpdatedAt,
	}
}
