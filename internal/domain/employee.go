package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee is the aggregate for people tracked by the system. EmployeeID is the
// externally supplied business key; ID is the storage identifier and carries no
// meaning outside direct lookup.
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID string             `bson:"employee_id"`
	FullName   string             `bson:"full_name"`
	Email      string             `bson:"email"`
	Department string             `bson:"department"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

// EmployeePatch carries a partial update; nil fields are left untouched.
type EmployeePatch struct {
	FullName   *string
	Email      *string
	Department *string
}

// IsEmpty reports whether the patch carries no recognized fields.
func (p EmployeePatch) IsEmpty() bool {
	return p.FullName == nil && p.Email == nil && p.Department == nil
}
