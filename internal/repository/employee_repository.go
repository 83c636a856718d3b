package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/hrms-lite/internal/domain"
)

// EmployeeRepository encapsulates employee persistence. Find methods return
// (nil, nil) when no document matches; errors are reserved for storage faults.
type EmployeeRepository interface {
	Insert(ctx context.Context, emp *domain.Employee) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	FindByObjectID(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email, excludeEmployeeID string) (*domain.Employee, error)
	List(ctx context.Context, skip, limit int) ([]domain.Employee, error)
	Update(ctx context.Context, employeeID string, patch domain.EmployeePatch, updatedAt time.Time) (int64, error)
	Delete(ctx context.Context, employeeID string) (int64, error)
}

type employeeRepository struct {
	coll *mongo.Collection
}

// NewEmployeeRepository returns a Mongo-backed implementation.
func NewEmployeeRepository(coll *mongo.Collection) EmployeeRepository {
	return &employeeRepository{coll: coll}
}

func (r *employeeRepository) Insert(ctx context.Context, emp *domain.Employee) error {
	result, err := r.coll.InsertOne(ctx, emp)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		emp.ID = id
	}
	return nil
}

func (r *employeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"employee_id": employeeID})
}

func (r *employeeRepository) FindByObjectID(ctx context.Context, id primitive.ObjectID) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *employeeRepository) FindByEmail(ctx context.Context, email, excludeEmployeeID string) (*domain.Employee, error) {
	filter := bson.M{"email": email}
	if excludeEmployeeID != "" {
		filter["employee_id"] = bson.M{"$ne": excludeEmployeeID}
	}
	return r.findOne(ctx, filter)
}

func (r *employeeRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.coll.FindOne(ctx, filter).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// List returns employees in natural storage order.
func (r *employeeRepository) List(ctx context.Context, skip, limit int) ([]domain.Employee, error) {
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	employees := []domain.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, employeeID string, patch domain.EmployeePatch, updatedAt time.Time) (int64, error) {
	set := bson.M{"updated_at": updatedAt}
	if patch.FullName != nil {
		set["full_name"] = *patch.FullName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Department != nil {
		set["department"] = *patch.Department
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"employee_id": employeeID}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *employeeRepository) Delete(ctx context.Context, employeeID string) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
