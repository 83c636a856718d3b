package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/hrms-lite/internal/domain"
)

// AttendanceFilter captures listing parameters. Date bounds are inclusive ISO
// strings; the fixed YYYY-MM-DD format keeps lexicographic ordering correct.
type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Skip       int
	Limit      int
}

// AttendanceRepository encapsulates attendance persistence.
type AttendanceRepository interface {
	Insert(ctx context.Context, rec *domain.AttendanceRecord) error
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*domain.AttendanceRecord, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.AttendanceRecord, error)
	List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error)
	ListAllByEmployee(ctx context.Context, employeeID string) ([]domain.AttendanceRecord, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AttendanceStatus) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
}

type attendanceRepository struct {
	coll *mongo.Collection
}

// NewAttendanceRepository returns a Mongo-backed implementation.
func NewAttendanceRepository(coll *mongo.Collection) AttendanceRepository {
	return &attendanceRepository{coll: coll}
}

func (r *attendanceRepository) Insert(ctx context.Context, rec *domain.AttendanceRecord) error {
	result, err := r.coll.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		rec.ID = id
	}
	return nil
}

func (r *attendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*domain.AttendanceRecord, error) {
	return r.findOne(ctx, bson.M{"employee_id": employeeID, "date": date})
}

func (r *attendanceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.AttendanceRecord, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *attendanceRepository) findOne(ctx context.Context, filter bson.M) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	err := r.coll.FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns records sorted by date descending.
func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]domain.AttendanceRecord, error) {
	query := bson.M{}
	if filter.EmployeeID != nil {
		query["employee_id"] = *filter.EmployeeID
	}
	dateRange := bson.M{}
	if filter.StartDate != nil {
		dateRange["$gte"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		dateRange["$lte"] = *filter.EndDate
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.AttendanceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) ListAllByEmployee(ctx context.Context, employeeID string) ([]domain.AttendanceRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.AttendanceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.AttendanceStatus) (int64, error) {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *attendanceRepository) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
