package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureIndexes declares the indexes the service relies on. The unique indexes
// are the real authority for the employee_id and (employee_id, date) invariants;
// the application-level existence checks only produce cleaner error messages.
func EnsureIndexes(ctx context.Context, db *Mongo, logger *zap.Logger) error {
	employeeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
	}
	if _, err := db.Employees().Indexes().CreateMany(ctx, employeeIndexes); err != nil {
		return fmt.Errorf("create employee indexes: %w", err)
	}

	attendanceIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Attendance().Indexes().CreateMany(ctx, attendanceIndexes); err != nil {
		return fmt.Errorf("create attendance indexes: %w", err)
	}

	logger.Info("database indexes ensured")
	return nil
}
