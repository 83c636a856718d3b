package persistence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-lite/internal/config"
)

// Collection names for the two logical stores.
const (
	EmployeesCollection  = "employees"
	AttendanceCollection = "attendance"
)

// Mongo wraps access to the document store client and database handle.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo establishes a client with short selection timeouts; requests that
// cannot reach storage fail fast rather than queue.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(time.Duration(cfg.ServerSelectionMS) * time.Millisecond).
		SetConnectTimeout(time.Duration(cfg.ConnectTimeoutMS) * time.Millisecond)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.ServerSelectionMS)*time.Millisecond)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Warn("mongo not reachable at startup", zap.Error(err))
	} else {
		logger.Info("connected to mongo", zap.String("database", cfg.Database))
	}

	return &Mongo{
		Client:   client,
		Database: client.Database(cfg.Database),
	}, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// Ping verifies storage connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return mongo.ErrClientDisconnected
	}
	return m.Client.Ping(ctx, nil)
}

// Employees returns the employees collection handle.
func (m *Mongo) Employees() *mongo.Collection {
	return m.Database.Collection(EmployeesCollection)
}

// Attendance returns the attendance collection handle.
func (m *Mongo) Attendance() *mongo.Collection {
	return m.Database.Collection(AttendanceCollection)
}
