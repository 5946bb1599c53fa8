package repository

import (
	"context"
	"time"

	"github.com/PayAidPayments/payaid-crm-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OperationLogRepository persists request audit records.
type OperationLogRepository struct {
	logs    *mongo.Collection
	timeout time.Duration
}

// NewOperationLogRepository creates an OperationLogRepository over db.
func NewOperationLogRepository(db *mongo.Database, timeout time.Duration) *OperationLogRepository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OperationLogRepository{logs: db.Collection(ApiOperationLogsCollection), timeout: timeout}
}

// Insert writes one audit record. Writes are not retried.
func (r *OperationLogRepository) Insert(ctx context.Context, log *models.OperationLog) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.logs.InsertOne(ctx, log)
	return err
}

// DeleteOlderThan removes records written before cutoff and returns how many
// were deleted.
func (r *OperationLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.logs.DeleteMany(ctx, bson.M{"operationTime": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
