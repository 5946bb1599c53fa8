package repository

import (
	"context"
	"time"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnrollmentRepository stores nurture sequence enrollments.
type EnrollmentRepository struct {
	enrollments *mongo.Collection
	timeout     time.Duration
	now         func() time.Time
}

// NewEnrollmentRepository creates an EnrollmentRepository over db.
func NewEnrollmentRepository(db *mongo.Database, timeout time.Duration) *EnrollmentRepository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &EnrollmentRepository{
		enrollments: db.Collection(NurtureEnrollmentsCollection),
		timeout:     timeout,
		now:         time.Now,
	}
}

// UpdateStatus overwrites the status of enrollment id owned by tenantID and
// returns the updated document. The lookup and write are one atomic
// findOneAndUpdate, so an enrollment of another tenant is never touched and
// concurrent callers leave one of the written statuses.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, tenantID, id string, status models.EnrollmentStatus) (*models.NurtureEnrollment, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"_id": objID, "tenantId": tenantID}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": r.now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var enrollment models.NurtureEnrollment
	if err := r.enrollments.FindOneAndUpdate(ctx, filter, update, opts).Decode(&enrollment); err != nil {
		return nil, translate(err)
	}

	utils.LogDbOperation("findOneAndUpdate", NurtureEnrollmentsCollection, filter, enrollment.Status)
	return &enrollment, nil
}
