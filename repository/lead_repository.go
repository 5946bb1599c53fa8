package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LeadRepository reads contacts and the reps they can be allocated to.
type LeadRepository struct {
	contacts *mongo.Collection
	reps     *mongo.Collection
	timeout  time.Duration
}

// NewLeadRepository creates a LeadRepository over db.
func NewLeadRepository(db *mongo.Database, timeout time.Duration) *LeadRepository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LeadRepository{
		contacts: db.Collection(ContactsCollection),
		reps:     db.Collection(SalesRepsCollection),
		timeout:  timeout,
	}
}

// FindContact loads the contact id owned by tenantID.
func (r *LeadRepository) FindContact(ctx context.Context, tenantID, id string) (*models.Contact, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"_id": objID, "tenantId": tenantID}
	utils.LogDbOperation("findOne", ContactsCollection, filter, nil)

	var contact models.Contact
	err = withRetry(ctx, "find contact", func() error {
		return r.contacts.FindOne(ctx, filter).Decode(&contact)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &contact, nil
}

// ListActiveReps returns the tenant's active reps, each with the ids of the
// contacts currently assigned to them.
func (r *LeadRepository) ListActiveReps(ctx context.Context, tenantID string) ([]models.SalesRep, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tenantId": tenantID, "isActive": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from": ContactsCollection,
			"let":  bson.M{"repId": bson.M{"$toString": "$_id"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$assignedToId", "$$repId"}},
					bson.M{"$eq": bson.A{"$tenantId", tenantID}},
				}}}},
				bson.M{"$project": bson.M{"_id": 1}},
			},
			"as": "assignedLeads",
		}}},
	}
	utils.LogDbOperation("aggregate", SalesRepsCollection, pipeline, nil)

	var reps []models.SalesRep
	err := withRetry(ctx, "list reps", func() error {
		cursor, err := r.reps.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &reps)
	})
	if err != nil {
		return nil, fmt.Errorf("list sales reps: %w", err)
	}
	return reps, nil
}
