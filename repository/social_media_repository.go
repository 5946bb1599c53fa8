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

// SocialMediaRepository reads scheduled posts and their accounts.
type SocialMediaRepository struct {
	posts   *mongo.Collection
	timeout time.Duration
}

// NewSocialMediaRepository creates a SocialMediaRepository over db.
func NewSocialMediaRepository(db *mongo.Database, timeout time.Duration) *SocialMediaRepository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SocialMediaRepository{
		posts:   db.Collection(ScheduledPostsCollection),
		timeout: timeout,
	}
}

// scheduledPostsPipeline selects the tenant's SCHEDULED posts, soonest first,
// each joined with a summary of its account.
func scheduledPostsPipeline(tenantID string, filter models.ScheduledPostFilter) mongo.Pipeline {
	match := bson.M{"tenantId": tenantID, "status": models.PostStatusScheduled}
	if filter.Platform != "" {
		match["platform"] = filter.Platform
	}
	if filter.AccountID != "" {
		match["accountId"] = filter.AccountID
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "scheduledFor", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from": SocialMediaAccountsCollection,
			"let":  bson.M{"accountId": "$accountId"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{bson.M{"$toString": "$_id"}, "$$accountId"}},
					bson.M{"$eq": bson.A{"$tenantId", tenantID}},
				}}}},
				bson.M{"$project": bson.M{"_id": 1, "platform": 1, "accountName": 1}},
			},
			"as": "account",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$account", "preserveNullAndEmptyArrays": true}}},
	}
}

// ListScheduled returns the tenant's scheduled posts ordered by scheduled
// time. The result is never nil.
func (r *SocialMediaRepository) ListScheduled(ctx context.Context, tenantID string, filter models.ScheduledPostFilter) ([]models.ScheduledPost, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := scheduledPostsPipeline(tenantID, filter)
	utils.LogDbOperation("aggregate", ScheduledPostsCollection, pipeline, nil)

	posts := []models.ScheduledPost{}
	err := withRetry(ctx, "list scheduled posts", func() error {
		cursor, err := r.posts.Aggregate(ctx, pipeline)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &posts)
	})
	if err != nil {
		return nil, fmt.Errorf("list scheduled posts: %w", err)
	}
	if posts == nil {
		posts = []models.ScheduledPost{}
	}
	return posts, nil
}
