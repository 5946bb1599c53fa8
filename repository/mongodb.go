package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ContactsCollection            = "contacts"
	SalesRepsCollection           = "salesReps"
	NurtureEnrollmentsCollection  = "nurtureEnrollments"
	SocialMediaAccountsCollection = "socialMediaAccounts"
	ScheduledPostsCollection      = "scheduledPosts"
	ApiOperationLogsCollection    = "apiOperationLogs"
)

// Collections lists every collection owned by the service.
var Collections = []string{
	ContactsCollection,
	SalesRepsCollection,
	NurtureEnrollmentsCollection,
	SocialMediaAccountsCollection,
	ScheduledPostsCollection,
	ApiOperationLogsCollection,
}

// DefaultTimeout bounds a single store call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

var client *mongo.Client

// InitMongoDB connects to uri and returns the named database.
func InitMongoDB(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	utils.Logger.Info().Str("database", dbName).Msg("connected to mongodb")
	return client.Database(dbName), nil
}

// CloseMongoDB disconnects the client opened by InitMongoDB.
func CloseMongoDB(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("disconnect mongodb failed")
		return
	}
	utils.Logger.Info().Msg("disconnected from mongodb")
}

// tenantIndexes are the compound indexes every tenant-scoped query relies on.
var tenantIndexes = map[string][]mongo.IndexModel{
	ContactsCollection: {
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "assignedToId", Value: 1}}},
	},
	SalesRepsCollection: {
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "isActive", Value: 1}}},
	},
	NurtureEnrollmentsCollection: {
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "status", Value: 1}}},
	},
	SocialMediaAccountsCollection: {
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "platform", Value: 1}}},
	},
	ScheduledPostsCollection: {
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "status", Value: 1}, {Key: "scheduledFor", Value: 1}}},
	},
	ApiOperationLogsCollection: {
		{Keys: bson.D{{Key: "operationTime", Value: 1}}},
	},
}

// InitializeCollections creates missing collections and their indexes.
func InitializeCollections(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	for _, name := range Collections {
		if !have[name] {
			if err := db.CreateCollection(ctx, name); err != nil {
				return fmt.Errorf("create collection %s: %w", name, err)
			}
			utils.Logger.Info().Str("collection", name).Msg("collection created")
		}

		if models := tenantIndexes[name]; len(models) > 0 {
			if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
				return fmt.Errorf("create indexes on %s: %w", name, err)
			}
		}
	}
	return nil
}

// GetDatabaseStatus returns the document count of every collection. A failed
// count is reported inline instead of failing the whole status.
func GetDatabaseStatus(ctx context.Context, db *mongo.Database) map[string]interface{} {
	result := make(map[string]interface{}, len(Collections))

	for _, name := range Collections {
		count, err := db.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", name).Msg("count collection failed")
			result[name] = map[string]interface{}{"count": 0, "error": err.Error()}
			continue
		}
		result[name] = map[string]interface{}{"count": count}
	}
	return result
}
