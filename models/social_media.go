package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusScheduled PostStatus = "SCHEDULED"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusFailed    PostStatus = "FAILED"
)

// SocialMediaAccount is a connected platform account.
type SocialMediaAccount struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TenantID    string             `json:"tenantId,omitempty" bson:"tenantId,omitempty"`
	Platform    string             `json:"platform" bson:"platform"`
	AccountName string             `json:"accountName" bson:"accountName"`
}

// ScheduledPost is a post queued for publication. Account holds the owning
// account summary when read through the scheduled listing.
type ScheduledPost struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	TenantID     string              `json:"tenantId" bson:"tenantId"`
	AccountID    string              `json:"accountId" bson:"accountId"`
	Platform     string              `json:"platform" bson:"platform"`
	Content      string              `json:"content" bson:"content"`
	MediaURLs    []string            `json:"mediaUrls,omitempty" bson:"mediaUrls,omitempty"`
	ScheduledFor time.Time           `json:"scheduledFor" bson:"scheduledFor"`
	Status       PostStatus          `json:"status" bson:"status"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	Account      *SocialMediaAccount `json:"account,omitempty" bson:"account,omitempty"`
}

// ScheduledPostFilter narrows the scheduled listing. Empty fields are ignored.
type ScheduledPostFilter struct {
	Platform  string
	AccountID string
}
