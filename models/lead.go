package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is a lead owned by a tenant.
type Contact struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TenantID     string             `json:"tenantId" bson:"tenantId"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	Industry     string             `json:"industry,omitempty" bson:"industry,omitempty"`
	Source       string             `json:"source,omitempty" bson:"source,omitempty"`
	Status       string             `json:"status,omitempty" bson:"status,omitempty"`
	AssignedToID string             `json:"assignedToId,omitempty" bson:"assignedToId,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// SalesRep is a tenant's sales representative. AssignedLeads is filled by
// the repository from contacts currently assigned to the rep and may be nil.
type SalesRep struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TenantID       string             `json:"tenantId" bson:"tenantId"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Specialization string             `json:"specialization,omitempty" bson:"specialization,omitempty"`
	ConversionRate float64            `json:"conversionRate" bson:"conversionRate"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	AssignedLeads  []AssignedLead     `json:"assignedLeads,omitempty" bson:"assignedLeads,omitempty"`
}

// AssignedLead is the projection of a contact owned by a rep.
type AssignedLead struct {
	ID primitive.ObjectID `json:"id" bson:"_id"`
}

// RepSummary is the rep as shown inside an allocation suggestion.
type RepSummary struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Specialization     string  `json:"specialization"`
	ConversionRate     float64 `json:"conversionRate"`
	AssignedLeadsCount int     `json:"assignedLeadsCount"`
}

// AllocationSuggestion is a ranked, recomputed-per-request recommendation.
type AllocationSuggestion struct {
	Rep     RepSummary `json:"rep"`
	Score   float64    `json:"score"`
	Reasons []string   `json:"reasons"`
}

// NewRepSummary builds the summary for rep. A missing assigned-leads list
// counts as zero.
func NewRepSummary(rep SalesRep) RepSummary {
	return RepSummary{
		ID:                 rep.ID.Hex(),
		Name:               rep.Name,
		Email:              rep.Email,
		Specialization:     rep.Specialization,
		ConversionRate:     rep.ConversionRate,
		AssignedLeadsCount: len(rep.AssignedLeads),
	}
}
