package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentStatus is the lifecycle state of a nurture enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusPaused    EnrollmentStatus = "PAUSED"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentStatusCancelled EnrollmentStatus = "CANCELLED"
)

// Actions accepted by the pause route.
const (
	SequenceActionPause  = "pause"
	SequenceActionResume = "resume"
)

// NurtureEnrollment is a contact's membership in a drip sequence.
type NurtureEnrollment struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TenantID    string             `json:"tenantId" bson:"tenantId"`
	ContactID   string             `json:"contactId" bson:"contactId"`
	SequenceID  string             `json:"sequenceId" bson:"sequenceId"`
	Status      EnrollmentStatus   `json:"status" bson:"status"`
	CurrentStep int                `json:"currentStep" bson:"currentStep"`
	EnrolledAt  time.Time          `json:"enrolledAt" bson:"enrolledAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PauseSequenceRequest is the body of PUT /sequences/:id/pause.
type PauseSequenceRequest struct {
	Action string `json:"action" binding:"required,oneof=pause resume"`
}

// StatusForAction maps a pause route action to the status it writes.
func StatusForAction(action string) EnrollmentStatus {
	if action == SequenceActionPause {
		return EnrollmentStatusPaused
	}
	return EnrollmentStatusActive
}
