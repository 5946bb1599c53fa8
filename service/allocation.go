package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/repository"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"
)

// DefaultSuggestionLimit caps the suggestions returned per lead.
const DefaultSuggestionLimit = 3

// Score weights, summing to 100.
const (
	conversionWeight     = 50.0
	specializationWeight = 30.0
	workloadWeight       = 20.0
)

// LeadStore is the persistence the allocation service needs.
type LeadStore interface {
	FindContact(ctx context.Context, tenantID, id string) (*models.Contact, error)
	ListActiveReps(ctx context.Context, tenantID string) ([]models.SalesRep, error)
}

// AllocationService ranks a tenant's reps for a lead.
type AllocationService struct {
	leads LeadStore
	limit int
}

// NewAllocationService caps suggestions at limit, or DefaultSuggestionLimit
// when limit is not positive.
func NewAllocationService(leads LeadStore, limit int) *AllocationService {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	return &AllocationService{leads: leads, limit: limit}
}

// GetAllocationSuggestions returns at most the configured number of reps
// for contactID, best first.
func (s *AllocationService) GetAllocationSuggestions(ctx context.Context, contactID, tenantID string) ([]models.AllocationSuggestion, error) {
	contact, err := s.leads.FindContact(ctx, tenantID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.CreateNotFoundError("Contact not found")
		}
		return nil, fmt.Errorf("load contact: %w", err)
	}

	reps, err := s.leads.ListActiveReps(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// Workload headroom is relative to the busiest rep.
	maxLoad := 0
	for _, rep := range reps {
		if n := len(rep.AssignedLeads); n > maxLoad {
			maxLoad = n
		}
	}

	suggestions := make([]models.AllocationSuggestion, 0, len(reps))
	for _, rep := range reps {
		suggestions = append(suggestions, scoreRep(contact, rep, maxLoad))
	}

	// Highest score first, ties by name.
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Rep.Name < suggestions[j].Rep.Name
	})

	if len(suggestions) > s.limit {
		suggestions = suggestions[:s.limit]
	}

	utils.LogInfo(map[string]interface{}{
		"tenantId":    tenantID,
		"contactId":   contactID,
		"candidates":  len(reps),
		"suggestions": len(suggestions),
	}, "allocation suggestions computed")

	return suggestions, nil
}

func scoreRep(contact *models.Contact, rep models.SalesRep, maxLoad int) models.AllocationSuggestion {
	var score float64
	reasons := []string{}

	rate := normalizeRate(rep.ConversionRate)
	if rate > 0 {
		score += rate * conversionWeight
		reasons = append(reasons, fmt.Sprintf("Conversion rate of %.0f%%", rate*100))
	}

	if matchesSpecialization(rep.Specialization, contact) {
		score += specializationWeight
		reasons = append(reasons, fmt.Sprintf("Specializes in %s", rep.Specialization))
	}

	// The busiest rep gets no workload points.
	load := len(rep.AssignedLeads)
	switch {
	case load == 0:
		score += workloadWeight
		reasons = append(reasons, "No leads currently assigned")
	case load < maxLoad:
		score += workloadWeight * (1 - float64(load)/float64(maxLoad))
		reasons = append(reasons, fmt.Sprintf("Lighter workload with %d assigned leads", load))
	}

	return models.AllocationSuggestion{
		Rep:     models.NewRepSummary(rep),
		Score:   math.Round(score*10) / 10,
		Reasons: reasons,
	}
}

// normalizeRate accepts a fraction or a percentage and returns a fraction
// in [0, 1].
func normalizeRate(rate float64) float64 {
	if rate > 1 {
		rate /= 100
	}
	return math.Max(0, math.Min(1, rate))
}

// matchesSpecialization reports whether the contact's industry or source
// contains the rep's specialization.
func matchesSpecialization(specialization string, contact *models.Contact) bool {
	spec := strings.ToLower(strings.TrimSpace(specialization))
	if spec == "" {
		return false
	}
	for _, field := range []string{contact.Industry, contact.Source} {
		if f := strings.ToLower(strings.TrimSpace(field)); f != "" && (f == spec || strings.Contains(f, spec)) {
			return true
		}
	}
	return false
}
