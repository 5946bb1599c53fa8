package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/repository"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeLeadStore struct {
	contacts   map[string]*models.Contact // keyed by tenantId/contactId
	reps       map[string][]models.SalesRep
	repsErr    error
	repsCalled bool
}

func (f *fakeLeadStore) FindContact(_ context.Context, tenantID, id string) (*models.Contact, error) {
	if c, ok := f.contacts[tenantID+"/"+id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLeadStore) ListActiveReps(_ context.Context, tenantID string) ([]models.SalesRep, error) {
	f.repsCalled = true
	return f.reps[tenantID], f.repsErr
}

func leads(n int) []models.AssignedLead {
	out := make([]models.AssignedLead, n)
	for i := range out {
		out[i] = models.AssignedLead{ID: primitive.NewObjectID()}
	}
	return out
}

func rep(name, spec string, rate float64, load int) models.SalesRep {
	r := models.SalesRep{ID: primitive.NewObjectID(), Name: name, Email: name + "@payaid.in", Specialization: spec, ConversionRate: rate}
	if load > 0 {
		r.AssignedLeads = leads(load)
	}
	return r
}

func newStore() *fakeLeadStore {
	return &fakeLeadStore{
		contacts: map[string]*models.Contact{
			"t1/c1": {TenantID: "t1", Name: "Ravi Traders", Industry: "Retail"},
		},
		reps: map[string][]models.SalesRep{
			"t1": {
				rep("Asha", "retail", 0.4, 2),
				rep("Vikram", "manufacturing", 0.6, 4),
				rep("Meera", "", 25, 0),
				rep("Dev", "retail", 0.1, 4),
			},
		},
	}
}

func TestGetAllocationSuggestionsRanksAndCaps(t *testing.T) {
	svc := NewAllocationService(newStore(), 0)

	got, err := svc.GetAllocationSuggestions(context.Background(), "c1", "t1")
	require.NoError(t, err)
	require.Len(t, got, DefaultSuggestionLimit)

	// Asha 20+30+10, Dev 5+30, Meera 12.5+20, Vikram 30.
	assert.Equal(t, "Asha", got[0].Rep.Name)
	assert.Equal(t, 60.0, got[0].Score)
	assert.Equal(t, "Dev", got[1].Rep.Name)
	assert.Equal(t, 35.0, got[1].Score)
	assert.Equal(t, "Meera", got[2].Rep.Name)
	assert.Equal(t, 32.5, got[2].Score)
	assert.Equal(t, 2, got[0].Rep.AssignedLeadsCount)
	assert.Equal(t, []string{"Conversion rate of 40%", "Specializes in retail", "Lighter workload with 2 assigned leads"}, got[0].Reasons)
}

func TestGetAllocationSuggestionsAssignedLeadsCount(t *testing.T) {
	svc := NewAllocationService(newStore(), 10)

	got, err := svc.GetAllocationSuggestions(context.Background(), "c1", "t1")
	require.NoError(t, err)
	require.Len(t, got, 4)

	for _, s := range got {
		if s.Rep.Name == "Meera" {
			assert.Equal(t, 0, s.Rep.AssignedLeadsCount)
			assert.Contains(t, s.Reasons, "No leads currently assigned")
		}
		assert.NotNil(t, s.Reasons)
	}
}

func TestGetAllocationSuggestionsContactOfAnotherTenant(t *testing.T) {
	store := newStore()
	svc := NewAllocationService(store, 3)

	_, err := svc.GetAllocationSuggestions(context.Background(), "c1", "t2")

	var apiErr *utils.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.False(t, store.repsCalled)
}

func TestGetAllocationSuggestionsStoreFailure(t *testing.T) {
	store := newStore()
	store.repsErr = errors.New("connection reset")
	svc := NewAllocationService(store, 3)

	_, err := svc.GetAllocationSuggestions(context.Background(), "c1", "t1")
	assert.EqualError(t, err, "connection reset")
}

func TestGetAllocationSuggestionsNoReps(t *testing.T) {
	store := newStore()
	store.reps = nil
	svc := NewAllocationService(store, 3)

	got, err := svc.GetAllocationSuggestions(context.Background(), "c1", "t1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeRate(t *testing.T) {
	assert.Equal(t, 0.25, normalizeRate(25))
	assert.Equal(t, 0.25, normalizeRate(0.25))
	assert.Equal(t, 0.0, normalizeRate(-3))
	assert.Equal(t, 1.0, normalizeRate(250))
}
