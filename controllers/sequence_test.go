package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeEnrollmentStore struct {
	mu          sync.Mutex
	enrollments map[string]*models.NurtureEnrollment
	err         error
	calls       int
}

func newFakeEnrollmentStore(items ...models.NurtureEnrollment) *fakeEnrollmentStore {
	f := &fakeEnrollmentStore{enrollments: map[string]*models.NurtureEnrollment{}}
	for i := range items {
		e := items[i]
		f.enrollments[e.ID.Hex()] = &e
	}
	return f
}

func (f *fakeEnrollmentStore) UpdateStatus(_ context.Context, tenantID, id string, status models.EnrollmentStatus) (*models.NurtureEnrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.enrollments[id]
	if !ok || e.TenantID != tenantID {
		return nil, repository.ErrNotFound
	}
	e.Status = status
	updated := *e
	return &updated, nil
}

func (f *fakeEnrollmentStore) status(id string) models.EnrollmentStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enrollments[id].Status
}

func pauseRouter(auth *models.AuthContext, store EnrollmentStore) *gin.Engine {
	ctrl := NewSequenceController(store)
	return newTestRouter(auth, func(r *gin.Engine) {
		r.PUT("/api/marketing/sequences/:id/pause", ctrl.PauseEnrollment)
	})
}

func TestPauseEnrollment(t *testing.T) {
	id := primitive.NewObjectID()
	path := "/api/marketing/sequences/" + id.Hex() + "/pause"

	t.Run("owner pauses", func(t *testing.T) {
		store := newFakeEnrollmentStore(models.NurtureEnrollment{ID: id, TenantID: "t1", Status: models.EnrollmentStatusActive})

		w := doRequest(t, pauseRouter(&tenantOne, store), http.MethodPut, path, `{"action":"pause"}`)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Success    bool `json:"success"`
			Enrollment struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"enrollment"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, id.Hex(), body.Enrollment.ID)
		assert.Equal(t, "PAUSED", body.Enrollment.Status)
	})

	t.Run("other tenant gets 404 and nothing changes", func(t *testing.T) {
		store := newFakeEnrollmentStore(models.NurtureEnrollment{ID: id, TenantID: "t1", Status: models.EnrollmentStatusActive})

		w := doRequest(t, pauseRouter(&tenantTwo, store), http.MethodPut, path, `{"action":"pause"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Enrollment not found"}`, w.Body.String())
		assert.Equal(t, models.EnrollmentStatusActive, store.status(id.Hex()))
	})

	t.Run("pause then resume ends active", func(t *testing.T) {
		store := newFakeEnrollmentStore(models.NurtureEnrollment{ID: id, TenantID: "t1", Status: models.EnrollmentStatusActive})
		r := pauseRouter(&tenantOne, store)

		require.Equal(t, http.StatusOK, doRequest(t, r, http.MethodPut, path, `{"action":"pause"}`).Code)
		assert.Equal(t, models.EnrollmentStatusPaused, store.status(id.Hex()))

		require.Equal(t, http.StatusOK, doRequest(t, r, http.MethodPut, path, `{"action":"resume"}`).Code)
		assert.Equal(t, models.EnrollmentStatusActive, store.status(id.Hex()))
	})

	t.Run("unknown action is rejected before the store", func(t *testing.T) {
		store := newFakeEnrollmentStore(models.NurtureEnrollment{ID: id, TenantID: "t1", Status: models.EnrollmentStatusActive})
		r := pauseRouter(&tenantOne, store)

		for _, body := range []string{`{"action":"stop"}`, `{}`, ``, `not json`} {
			w := doRequest(t, r, http.MethodPut, path, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
		assert.Zero(t, store.calls)
		assert.Equal(t, models.EnrollmentStatusActive, store.status(id.Hex()))
	})

	t.Run("store failure is a 500 with details", func(t *testing.T) {
		store := newFakeEnrollmentStore()
		store.err = errors.New("server selection timeout")

		w := doRequest(t, pauseRouter(&tenantOne, store), http.MethodPut, path, `{"action":"pause"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Failed to update enrollment", body["error"])
		assert.Equal(t, "server selection timeout", body["details"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		store := newFakeEnrollmentStore()

		w := doRequest(t, pauseRouter(nil, store), http.MethodPut, path, `{"action":"pause"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Zero(t, store.calls)
	})
}

func TestPauseEnrollmentConcurrentCalls(t *testing.T) {
	id := primitive.NewObjectID()
	path := "/api/marketing/sequences/" + id.Hex() + "/pause"
	store := newFakeEnrollmentStore(models.NurtureEnrollment{ID: id, TenantID: "t1", Status: models.EnrollmentStatusActive})
	r := pauseRouter(&tenantOne, store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		action := models.SequenceActionPause
		if i%2 == 1 {
			action = models.SequenceActionResume
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			doRequest(t, r, http.MethodPut, path, `{"action":"`+action+`"}`)
		}()
	}
	wg.Wait()

	assert.Contains(t, []models.EnrollmentStatus{models.EnrollmentStatusPaused, models.EnrollmentStatusActive}, store.status(id.Hex()))
	assert.Equal(t, 20, store.calls)
}
