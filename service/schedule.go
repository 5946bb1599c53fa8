package service

import (
	"context"
	"time"

	"github.com/PayAidPayments/payaid-crm-sub001/utils"
)

// ScheduleDailyTaskAt runs task every day at hour:min:sec local time until
// ctx is cancelled.
func ScheduleDailyTaskAt(ctx context.Context, hour, min, sec int, task func(context.Context)) {
	go func() {
		for {
			timer := time.NewTimer(untilNext(time.Now(), hour, min, sec))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				task(ctx)
			}
		}
	}()
}

// untilNext is the wait from now to the next hour:min:sec.
func untilNext(now time.Time, hour, min, sec int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

// OperationLogStore deletes expired audit records.
type OperationLogStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// OperationLogPurger removes audit records older than the retention window.
type OperationLogPurger struct {
	store     OperationLogStore
	retention time.Duration
	now       func() time.Time
}

// NewOperationLogPurger keeps retentionDays of records, 90 when not positive.
func NewOperationLogPurger(store OperationLogStore, retentionDays int) *OperationLogPurger {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &OperationLogPurger{
		store:     store,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// Purge deletes expired records. Failures are logged; the next run retries.
func (p *OperationLogPurger) Purge(ctx context.Context) {
	cutoff := p.now().Add(-p.retention)
	deleted, err := p.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"cutoff": cutoff}, "purge operation logs failed")
		return
	}
	utils.LogInfo(map[string]interface{}{
		"cutoff":  cutoff.Format(time.RFC3339),
		"deleted": deleted,
	}, "operation logs purged")
}
