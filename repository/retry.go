package repository

import (
	"context"
	"errors"
	"time"

	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/avast/retry-go/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	readAttempts = 3
	retryDelay   = 100 * time.Millisecond
)

// retryableCodes are server error codes worth another attempt.
var retryableCodes = map[int32]bool{
	6:     true, // HostUnreachable
	7:     true, // HostNotFound
	89:    true, // NetworkTimeout
	91:    true, // ShutdownInProgress
	189:   true, // PrimarySteppedDown
	10107: true, // NotWritablePrimary
	13436: true, // NotPrimaryNoSecondaryOk
	11600: true, // InterruptedAtShutdown
	11602: true, // InterruptedDueToReplStateChange
}

// withRetry runs a read, retrying transient failures. Writes are not
// retried here.
func withRetry(ctx context.Context, op string, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(readAttempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			utils.Logger.Warn().Err(err).Str("operation", op).Uint("attempt", n+1).Msg("db operation failed, retrying")
		}),
	)
}

func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if mongo.IsNetworkError(err) {
		return true
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return retryableCodes[cmdErr.Code]
	}
	return false
}
