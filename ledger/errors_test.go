package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxErrorConvertsRetryableFailures(t *testing.T) {
	for _, code := range []string{pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable} {
		wrapped := fmt.Errorf("exec failed: %w", &pgconn.PgError{Code: code})

		err := txError("add transaction", wrapped)
		var conflictErr *ConcurrencyConflictError
		require.ErrorAs(t, err, &conflictErr, "code=%s", code)
		assert.Equal(t, "add transaction", conflictErr.Op)
		assert.Contains(t, conflictErr.Error(), "retry")
	}
}

func TestTxErrorPassesOtherErrorsThrough(t *testing.T) {
	assert.NoError(t, txError("cancel", nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, txError("cancel", plain))

	// Non-retryable SQL states keep their original identity.
	uniqueViolation := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, error(uniqueViolation), txError("cancel", uniqueViolation))
}
