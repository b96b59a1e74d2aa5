package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// ValidationError reports malformed input. Nothing was written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// OverpaymentError reports a transaction amount above the payment's
// pending balance. MaxAllowed is the largest amount that would have
// been accepted.
type OverpaymentError struct {
	MaxAllowed decimal.Decimal
	Currency   string
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("amount exceeds the pending balance; maximum allowed is %s %s", e.MaxAllowed.StringFixed(2), e.Currency)
}

// InvalidStateError reports an operation attempted against a terminal
// payment or a dropped enrollment.
type InvalidStateError struct {
	Op     string
	Status string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: record is %s", e.Op, e.Status)
}

// ScheduleConflictError identifies the schedule that already occupies
// the professor's time slot.
type ScheduleConflictError struct {
	ProfessorID uuid.UUID
	ScheduleID  uuid.UUID
	Day         string
	StartTime   string
	EndTime     string
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("professor %s already has a schedule on %s from %s to %s", e.ProfessorID, e.Day, e.StartTime, e.EndTime)
}

// CapacityError reports a full schedule.
type CapacityError struct {
	ScheduleID  uuid.UUID
	MaxStudents int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("schedule %s is full (max %d students)", e.ScheduleID, e.MaxStudents)
}

// ConcurrencyConflictError reports a serialization failure; the caller
// should retry the whole operation once.
type ConcurrencyConflictError struct {
	Op string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrent update detected during %s, retry the operation", e.Op)
}

// Postgres SQLSTATE codes for failures a retry can resolve.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// txError converts serialization, deadlock and lock-timeout failures
// surfacing from a ledger transaction into ConcurrencyConflictError;
// every other error passes through unchanged.
func txError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return &ConcurrencyConflictError{Op: op}
		}
	}
	return err
}
