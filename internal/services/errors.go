package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors returned by the services. Handlers compare with errors.Is
// to pick the response status.
var (
	// ErrMatchNotFound is returned when the referenced match does not exist.
	ErrMatchNotFound = errors.New("match not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrMatchLocked is returned when a prediction arrives after the match's
	// scheduled start time has passed.
	ErrMatchLocked = errors.New("match is locked")

	// ErrMatchFinished is returned when an operation requires an upcoming
	// match but the match already has a declared result.
	ErrMatchFinished = errors.New("match already finished")

	// ErrAlreadyDeclared is returned when a result is declared twice without
	// an undo in between.
	ErrAlreadyDeclared = errors.New("result already declared")

	// ErrNothingToUndo is returned when undoing a match that has no result.
	ErrNothingToUndo = errors.New("no result to undo")

	// ErrInvalidBet is returned when the bet value lies outside the outcome
	// space of the match format.
	ErrInvalidBet = errors.New("bet value not valid for match format")

	// ErrConflict is returned when the datastore reports a transactional
	// conflict. The operation is safe to retry.
	ErrConflict = errors.New("storage conflict, retry")
)

// Postgres error codes for serialization failures and deadlocks.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translateStoreError maps retryable datastore failures onto ErrConflict so
// callers can distinguish them from fatal store errors.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected {
			return ErrConflict
		}
	}

	return err
}
