// internal/domain/delivery/repository.go
package delivery

import (
	"context"
	"database/sql"
)

// TransitionUpdate holds the terminal fields written alongside a status
// transition. ProcessedAt must be set for any terminal transition; LastError
// only for permanent failures.
type TransitionUpdate struct {
	ProcessedAt sql.NullTime
	LastError   sql.NullString
}

// Repository defines read and compare-and-set update operations on delivery
// records. The schema of each family's payload is owned by the CRUD layer;
// this engine only reads it.
type Repository interface {
	// FindEligible returns records of the given family currently in the given
	// status, ordered by insertion time so cycles and tests are reproducible.
	FindEligible(ctx context.Context, family Family, status Status) ([]*Record, error)

	// Transition moves a record from expected to next, writing the update
	// fields in the same statement. The write is conditioned on the record
	// still being in expected: if a concurrent pass already transitioned it
	// the store returns ErrTransitionConflict and nothing is written. This
	// compare-and-set is the engine's only concurrency-control primitive.
	Transition(ctx context.Context, id int64, expected, next Status, update TransitionUpdate) error
}
