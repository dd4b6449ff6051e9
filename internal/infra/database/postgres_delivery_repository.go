// internal/infra/database/postgres_delivery_repository.go
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"shop_notifier/internal/domain/delivery"
)

// Custom errors specific to the delivery repository
var ErrRecordNotFound = fmt.Errorf("delivery record not found")
var ErrTransitionConflict = fmt.Errorf("delivery record already transitioned by a concurrent pass")
var ErrInvalidTransition = fmt.Errorf("invalid delivery status transition")

type PostgresDeliveryRepository struct {
	db *sql.DB
}

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{db: db}
}

// FindEligible returns records of one family in one status, ordered by
// insertion time so batch boundaries are reproducible across runs.
func (r *PostgresDeliveryRepository) FindEligible(ctx context.Context, family delivery.Family, status delivery.Status) ([]*delivery.Record, error) {
	query := `SELECT id, family, recipient_email, recipient_name, status, payload, processed_at, last_error, created_at
               FROM delivery_records
               WHERE family = $1 AND status = $2
               ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, family, status)
	if err != nil {
		return nil, fmt.Errorf("error querying eligible delivery records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Transition performs the compare-and-set status change. The UPDATE is
// conditioned on the record still holding the expected status; zero affected
// rows means either the record is gone or a concurrent pass won the race.
func (r *PostgresDeliveryRepository) Transition(ctx context.Context, id int64, expected, next delivery.Status, update delivery.TransitionUpdate) error {
	if !delivery.ValidTransition(expected, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, expected, next)
	}

	query := `UPDATE delivery_records
               SET status = $1, processed_at = $2, last_error = $3
               WHERE id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, next, update.ProcessedAt, update.LastError, id, expected)
	if err != nil {
		return fmt.Errorf("error transitioning delivery record %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows for record %d: %w", id, err)
	}
	if affected == 1 {
		return nil
	}

	// Distinguish a lost race from a missing record for the caller's logs.
	var current delivery.Status
	err = r.db.QueryRowContext(ctx, `SELECT status FROM delivery_records WHERE id = $1`, id).Scan(&current)
	if err == sql.ErrNoRows {
		return ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("error re-reading delivery record %d after conflict: %w", id, err)
	}
	return fmt.Errorf("%w: record %d is %s, expected %s", ErrTransitionConflict, id, current, expected)
}

func scanRecords(rows *sql.Rows) ([]*delivery.Record, error) {
	records := make([]*delivery.Record, 0)
	for rows.Next() {
		rec := delivery.Record{}
		var payload []byte
		if err := rows.Scan(
			&rec.ID, &rec.Family, &rec.RecipientEmail, &rec.RecipientName, &rec.Status,
			&payload, &rec.ProcessedAt, &rec.LastError, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning delivery record row: %w", err)
		}
		rec.Payload = json.RawMessage(payload)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery record rows: %w", err)
	}
	return records, nil
}
