// Package changefeed persists and acknowledges the Transaction.Cloud
// change feed. The feed is a poll-and-ack queue: transactions stay in
// it until marked as processed, so a consumer that stores before acking
// never loses a change.
package changefeed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/transactioncloud/transactioncloud-go/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS changed_transactions (
	id                 TEXT PRIMARY KEY,
	changed_status     TEXT NOT NULL,
	assigned_email     TEXT NOT NULL,
	charge_frequency   TEXT NOT NULL,
	country            TEXT NOT NULL,
	create_date        DATE NOT NULL,
	email              TEXT NOT NULL,
	last_charge        DATE NOT NULL,
	next_charge        DATE NOT NULL,
	payload            TEXT,
	product_id         TEXT NOT NULL,
	product_name       TEXT NOT NULL,
	transaction_status TEXT NOT NULL,
	transaction_type   TEXT NOT NULL,
	first_seen_at      TIMESTAMPTZ NOT NULL,
	last_seen_at       TIMESTAMPTZ NOT NULL
)`

// Record is one persisted change-feed row.
type Record struct {
	ID                string
	ChangedStatus     string
	AssignedEmail     string
	ChargeFrequency   string
	Country           string
	CreateDate        time.Time
	Email             string
	LastCharge        time.Time
	NextCharge        time.Time
	Payload           *string
	ProductID         string
	ProductName       string
	TransactionStatus string
	TransactionType   string
	FirstSeenAt       time.Time
	LastSeenAt        time.Time
}

// Store keeps changed transactions in Postgres, one row per
// transaction id, updated in place when the feed reports the same
// transaction again.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// EnsureSchema creates the changed_transactions table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("changefeed: ensure schema: %w", err)
	}
	return nil
}

// UpsertChangedTransaction inserts or refreshes the row for the
// transaction's id.
func (s *Store) UpsertChangedTransaction(ctx context.Context, tx *model.ChangedTransaction) error {
	query := `
		INSERT INTO changed_transactions
		(id, changed_status, assigned_email, charge_frequency, country, create_date,
		 email, last_charge, next_charge, payload, product_id, product_name,
		 transaction_status, transaction_type, first_seen_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
		ON CONFLICT (id) DO UPDATE SET
			changed_status     = EXCLUDED.changed_status,
			assigned_email     = EXCLUDED.assigned_email,
			charge_frequency   = EXCLUDED.charge_frequency,
			country            = EXCLUDED.country,
			create_date        = EXCLUDED.create_date,
			email              = EXCLUDED.email,
			last_charge        = EXCLUDED.last_charge,
			next_charge        = EXCLUDED.next_charge,
			payload            = EXCLUDED.payload,
			product_id         = EXCLUDED.product_id,
			product_name       = EXCLUDED.product_name,
			transaction_status = EXCLUDED.transaction_status,
			transaction_type   = EXCLUDED.transaction_type,
			last_seen_at       = EXCLUDED.last_seen_at
	`

	var payload sql.NullString
	if tx.Payload() != nil {
		payload = sql.NullString{String: *tx.Payload(), Valid: true}
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		tx.ID(),
		tx.ChangedStatus(),
		tx.AssignedEmail(),
		tx.ChargeFrequency(),
		tx.Country(),
		tx.CreateDate(),
		tx.Email(),
		tx.LastCharge(),
		tx.NextCharge(),
		payload,
		tx.ProductID(),
		tx.ProductName(),
		tx.TransactionStatus(),
		tx.TransactionType(),
		time.Now().UTC(),
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			s.logger.Error("Failed to upsert changed transaction",
				"transaction_id", tx.ID(),
				"pq_code", string(pqErr.Code),
				"error", err)
		} else {
			s.logger.Error("Failed to upsert changed transaction",
				"transaction_id", tx.ID(),
				"error", err)
		}
		return fmt.Errorf("changefeed: upsert %s: %w", tx.ID(), err)
	}

	return nil
}

// GetRecord returns the stored row for a transaction id, or nil when
// none exists.
func (s *Store) GetRecord(ctx context.Context, id string) (*Record, error) {
	query := `
		SELECT id, changed_status, assigned_email, charge_frequency, country,
		       create_date, email, last_charge, next_charge, payload, product_id,
		       product_name, transaction_status, transaction_type,
		       first_seen_at, last_seen_at
		FROM changed_transactions WHERE id = $1
	`

	var record Record
	var payload sql.NullString

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.ChangedStatus,
		&record.AssignedEmail,
		&record.ChargeFrequency,
		&record.Country,
		&record.CreateDate,
		&record.Email,
		&record.LastCharge,
		&record.NextCharge,
		&payload,
		&record.ProductID,
		&record.ProductName,
		&record.TransactionStatus,
		&record.TransactionType,
		&record.FirstSeenAt,
		&record.LastSeenAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("changefeed: get %s: %w", id, err)
	}

	if payload.Valid {
		record.Payload = &payload.String
	}
	return &record, nil
}

// CountRecords returns the number of stored rows.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM changed_transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("changefeed: count: %w", err)
	}
	return count, nil
}
