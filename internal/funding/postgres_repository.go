package funding

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresRepository stores funding attempts in PostgreSQL. The partial
// unique index on owner enforces the one-active-attempt guard, and the
// conditional UPDATE in Transition enforces at-most-once credits.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the attempts table and indexes if absent.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
        CREATE TABLE IF NOT EXISTS funding_attempts (
            id UUID PRIMARY KEY,
            owner TEXT NOT NULL,
            amount_kobo BIGINT NOT NULL,
            payer_email TEXT NOT NULL,
            provider_ref TEXT,
            authorization_url TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            reason TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        );
        CREATE UNIQUE INDEX IF NOT EXISTS funding_attempts_provider_ref
            ON funding_attempts (provider_ref) WHERE provider_ref IS NOT NULL;
        CREATE UNIQUE INDEX IF NOT EXISTS funding_attempts_owner_active
            ON funding_attempts (owner)
            WHERE status IN ('created', 'awaiting_provider', 'awaiting_verification', 'verified');`
	_, err := r.db.Exec(ctx, schema)
	return err
}

// Create inserts a new attempt. A second non-terminal attempt for the same
// owner violates the partial unique index and maps to ErrAttemptInFlight.
func (r *PostgresRepository) Create(ctx context.Context, attempt Attempt) error {
	id, err := uuid.Parse(attempt.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO funding_attempts
        (id, owner, amount_kobo, payer_email, status, reason, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, attempt.Owner, attempt.AmountMinor, attempt.PayerEmail,
		string(attempt.Status), attempt.Reason, attempt.CreatedAt.UTC(), attempt.UpdatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAttemptInFlight
		}
		return err
	}
	return nil
}

// Get fetches an attempt by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Attempt, error) {
	attemptID, err := uuid.Parse(id)
	if err != nil {
		return Attempt{}, ErrAttemptNotFound
	}
	return r.scanOne(r.db.QueryRow(ctx, selectAttempt+` WHERE id = $1`, attemptID))
}

// GetByReference fetches an attempt by its provider reference.
func (r *PostgresRepository) GetByReference(ctx context.Context, reference string) (Attempt, error) {
	return r.scanOne(r.db.QueryRow(ctx, selectAttempt+` WHERE provider_ref = $1`, reference))
}

// ActiveForOwner returns the owner's non-terminal attempt, if one exists.
func (r *PostgresRepository) ActiveForOwner(ctx context.Context, owner string) (Attempt, bool, error) {
	attempt, err := r.scanOne(r.db.QueryRow(ctx, selectAttempt+`
        WHERE owner = $1 AND status IN ('created', 'awaiting_provider', 'awaiting_verification', 'verified')`, owner))
	if errors.Is(err, ErrAttemptNotFound) {
		return Attempt{}, false, nil
	}
	if err != nil {
		return Attempt{}, false, err
	}
	return attempt, true, nil
}

// RecordCheckout stores the provider reference and moves the attempt from
// created to awaiting_provider.
func (r *PostgresRepository) RecordCheckout(ctx context.Context, id, reference, authorizationURL string) error {
	attemptID, err := uuid.Parse(id)
	if err != nil {
		return ErrAttemptNotFound
	}
	tag, err := r.db.Exec(ctx, `UPDATE funding_attempts
        SET provider_ref = $2, authorization_url = $3, status = $4, updated_at = $5
        WHERE id = $1 AND status = $6`,
		attemptID, reference, authorizationURL,
		string(StatusAwaitingProvider), time.Now().UTC(), string(StatusCreated))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrMissing(ctx, attemptID)
	}
	return nil
}

// Transition applies a conditional status update. RowsAffected 0 means the
// attempt either vanished or already moved on.
func (r *PostgresRepository) Transition(ctx context.Context, id string, from, to Status, reason string) error {
	attemptID, err := uuid.Parse(id)
	if err != nil {
		return ErrAttemptNotFound
	}
	tag, err := r.db.Exec(ctx, `UPDATE funding_attempts
        SET status = $2, reason = CASE WHEN $3 = '' THEN reason ELSE $3 END, updated_at = $4
        WHERE id = $1 AND status = $5`,
		attemptID, string(to), reason, time.Now().UTC(), string(from))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrMissing(ctx, attemptID)
	}
	return nil
}

const selectAttempt = `SELECT id, owner, amount_kobo, payer_email,
    COALESCE(provider_ref, ''), authorization_url, status, reason, created_at, updated_at
    FROM funding_attempts`

func (r *PostgresRepository) scanOne(row pgx.Row) (Attempt, error) {
	var a Attempt
	var id uuid.UUID
	var status string
	if err := row.Scan(&id, &a.Owner, &a.AmountMinor, &a.PayerEmail,
		&a.ProviderRef, &a.AuthorizationURL, &status, &a.Reason, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Attempt{}, ErrAttemptNotFound
		}
		return Attempt{}, err
	}
	a.ID = id.String()
	a.Status = Status(status)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *PostgresRepository) conflictOrMissing(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM funding_attempts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrAttemptNotFound
	}
	return ErrStateConflict
}
