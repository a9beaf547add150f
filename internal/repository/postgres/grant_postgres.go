package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"studynotes/internal/model"
	"studynotes/internal/repository"
)

const (
	grantColumns = `id, user_id, plan, active, expires_at, payment_id, created_at`

	uniqueViolation = "23505"
)

// GrantPostgres is a PostgreSQL implementation of repository.GrantRepository.
type GrantPostgres struct {
	db *sql.DB
}

// NewGrantPostgres creates a new GrantPostgres repository.
func NewGrantPostgres(db *sql.DB) *GrantPostgres {
	return &GrantPostgres{db: db}
}

var _ repository.GrantRepository = (*GrantPostgres)(nil)

func scanGrant(row rowScanner) (*model.AccessGrant, error) {
	var g model.AccessGrant
	if err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Plan,
		&g.Active,
		&g.ExpiresAt,
		&g.PaymentID,
		&g.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}

// FindActive returns the longest-lived valid grant of the user.
func (r *GrantPostgres) FindActive(ctx context.Context, userID string, now time.Time) (*model.AccessGrant, error) {
	const q = `
		SELECT ` + grantColumns + `
		FROM access_grants
		WHERE user_id = $1 AND active = TRUE AND expires_at > $2
		ORDER BY expires_at DESC
		LIMIT 1
	`
	return scanGrant(r.db.QueryRowContext(ctx, q, userID, now))
}

// FindByPaymentID returns the grant recorded for a payment reference.
func (r *GrantPostgres) FindByPaymentID(ctx context.Context, paymentID string) (*model.AccessGrant, error) {
	const q = `SELECT ` + grantColumns + ` FROM access_grants WHERE payment_id = $1`
	return scanGrant(r.db.QueryRowContext(ctx, q, paymentID))
}

// Create inserts a grant row. A payment reference that already has a grant yields repository.ErrDuplicate.
func (r *GrantPostgres) Create(ctx context.Context, g *model.AccessGrant) (*model.AccessGrant, error) {
	const q = `
		INSERT INTO access_grants (id, user_id, plan, active, expires_at, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + grantColumns
	row := r.db.QueryRowContext(ctx, q,
		g.ID,
		g.UserID,
		g.Plan,
		g.Active,
		g.ExpiresAt,
		g.PaymentID,
		g.CreatedAt,
	)
	out, err := scanGrant(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}
