package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"studynotes/internal/model"
	"studynotes/internal/repository"
)

const orderColumns = `id, user_id, amount, currency, receipt, created_at`

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
type OrderPostgres struct {
	db *sql.DB
}

func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

func scanOrder(row rowScanner) (*model.PaymentOrder, error) {
	var o model.PaymentOrder
	if err := row.Scan(&o.ID, &o.UserID, &o.Amount, &o.Currency, &o.Receipt, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create records an issued order. Provider order ids are unique; a repeat yields repository.ErrDuplicate.
func (r *OrderPostgres) Create(ctx context.Context, o *model.PaymentOrder) (*model.PaymentOrder, error) {
	const q = `
		INSERT INTO payment_orders (id, user_id, amount, currency, receipt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + orderColumns
	out, err := scanOrder(r.db.QueryRowContext(ctx, q, o.ID, o.UserID, o.Amount, o.Currency, o.Receipt, o.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

func (r *OrderPostgres) FindByID(ctx context.Context, id string) (*model.PaymentOrder, error) {
	const q = `SELECT ` + orderColumns + ` FROM payment_orders WHERE id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, q, id))
}
