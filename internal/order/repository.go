// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/delivery-orders/internal/core"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Order, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	query := `
		INSERT INTO orders (address, status, total, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at`

	err := r.db.GetContext(ctx, order, query,
		order.Address,
		order.Status,
		order.Total,
		order.UserID,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := `
		SELECT id, address, status, total, user_id, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var order Order
	err := r.db.GetContext(ctx, &order, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &order, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID int64,
) ([]Order, error) {
	query := `
		SELECT id, address, status, total, user_id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus locks the row before writing so a concurrent update
// cannot interleave between the existence check and the write.
func (r *repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status string,
) (*Order, error) {
	var order Order

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		lockQuery := `
			SELECT id, address, status, total, user_id, created_at, updated_at
			FROM orders
			WHERE id = $1
			FOR UPDATE`

		err := tx.GetContext(ctx, &order, lockQuery, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update order status: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		updateQuery := `
			UPDATE orders
			SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`

		if err := tx.GetContext(ctx, &order.UpdatedAt, updateQuery, id, status); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
