package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/db"
)

const cartItemNotFoundMsg = "cart item not found"

// Repo implements Repository on PostgreSQL.
type Repo struct {
	q db.Querier
}

// New creates a new cart repository.
func New(q db.Querier) *Repo {
	return &Repo{q: q}
}

const cartItemColumns = `id, user_id, product_id, quantity, created_at, updated_at`

func scanCartItem(row pgx.Row) (CartItem, error) {
	var item CartItem
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

// ListByUser returns the user's cart in insertion order.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]CartItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cartItemColumns+` FROM cart_items WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return items, nil
}

// AddOrMerge upserts on (user_id, product_id) so concurrent adds never
// produce duplicate lines.
func (r *Repo) AddOrMerge(ctx context.Context, userID, productID int64, quantity int) (CartItem, error) {
	item, err := scanCartItem(r.q.QueryRow(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING `+cartItemColumns,
		userID, productID, quantity,
	))
	if err != nil {
		return CartItem{}, fmt.Errorf("add cart item: %w", err)
	}
	return item, nil
}

// UpdateQuantity sets the quantity of an item owned by userID.
func (r *Repo) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (CartItem, error) {
	item, err := scanCartItem(r.q.QueryRow(ctx, `
		UPDATE cart_items SET quantity = $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+cartItemColumns,
		itemID, userID, quantity,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return CartItem{}, apperr.NotFound(cartItemNotFoundMsg)
	}
	if err != nil {
		return CartItem{}, fmt.Errorf("update cart item: %w", err)
	}
	return item, nil
}

// Delete removes an item owned by userID.
func (r *Repo) Delete(ctx context.Context, userID, itemID int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(cartItemNotFoundMsg)
	}
	return nil
}

// Clear empties the user's cart.
func (r *Repo) Clear(ctx context.Context, userID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

var _ Repository = (*Repo)(nil)
