package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/db"
)

const orderNotFoundMsg = "order not found"

// Repo implements Repository on PostgreSQL.
type Repo struct {
	db db.DB
}

// New creates a new orders repository.
func New(pool db.DB) *Repo {
	return &Repo{db: pool}
}

const orderColumns = `id, user_id, status, total_amount, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// List returns orders newest first, with their items.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if params.UserID != nil {
		args = append(args, *params.UserID)
		query += ` WHERE user_id = $1`
	}
	args = append(args, params.Limit, params.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID retrieves an order with its items.
func (r *Repo) GetByID(ctx context.Context, id int64) (Order, error) {
	return getByID(ctx, r.db, id)
}

func getByID(ctx context.Context, q db.Querier, id int64) (Order, error) {
	o, err := scanOrder(q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, apperr.NotFound(orderNotFoundMsg)
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}

	orders := []Order{o}
	if err := loadItems(ctx, q, orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *Repo) attachItems(ctx context.Context, orders []Order) error {
	return loadItems(ctx, r.db, orders)
}

// loadItems fills Items for every order with a single query.
func loadItems(ctx context.Context, q db.Querier, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
		orders[i].Items = []OrderItem{}
	}

	rows, err := q.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, p.name, p.image_url
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName, &item.ProductImageURL); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}
	return nil
}

// Create inserts the order header and lines atomically.
func (r *Repo) Create(ctx context.Context, params CreateOrderParams) (Order, error) {
	var created Order
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var orderID int64
		if err := tx.QueryRow(ctx, `
			INSERT INTO orders (user_id, status, total_amount)
			VALUES ($1, $2, $3)
			RETURNING id`,
			params.UserID, StatusPending, params.TotalAmount,
		).Scan(&orderID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for _, item := range params.Items {
			batch.Queue(`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`,
				orderID, item.ProductID, item.Quantity, item.Price)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}

		o, err := getByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return Order{}, err
	}
	return created, nil
}

// UpdateStatus sets an order's status.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status string) (Order, error) {
	result, err := r.db.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return Order{}, fmt.Errorf("update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Order{}, apperr.NotFound(orderNotFoundMsg)
	}
	return r.GetByID(ctx, id)
}

// Delete removes an order; items and comments cascade.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMsg)
	}
	return nil
}

// ListComments returns an order's comments oldest first.
func (r *Repo) ListComments(ctx context.Context, orderID int64) ([]Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, user_id, comment, created_at, updated_at
		FROM order_comments
		WHERE order_id = $1
		ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order comments: %w", err)
	}
	comments, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Comment])
	if err != nil {
		return nil, fmt.Errorf("scan order comments: %w", err)
	}
	return comments, nil
}

// CreateComment adds a comment to an order.
func (r *Repo) CreateComment(ctx context.Context, orderID, userID int64, comment string) (Comment, error) {
	var c Comment
	err := r.db.QueryRow(ctx, `
		INSERT INTO order_comments (order_id, user_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, order_id, user_id, comment, created_at, updated_at`,
		orderID, userID, comment,
	).Scan(&c.ID, &c.OrderID, &c.UserID, &c.Comment, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Comment{}, fmt.Errorf("create order comment: %w", err)
	}
	return c, nil
}

var _ Repository = (*Repo)(nil)
