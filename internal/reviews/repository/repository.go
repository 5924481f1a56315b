package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/db"
)

const reviewNotFoundMsg = "review not found"

// Repo implements Repository on PostgreSQL.
type Repo struct {
	q db.Querier
}

// New creates a new reviews repository.
func New(q db.Querier) *Repo {
	return &Repo{q: q}
}

const reviewColumns = `id, product_id, user_id, rating, comment, created_at, updated_at`

func (r *Repo) query(ctx context.Context, op, sql string, args ...any) ([]Review, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Review])
	if err != nil {
		return nil, fmt.Errorf("%s: scan: %w", op, err)
	}
	return reviews, nil
}

// List returns all reviews, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Review, error) {
	return r.query(ctx, "list reviews",
		`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		params.Limit, params.Offset)
}

// ListByProduct returns a product's reviews, newest first.
func (r *Repo) ListByProduct(ctx context.Context, productID int64, params ListParams) ([]Review, error) {
	return r.query(ctx, "list product reviews",
		`SELECT `+reviewColumns+` FROM reviews WHERE product_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		productID, params.Limit, params.Offset)
}

func (r *Repo) one(ctx context.Context, op, sql string, args ...any) (Review, error) {
	var rv Review
	err := r.q.QueryRow(ctx, sql, args...).Scan(
		&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, apperr.NotFound(reviewNotFoundMsg)
	}
	if err != nil {
		return Review{}, fmt.Errorf("%s: %w", op, err)
	}
	return rv, nil
}

// GetByID retrieves a review.
func (r *Repo) GetByID(ctx context.Context, id int64) (Review, error) {
	return r.one(ctx, "get review", `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
}

// Create inserts a review.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Review, error) {
	return r.one(ctx, "create review", `
		INSERT INTO reviews (product_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING `+reviewColumns,
		params.ProductID, params.UserID, params.Rating, params.Comment)
}

// Update applies a partial update.
func (r *Repo) Update(ctx context.Context, id int64, params UpdateParams) (Review, error) {
	return r.one(ctx, "update review", `
		UPDATE reviews SET
			rating = COALESCE($2, rating),
			comment = COALESCE($3, comment),
			updated_at = now()
		WHERE id = $1
		RETURNING `+reviewColumns,
		id, params.Rating, params.Comment)
}

// Delete removes a review.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(reviewNotFoundMsg)
	}
	return nil
}

var _ Repository = (*Repo)(nil)
