package repository

import (
	"context"
	"time"
)

// Review is a user's rating of a product.
type Review struct {
	ID        int64
	ProductID int64
	UserID    int64
	Rating    int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListParams pages a review listing.
type ListParams struct {
	Offset int
	Limit  int
}

// CreateParams contains data for a new review.
type CreateParams struct {
	ProductID int64
	UserID    int64
	Rating    int
	Comment   *string
}

// UpdateParams is a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	Rating  *int
	Comment *string
}

// Repository defines review persistence.
type Repository interface {
	List(ctx context.Context, params ListParams) ([]Review, error)
	ListByProduct(ctx context.Context, productID int64, params ListParams) ([]Review, error)
	GetByID(ctx context.Context, id int64) (Review, error)
	Create(ctx context.Context, params CreateParams) (Review, error)
	Update(ctx context.Context, id int64, params UpdateParams) (Review, error)
	Delete(ctx context.Context, id int64) error
}
