package repository

import (
	"context"
	"time"
)

// CartItem is one product line in a user's cart.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository defines cart persistence. Every method is scoped to the owner.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]CartItem, error)
	// AddOrMerge inserts the item, or adds quantity to the existing line for
	// the same product.
	AddOrMerge(ctx context.Context, userID, productID int64, quantity int) (CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (CartItem, error)
	Delete(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}
