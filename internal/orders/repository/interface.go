package repository

import (
	"context"
	"time"
)

// Order statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Order is a placed order with its lines.
type Order struct {
	ID          int64
	UserID      int64
	Status      string
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

// OrderItem is one line of an order. Price is the unit price captured when
// the order was placed. ProductID is nil once the product is deleted.
type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductID       *int64
	Quantity        int
	Price           float64
	ProductName     *string
	ProductImageURL *string
}

// Comment is a message attached to an order.
type Comment struct {
	ID        int64
	OrderID   int64
	UserID    int64
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListParams filters and pages order listings. A nil UserID lists every order.
type ListParams struct {
	UserID *int64
	Offset int
	Limit  int
}

// NewItem is an order line to insert.
type NewItem struct {
	ProductID int64
	Quantity  int
	Price     float64
}

// CreateOrderParams contains data for placing an order.
type CreateOrderParams struct {
	UserID      int64
	TotalAmount float64
	Items       []NewItem
}

// OrderReader is the narrow interface for loading orders.
type OrderReader interface {
	GetByID(ctx context.Context, id int64) (Order, error)
}

// Repository defines order persistence.
type Repository interface {
	OrderReader
	List(ctx context.Context, params ListParams) ([]Order, error)
	// Create inserts the order and its items in one transaction.
	Create(ctx context.Context, params CreateOrderParams) (Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (Order, error)
	Delete(ctx context.Context, id int64) error

	ListComments(ctx context.Context, orderID int64) ([]Comment, error)
	CreateComment(ctx context.Context, orderID, userID int64, comment string) (Comment, error)
}
