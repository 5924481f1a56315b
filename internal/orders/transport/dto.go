package transport

import "time"

// ListRequest pages an order listing.
type ListRequest struct {
	Skip  int `form:"skip" validate:"min=0"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=500"`
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1,max=1000"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// UpdateOrderRequest is the owner-facing update. Only status may change.
type UpdateOrderRequest struct {
	Status *string `json:"status" validate:"omitempty,order_status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

type OrderProduct struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
}

type OrderItemResponse struct {
	ID        int64         `json:"id"`
	OrderID   int64         `json:"order_id"`
	ProductID *int64        `json:"product_id"`
	Quantity  int           `json:"quantity"`
	Price     float64       `json:"price"`
	Product   *OrderProduct `json:"product"`
}

type OrderResponse struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"user_id"`
	TotalAmount   float64             `json:"total_amount"`
	Status        string              `json:"status"`
	StatusDisplay string              `json:"status_display"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	OrderItems    []OrderItemResponse `json:"order_items"`
}

// Comments

type CreateCommentRequest struct {
	OrderID int64  `json:"order_id" validate:"required,min=1"`
	Comment string `json:"comment" validate:"required,notblank,max=2000"`
}

type CommentResponse struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"order_id"`
	UserID       int64     `json:"user_id"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserEmail    *string   `json:"user_email"`
	UserFullName *string   `json:"user_full_name"`
}
