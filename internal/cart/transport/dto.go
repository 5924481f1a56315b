package transport

import (
	"time"

	catalogtransport "seedstore_backend/internal/catalog/transport"
)

// Product is the catalog product embedded in cart lines.
type Product = catalogtransport.ProductResponse

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  *int  `json:"quantity" validate:"omitempty,min=1,max=1000"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=1000"`
}

type CartItemResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Product   *Product  `json:"product"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}
