package transport

import "time"

// ListRequest pages a review listing.
type ListRequest struct {
	Skip  int `form:"skip" validate:"min=0"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=500"`
}

type CreateReviewRequest struct {
	ProductID int64   `json:"product_id" validate:"required,min=1"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserName  *string   `json:"user_name"`
	UserEmail *string   `json:"user_email"`
}
