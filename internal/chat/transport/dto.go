package transport

import "time"

// ChatSearchRequest is the body of POST /chat/search.
type ChatSearchRequest struct {
	Prompt *string `json:"prompt" validate:"required,max=2000"`
}

// ManufacturerView is the manufacturer part of a chat result.
type ManufacturerView struct {
	Name    string  `json:"name"`
	Country *string `json:"country"`
}

// CategoryView is the category part of a chat result.
type CategoryView struct {
	Name string `json:"name"`
}

// FilteredProductView is the reduced product shape returned by chat search.
// Rating and stock are left out on purpose.
type FilteredProductView struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Description  *string           `json:"description"`
	Price        float64           `json:"price"`
	ImageURL     *string           `json:"image_url"`
	Manufacturer *ManufacturerView `json:"manufacturer"`
	Category     *CategoryView     `json:"category"`
}

// ChatSearchResponse carries the reply text and the matched products.
type ChatSearchResponse struct {
	Response string                `json:"response"`
	Products []FilteredProductView `json:"products"`
}

// AgentSearchRequest is the query of POST /ai-agent/search.
type AgentSearchRequest struct {
	Prompt string `form:"prompt" validate:"notblank,max=2000"`
}

// AgentRecommendRequest is the query of POST /ai-agent/recommend.
type AgentRecommendRequest struct {
	Prompt string `form:"prompt" validate:"notblank,max=2000"`
	Limit  *int   `form:"limit" validate:"omitempty,min=1,max=100"`
}

// ProductResponse is the full product shape returned by keyword search.
type ProductResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	Price          float64   `json:"price"`
	ImageURL       *string   `json:"image_url"`
	CategoryID     *int64    `json:"category_id"`
	ManufacturerID *int64    `json:"manufacturer_id"`
	AverageRating  float64   `json:"average_rating"`
	InStock        bool      `json:"in_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
