package transport

import "time"

// ListRequest pages a catalog listing.
type ListRequest struct {
	Skip  int `form:"skip" validate:"min=0"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=500"`
}

// Categories

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Manufacturers

type ManufacturerRequest struct {
	Name    string  `json:"name" validate:"required,notblank,max=100"`
	Website *string `json:"website" validate:"omitempty,url,max=2048"`
	Country *string `json:"country" validate:"omitempty,max=100"`
}

type ManufacturerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Website   *string   `json:"website"`
	Country   *string   `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Products

type CreateProductRequest struct {
	Name           string   `json:"name" validate:"required,notblank,max=200"`
	Description    *string  `json:"description" validate:"omitempty,max=5000"`
	Price          *float64 `json:"price" validate:"required,min=0"`
	ImageURL       *string  `json:"image_url" validate:"omitempty,url,max=2048"`
	CategoryID     *int64   `json:"category_id" validate:"omitempty,min=1"`
	ManufacturerID *int64   `json:"manufacturer_id" validate:"omitempty,min=1"`
	InStock        *bool    `json:"in_stock"`
}

type UpdateProductRequest struct {
	Name           *string  `json:"name" validate:"omitempty,notblank,max=200"`
	Description    *string  `json:"description" validate:"omitempty,max=5000"`
	Price          *float64 `json:"price" validate:"omitempty,min=0"`
	ImageURL       *string  `json:"image_url" validate:"omitempty,url,max=2048"`
	CategoryID     *int64   `json:"category_id" validate:"omitempty,min=1"`
	ManufacturerID *int64   `json:"manufacturer_id" validate:"omitempty,min=1"`
	InStock        *bool    `json:"in_stock"`
}

type ProductResponse struct {
	ID             int64                 `json:"id"`
	Name           string                `json:"name"`
	Description    *string               `json:"description"`
	Price          float64               `json:"price"`
	ImageURL       *string               `json:"image_url"`
	CategoryID     *int64                `json:"category_id"`
	ManufacturerID *int64                `json:"manufacturer_id"`
	AverageRating  float64               `json:"average_rating"`
	InStock        bool                  `json:"in_stock"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Category       *CategoryResponse     `json:"category"`
	Manufacturer   *ManufacturerResponse `json:"manufacturer"`
}

// Images

type PresignImageRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=255"`
	ContentType string `json:"contentType" validate:"required,min=1,max=255"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type PresignedUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresAt int64  `json:"expiresAt"`
}

type AttachImageRequest struct {
	FileKey string `json:"fileKey" validate:"required,min=1,max=1024"`
}
