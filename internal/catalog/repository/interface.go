package repository

import (
	"context"
	"time"
)

// Category groups products.
type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Manufacturer produces products.
type Manufacturer struct {
	ID        int64
	Name      string
	Website   *string
	Country   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is a catalog item. Category and Manufacturer are populated by reads
// that join them and are nil otherwise or when the reference is unset.
type Product struct {
	ID             int64
	Name           string
	Description    *string
	Price          float64
	ImageURL       *string
	CategoryID     *int64
	ManufacturerID *int64
	AverageRating  float64
	InStock        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Category       *Category
	Manufacturer   *Manufacturer
}

// ListParams pages a listing.
type ListParams struct {
	Offset int
	Limit  int
}

// CategoryParams carries category fields for create and update.
type CategoryParams struct {
	Name        string
	Description *string
}

// ManufacturerParams carries manufacturer fields for create and update.
type ManufacturerParams struct {
	Name    string
	Website *string
	Country *string
}

// CreateProductParams contains data for creating a product.
type CreateProductParams struct {
	Name           string
	Description    *string
	Price          float64
	ImageURL       *string
	CategoryID     *int64
	ManufacturerID *int64
	InStock        bool
}

// UpdateProductParams contains data for a partial product update. Nil fields
// are left unchanged.
type UpdateProductParams struct {
	ID             int64
	Name           *string
	Description    *string
	Price          *float64
	ImageURL       *string
	CategoryID     *int64
	ManufacturerID *int64
	InStock        *bool
}

// Repository defines catalog persistence.
type Repository interface {
	// Categories
	ListCategories(ctx context.Context, params ListParams) ([]Category, error)
	GetCategoryByID(ctx context.Context, id int64) (Category, error)
	CategoryNameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	CreateCategory(ctx context.Context, params CategoryParams) (Category, error)
	UpdateCategory(ctx context.Context, id int64, params CategoryParams) (Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	// Manufacturers
	ListManufacturers(ctx context.Context, params ListParams) ([]Manufacturer, error)
	GetManufacturerByID(ctx context.Context, id int64) (Manufacturer, error)
	ManufacturerNameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	CreateManufacturer(ctx context.Context, params ManufacturerParams) (Manufacturer, error)
	UpdateManufacturer(ctx context.Context, id int64, params ManufacturerParams) (Manufacturer, error)
	DeleteManufacturer(ctx context.Context, id int64) error

	// Products
	ListProducts(ctx context.Context, params ListParams) ([]Product, error)
	GetProductByID(ctx context.Context, id int64) (Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	SetProductImage(ctx context.Context, id int64, imageURL string) (Product, error)
	RecalculateAverageRating(ctx context.Context, productID int64) (float64, error)
}
