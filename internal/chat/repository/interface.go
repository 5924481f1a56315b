package repository

import (
	"context"
	"time"
)

// ManufacturerRef is the manufacturer data the chat filter reads through.
type ManufacturerRef struct {
	Name    string
	Country *string
}

// CategoryRef is the category data the chat filter reads through.
type CategoryRef struct {
	Name string
}

// Product is the read model used by chat search. Manufacturer and Category are
// nil when the product has no such reference.
type Product struct {
	ID           int64
	Name         string
	Description  *string
	Price        float64
	ImageURL     *string
	Manufacturer *ManufacturerRef
	Category     *CategoryRef
}

// CatalogProduct is a full product row returned by keyword search.
type CatalogProduct struct {
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
}

// Repository defines the product reads chat search depends on.
type Repository interface {
	// ListAllWithReferences returns every product with its manufacturer and
	// category populated, ordered by id.
	ListAllWithReferences(ctx context.Context) ([]Product, error)
	// SearchByKeywords returns products whose name, description, category
	// name or manufacturer name contains any of words, ordered by id.
	SearchByKeywords(ctx context.Context, words []string) ([]CatalogProduct, error)
}
