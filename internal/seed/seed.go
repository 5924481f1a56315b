// Package seed loads a small sample catalog for local development and demos.
// Running it twice leaves the catalog unchanged.
package seed

import (
	"context"
	"fmt"
	"strings"

	"seedstore_backend/internal/catalog/transport"
	"seedstore_backend/platform/logger"
)

const pageSize = 500

// Catalog is the part of the catalog service the seeder writes through.
type Catalog interface {
	ListCategories(ctx context.Context, req transport.ListRequest) ([]transport.CategoryResponse, error)
	CreateCategory(ctx context.Context, req transport.CategoryRequest) (transport.CategoryResponse, error)
	ListManufacturers(ctx context.Context, req transport.ListRequest) ([]transport.ManufacturerResponse, error)
	CreateManufacturer(ctx context.Context, req transport.ManufacturerRequest) (transport.ManufacturerResponse, error)
	ListProducts(ctx context.Context, req transport.ListRequest) ([]transport.ProductResponse, error)
	CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error)
}

type Category struct {
	Name        string
	Description string
}

type Manufacturer struct {
	Name    string
	Country string
	Website string
}

type Product struct {
	Name         string
	Description  string
	Price        float64
	Category     string
	Manufacturer string
}

// Sample is a catalog to load. Products reference categories and
// manufacturers by name.
type Sample struct {
	Categories    []Category
	Manufacturers []Manufacturer
	Products      []Product
}

// Result counts the rows a run inserted.
type Result struct {
	Categories    int `json:"categories"`
	Manufacturers int `json:"manufacturers"`
	Products      int `json:"products"`
}

// DefaultSample is the demo catalog.
func DefaultSample() Sample {
	return Sample{
		Categories: []Category{
			{Name: "Овощи", Description: "Семена овощных культур"},
			{Name: "Зелень", Description: "Пряные и салатные травы"},
			{Name: "Цветы", Description: "Однолетние и многолетние цветы"},
		},
		Manufacturers: []Manufacturer{
			{Name: "SeedCo", Country: "Голландия", Website: "https://seedco.example.com"},
			{Name: "GardenPro", Country: "Германия", Website: "https://gardenpro.example.com"},
		},
		Products: []Product{
			{
				Name:         "Базилик Дольче",
				Description:  "Ароматный зелёный базилик для открытого грунта и подоконника",
				Price:        150,
				Category:     "Зелень",
				Manufacturer: "SeedCo",
			},
			{
				Name:         "Томат Бычье сердце",
				Description:  "Крупноплодный томат для теплиц, плоды до 600 г",
				Price:        200,
				Category:     "Овощи",
				Manufacturer: "GardenPro",
			},
		},
	}
}

// Seeder inserts a Sample through the catalog service.
type Seeder struct {
	catalog Catalog
	log     *logger.Logger
}

func New(catalog Catalog, log *logger.Logger) *Seeder {
	return &Seeder{catalog: catalog, log: log}
}

// Run inserts every entry of sample whose name is not already present.
// Names are compared case-insensitively.
func (s *Seeder) Run(ctx context.Context, sample Sample) (Result, error) {
	var res Result

	categories, err := s.categoryIDs(ctx)
	if err != nil {
		return res, err
	}
	for _, c := range sample.Categories {
		if _, ok := categories[key(c.Name)]; ok {
			continue
		}
		created, err := s.catalog.CreateCategory(ctx, transport.CategoryRequest{Name: c.Name, Description: optional(c.Description)})
		if err != nil {
			return res, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		categories[key(created.Name)] = created.ID
		res.Categories++
	}

	manufacturers, err := s.manufacturerIDs(ctx)
	if err != nil {
		return res, err
	}
	for _, m := range sample.Manufacturers {
		if _, ok := manufacturers[key(m.Name)]; ok {
			continue
		}
		created, err := s.catalog.CreateManufacturer(ctx, transport.ManufacturerRequest{
			Name:    m.Name,
			Country: optional(m.Country),
			Website: optional(m.Website),
		})
		if err != nil {
			return res, fmt.Errorf("seed manufacturer %q: %w", m.Name, err)
		}
		manufacturers[key(created.Name)] = created.ID
		res.Manufacturers++
	}

	products, err := s.productNames(ctx)
	if err != nil {
		return res, err
	}
	for _, p := range sample.Products {
		if products[key(p.Name)] {
			continue
		}
		req := transport.CreateProductRequest{
			Name:        p.Name,
			Description: optional(p.Description),
			Price:       &p.Price,
		}
		if id, ok := categories[key(p.Category)]; ok {
			req.CategoryID = &id
		} else if p.Category != "" {
			return res, fmt.Errorf("seed product %q: unknown category %q", p.Name, p.Category)
		}
		if id, ok := manufacturers[key(p.Manufacturer)]; ok {
			req.ManufacturerID = &id
		} else if p.Manufacturer != "" {
			return res, fmt.Errorf("seed product %q: unknown manufacturer %q", p.Name, p.Manufacturer)
		}

		if _, err := s.catalog.CreateProduct(ctx, req); err != nil {
			return res, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		products[key(p.Name)] = true
		res.Products++
	}

	s.log.Info("catalog seeded", "categories", res.Categories, "manufacturers", res.Manufacturers, "products", res.Products)
	return res, nil
}

func (s *Seeder) categoryIDs(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for skip := 0; ; skip += pageSize {
		page, err := s.catalog.ListCategories(ctx, transport.ListRequest{Skip: skip, Limit: pageSize})
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		for _, c := range page {
			out[key(c.Name)] = c.ID
		}
		if len(page) < pageSize {
			return out, nil
		}
	}
}

func (s *Seeder) manufacturerIDs(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for skip := 0; ; skip += pageSize {
		page, err := s.catalog.ListManufacturers(ctx, transport.ListRequest{Skip: skip, Limit: pageSize})
		if err != nil {
			return nil, fmt.Errorf("list manufacturers: %w", err)
		}
		for _, m := range page {
			out[key(m.Name)] = m.ID
		}
		if len(page) < pageSize {
			return out, nil
		}
	}
}

func (s *Seeder) productNames(ctx context.Context) (map[string]bool, error) {
	out := map[string]bool{}
	for skip := 0; ; skip += pageSize {
		page, err := s.catalog.ListProducts(ctx, transport.ListRequest{Skip: skip, Limit: pageSize})
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		for _, p := range page {
			out[key(p.Name)] = true
		}
		if len(page) < pageSize {
			return out, nil
		}
	}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
