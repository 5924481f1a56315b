package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/db"
)

const (
	categoryNotFoundMessage     = "category not found"
	manufacturerNotFoundMessage = "manufacturer not found"
	productNotFoundMessage      = "product not found"
)

// Repo implements the catalog repository.
type Repo struct {
	q db.Querier
}

// New creates a new catalog repository.
func New(q db.Querier) *Repo {
	return &Repo{q: q}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// =============================================================================
// Categories
// =============================================================================

const categoryColumns = `id, name, description, created_at, updated_at`

func scanCategory(row pgx.Row) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListCategories lists categories by id.
func (r *Repo) ListCategories(ctx context.Context, params ListParams) ([]Category, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY id OFFSET $1 LIMIT $2`,
		params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return items, nil
}

// GetCategoryByID retrieves a category by ID.
func (r *Repo) GetCategoryByID(ctx context.Context, id int64) (Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Category{}, fmt.Errorf("get category by id: %w", err)
	}
	return c, nil
}

// CategoryNameExists checks for a case-insensitive name clash with another row.
func (r *Repo) CategoryNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE lower(name) = lower($1) AND id <> $2)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return exists, nil
}

// CreateCategory creates a category.
func (r *Repo) CreateCategory(ctx context.Context, params CategoryParams) (Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		params.Name, params.Description))
	if err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// UpdateCategory replaces a category's fields.
func (r *Repo) UpdateCategory(ctx context.Context, id int64, params CategoryParams) (Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+categoryColumns,
		id, params.Name, params.Description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Category{}, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// DeleteCategory deletes a category. Products keep existing without one.
func (r *Repo) DeleteCategory(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(categoryNotFoundMessage)
	}
	return nil
}

// =============================================================================
// Manufacturers
// =============================================================================

const manufacturerColumns = `id, name, website, country, created_at, updated_at`

func scanManufacturer(row pgx.Row) (Manufacturer, error) {
	var m Manufacturer
	err := row.Scan(&m.ID, &m.Name, &m.Website, &m.Country, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// ListManufacturers lists manufacturers by id.
func (r *Repo) ListManufacturers(ctx context.Context, params ListParams) ([]Manufacturer, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+manufacturerColumns+` FROM manufacturers ORDER BY id OFFSET $1 LIMIT $2`,
		params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Manufacturer, error) {
		return scanManufacturer(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan manufacturers: %w", err)
	}
	return items, nil
}

// GetManufacturerByID retrieves a manufacturer by ID.
func (r *Repo) GetManufacturerByID(ctx context.Context, id int64) (Manufacturer, error) {
	m, err := scanManufacturer(r.q.QueryRow(ctx, `SELECT `+manufacturerColumns+` FROM manufacturers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Manufacturer{}, apperr.NotFound(manufacturerNotFoundMessage)
		}
		return Manufacturer{}, fmt.Errorf("get manufacturer by id: %w", err)
	}
	return m, nil
}

// ManufacturerNameExists checks for a case-insensitive name clash with another row.
func (r *Repo) ManufacturerNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM manufacturers WHERE lower(name) = lower($1) AND id <> $2)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check manufacturer name: %w", err)
	}
	return exists, nil
}

// CreateManufacturer creates a manufacturer.
func (r *Repo) CreateManufacturer(ctx context.Context, params ManufacturerParams) (Manufacturer, error) {
	m, err := scanManufacturer(r.q.QueryRow(ctx, `
		INSERT INTO manufacturers (name, website, country)
		VALUES ($1, $2, $3)
		RETURNING `+manufacturerColumns,
		params.Name, params.Website, params.Country))
	if err != nil {
		return Manufacturer{}, fmt.Errorf("create manufacturer: %w", err)
	}
	return m, nil
}

// UpdateManufacturer replaces a manufacturer's fields.
func (r *Repo) UpdateManufacturer(ctx context.Context, id int64, params ManufacturerParams) (Manufacturer, error) {
	m, err := scanManufacturer(r.q.QueryRow(ctx, `
		UPDATE manufacturers
		SET name = $2, website = $3, country = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+manufacturerColumns,
		id, params.Name, params.Website, params.Country))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Manufacturer{}, apperr.NotFound(manufacturerNotFoundMessage)
		}
		return Manufacturer{}, fmt.Errorf("update manufacturer: %w", err)
	}
	return m, nil
}

// DeleteManufacturer deletes a manufacturer.
func (r *Repo) DeleteManufacturer(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete manufacturer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(manufacturerNotFoundMessage)
	}
	return nil
}

// =============================================================================
// Products
// =============================================================================

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.image_url,
		p.category_id, p.manufacturer_id, p.average_rating, p.in_stock,
		p.created_at, p.updated_at,
		c.id, c.name, c.description, c.created_at, c.updated_at,
		m.id, m.name, m.website, m.country, m.created_at, m.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN manufacturers m ON m.id = p.manufacturer_id`

type nullableCategory struct {
	ID          *int64
	Name        *string
	Description *string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

type nullableManufacturer struct {
	ID        *int64
	Name      *string
	Website   *string
	Country   *string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p  Product
		nc nullableCategory
		nm nullableManufacturer
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.CategoryID, &p.ManufacturerID, &p.AverageRating, &p.InStock,
		&p.CreatedAt, &p.UpdatedAt,
		&nc.ID, &nc.Name, &nc.Description, &nc.CreatedAt, &nc.UpdatedAt,
		&nm.ID, &nm.Name, &nm.Website, &nm.Country, &nm.CreatedAt, &nm.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	if nc.ID != nil {
		p.Category = &Category{
			ID: *nc.ID, Name: deref(nc.Name), Description: nc.Description,
			CreatedAt: derefTime(nc.CreatedAt), UpdatedAt: derefTime(nc.UpdatedAt),
		}
	}
	if nm.ID != nil {
		p.Manufacturer = &Manufacturer{
			ID: *nm.ID, Name: deref(nm.Name), Website: nm.Website, Country: nm.Country,
			CreatedAt: derefTime(nm.CreatedAt), UpdatedAt: derefTime(nm.UpdatedAt),
		}
	}
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Product, error) {
		return scanProduct(row)
	})
}

// ListProducts lists products with their references by id.
func (r *Repo) ListProducts(ctx context.Context, params ListParams) ([]Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` ORDER BY p.id OFFSET $1 LIMIT $2`, params.Offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	items, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return items, nil
}

// GetProductByID retrieves a product with its references.
func (r *Repo) GetProductByID(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// GetProductsByIDs retrieves the products that exist among ids.
func (r *Repo) GetProductsByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.q.Query(ctx, productSelect+` WHERE p.id = ANY($1) ORDER BY p.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	items, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return items, nil
}

// CreateProduct creates a product and returns it with references.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (name, description, price, image_url, category_id, manufacturer_id, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		params.Name, params.Description, params.Price, params.ImageURL,
		params.CategoryID, params.ManufacturerID, params.InStock,
	).Scan(&id)
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return r.GetProductByID(ctx, id)
}

// UpdateProduct applies the non-nil fields of params.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		UPDATE products
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			image_url = COALESCE($5, image_url),
			category_id = COALESCE($6, category_id),
			manufacturer_id = COALESCE($7, manufacturer_id),
			in_stock = COALESCE($8, in_stock),
			updated_at = now()
		WHERE id = $1
		RETURNING id`,
		params.ID, params.Name, params.Description, params.Price, params.ImageURL,
		params.CategoryID, params.ManufacturerID, params.InStock,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return r.GetProductByID(ctx, id)
}

// DeleteProduct deletes a product.
func (r *Repo) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// SetProductImage stores the public image URL of a product.
func (r *Repo) SetProductImage(ctx context.Context, id int64, imageURL string) (Product, error) {
	result, err := r.q.Exec(ctx,
		`UPDATE products SET image_url = $2, updated_at = now() WHERE id = $1`, id, imageURL)
	if err != nil {
		return Product{}, fmt.Errorf("set product image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Product{}, apperr.NotFound(productNotFoundMessage)
	}
	return r.GetProductByID(ctx, id)
}

// RecalculateAverageRating sets average_rating to the mean review rating, or
// 0 without reviews, and returns the new value.
func (r *Repo) RecalculateAverageRating(ctx context.Context, productID int64) (float64, error) {
	var avg float64
	err := r.q.QueryRow(ctx, `
		UPDATE products
		SET average_rating = COALESCE((SELECT AVG(rating)::float8 FROM reviews WHERE product_id = $1), 0),
			updated_at = now()
		WHERE id = $1
		RETURNING average_rating`, productID).Scan(&avg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound(productNotFoundMessage)
		}
		return 0, fmt.Errorf("recalculate average rating: %w", err)
	}
	return avg, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
