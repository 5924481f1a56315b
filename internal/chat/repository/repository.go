package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"seedstore_backend/platform/db"
)

// Repo implements Repository on PostgreSQL.
type Repo struct {
	q db.Querier
}

// New creates a new chat repository.
func New(q db.Querier) *Repo {
	return &Repo{q: q}
}

var _ Repository = (*Repo)(nil)

// ListAllWithReferences loads the whole catalog in one query.
func (r *Repo) ListAllWithReferences(ctx context.Context) ([]Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.image_url,
			m.id, m.name, m.country,
			c.id, c.name
		FROM products p
		LEFT JOIN manufacturers m ON m.id = p.manufacturer_id
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products with references: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var (
			p                  Product
			manufacturerID     *int64
			manufacturerName   *string
			manufacturerOrigin *string
			categoryID         *int64
			categoryName       *string
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&manufacturerID, &manufacturerName, &manufacturerOrigin,
			&categoryID, &categoryName,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if manufacturerID != nil {
			p.Manufacturer = &ManufacturerRef{Name: deref(manufacturerName), Country: manufacturerOrigin}
		}
		if categoryID != nil {
			p.Category = &CategoryRef{Name: deref(categoryName)}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// SearchByKeywords pushes the keyword match down to SQL. Products without a
// category or manufacturer never match.
func (r *Repo) SearchByKeywords(ctx context.Context, words []string) ([]CatalogProduct, error) {
	if len(words) == 0 {
		return []CatalogProduct{}, nil
	}

	conditions := make([]string, 0, len(words))
	args := make([]interface{}, 0, len(words))
	for i, word := range words {
		placeholder := fmt.Sprintf("$%d", i+1)
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE %[1]s OR p.description ILIKE %[1]s OR c.name ILIKE %[1]s OR m.name ILIKE %[1]s)",
			placeholder,
		))
		args = append(args, "%"+escapeLike(word)+"%")
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.price, p.image_url,
			p.category_id, p.manufacturer_id, p.average_rating, p.in_stock,
			p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN manufacturers m ON m.id = p.manufacturer_id
		WHERE %s
		ORDER BY p.id`, strings.Join(conditions, " OR "))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products by keywords: %w", err)
	}
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CatalogProduct, error) {
		var p CatalogProduct
		err := row.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
			&p.CategoryID, &p.ManufacturerID, &p.AverageRating, &p.InStock,
			&p.CreatedAt, &p.UpdatedAt,
		)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan keyword search: %w", err)
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
