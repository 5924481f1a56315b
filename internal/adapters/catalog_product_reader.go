package adapters

import (
	"context"
	"fmt"

	cartsvc "seedstore_backend/internal/cart/service"
	carttransport "seedstore_backend/internal/cart/transport"
	catalogtransport "seedstore_backend/internal/catalog/transport"
	ordersvc "seedstore_backend/internal/orders/service"
	reviewsvc "seedstore_backend/internal/reviews/service"
)

// ProductLister is the narrow catalog read the adapter needs.
type ProductLister interface {
	GetProductsByIDs(ctx context.Context, ids []int64) ([]catalogtransport.ProductResponse, error)
}

// CatalogProductReader adapts the catalog service for the cart, orders and
// reviews domains. Unknown IDs are silently omitted.
type CatalogProductReader struct {
	catalog ProductLister
}

// NewCatalogProductReader creates a new catalog reader adapter.
func NewCatalogProductReader(catalog ProductLister) *CatalogProductReader {
	return &CatalogProductReader{catalog: catalog}
}

func (a *CatalogProductReader) byID(ctx context.Context, ids []int64) (map[int64]catalogtransport.ProductResponse, error) {
	out := make(map[int64]catalogtransport.ProductResponse, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	products, err := a.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("catalog adapter: get products: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// GetProducts returns full product views for cart lines.
func (a *CatalogProductReader) GetProducts(ctx context.Context, ids []int64) (map[int64]carttransport.Product, error) {
	return a.byID(ctx, ids)
}

// GetProductSnapshots returns the name and current price orders copy onto
// their lines.
func (a *CatalogProductReader) GetProductSnapshots(ctx context.Context, ids []int64) (map[int64]ordersvc.ProductSnapshot, error) {
	products, err := a.byID(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]ordersvc.ProductSnapshot, len(products))
	for id, p := range products {
		out[id] = ordersvc.ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price}
	}
	return out, nil
}

// ProductExists reports whether a product can be reviewed.
func (a *CatalogProductReader) ProductExists(ctx context.Context, id int64) (bool, error) {
	products, err := a.byID(ctx, []int64{id})
	if err != nil {
		return false, err
	}
	_, ok := products[id]
	return ok, nil
}

var (
	_ cartsvc.ProductReader    = (*CatalogProductReader)(nil)
	_ ordersvc.ProductReader   = (*CatalogProductReader)(nil)
	_ reviewsvc.ProductChecker = (*CatalogProductReader)(nil)
)
