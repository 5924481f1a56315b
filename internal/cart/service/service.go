package service

import (
	"context"

	"seedstore_backend/internal/cart/repository"
	"seedstore_backend/internal/cart/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"
)

// ProductReader looks up catalog products for cart lines. Unknown IDs are
// omitted from the result.
type ProductReader interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]transport.Product, error)
}

// Service provides business logic for the shopping cart.
type Service struct {
	repo     repository.Repository
	products ProductReader
	log      *logger.Logger
}

// New creates a new cart service.
func New(repo repository.Repository, products ProductReader, log *logger.Logger) *Service {
	return &Service{repo: repo, products: products, log: log}
}

// GetCart returns the user's items with their products and the cart total.
func (s *Service) GetCart(ctx context.Context, userID int64) (transport.CartResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return transport.CartResponse{}, err
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.GetProducts(ctx, ids)
	if err != nil {
		return transport.CartResponse{}, err
	}

	resp := transport.CartResponse{Items: make([]transport.CartItemResponse, 0, len(items))}
	for _, item := range items {
		line := toCartItemResponse(item, nil)
		if product, ok := products[item.ProductID]; ok {
			line.Product = &product
			resp.Total += product.Price * float64(item.Quantity)
		}
		resp.Items = append(resp.Items, line)
	}
	return resp, nil
}

// AddItem adds a product to the cart, merging with an existing line.
func (s *Service) AddItem(ctx context.Context, userID int64, req transport.AddItemRequest) (transport.CartItemResponse, error) {
	product, err := s.product(ctx, req.ProductID)
	if err != nil {
		return transport.CartItemResponse{}, err
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := s.repo.AddOrMerge(ctx, userID, req.ProductID, quantity)
	if err != nil {
		return transport.CartItemResponse{}, err
	}

	s.log.Info("cart item added", "userId", userID, "productId", req.ProductID, "quantity", item.Quantity)
	return toCartItemResponse(item, &product), nil
}

// UpdateItem sets the quantity of one of the user's items.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID int64, req transport.UpdateItemRequest) (transport.CartItemResponse, error) {
	item, err := s.repo.UpdateQuantity(ctx, userID, itemID, req.Quantity)
	if err != nil {
		return transport.CartItemResponse{}, err
	}

	products, err := s.products.GetProducts(ctx, []int64{item.ProductID})
	if err != nil {
		return transport.CartItemResponse{}, err
	}
	var product *transport.Product
	if p, ok := products[item.ProductID]; ok {
		product = &p
	}
	return toCartItemResponse(item, product), nil
}

// RemoveItem deletes one of the user's items.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return s.repo.Delete(ctx, userID, itemID)
}

// Clear empties the user's cart.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return err
	}
	s.log.Info("cart cleared", "userId", userID)
	return nil
}

func (s *Service) product(ctx context.Context, productID int64) (transport.Product, error) {
	products, err := s.products.GetProducts(ctx, []int64{productID})
	if err != nil {
		return transport.Product{}, err
	}
	product, ok := products[productID]
	if !ok {
		return transport.Product{}, apperr.NotFound("product not found")
	}
	return product, nil
}

func toCartItemResponse(item repository.CartItem, product *transport.Product) transport.CartItemResponse {
	return transport.CartItemResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		Product:   product,
	}
}
