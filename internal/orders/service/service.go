package service

import (
	"context"
	"fmt"

	"seedstore_backend/internal/events"
	"seedstore_backend/internal/orders/repository"
	"seedstore_backend/internal/orders/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/metrics"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500

	msgNotEnoughPermissions = "not enough permissions"
)

// Actor is the authenticated caller.
type Actor struct {
	UserID      int64
	Email       string
	IsSuperuser bool
}

// ProductSnapshot is the catalog data an order line captures.
type ProductSnapshot struct {
	ID    int64
	Name  string
	Price float64
}

// ProductReader looks up current catalog prices. Unknown IDs are omitted.
type ProductReader interface {
	GetProductSnapshots(ctx context.Context, ids []int64) (map[int64]ProductSnapshot, error)
}

// UserSummary identifies a comment author or order owner.
type UserSummary struct {
	ID       int64
	Email    string
	FullName string
}

// UserDirectory looks up users by ID.
type UserDirectory interface {
	GetUserSummary(ctx context.Context, userID int64) (UserSummary, error)
}

// Service provides business logic for orders and order comments.
type Service struct {
	repo     repository.Repository
	products ProductReader
	users    UserDirectory
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new orders service.
func New(repo repository.Repository, products ProductReader, users UserDirectory, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, products: products, users: users, eventBus: eventBus, log: log}
}

// List returns every order for superusers and the caller's own orders
// otherwise.
func (s *Service) List(ctx context.Context, actor Actor, req transport.ListRequest) ([]transport.OrderResponse, error) {
	params := listParams(req)
	if !actor.IsSuperuser {
		params.UserID = &actor.UserID
	}
	return s.list(ctx, params)
}

// ListAll returns every order. Used by the admin endpoints.
func (s *Service) ListAll(ctx context.Context, req transport.ListRequest) ([]transport.OrderResponse, error) {
	return s.list(ctx, listParams(req))
}

func (s *Service) list(ctx context.Context, params repository.ListParams) ([]transport.OrderResponse, error) {
	orders, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	out := make([]transport.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Create places an order. Prices come from the catalog, never the client.
func (s *Service) Create(ctx context.Context, actor Actor, req transport.CreateOrderRequest) (transport.OrderResponse, error) {
	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}
	snapshots, err := s.products.GetProductSnapshots(ctx, ids)
	if err != nil {
		return transport.OrderResponse{}, err
	}

	params := repository.CreateOrderParams{UserID: actor.UserID, Items: make([]repository.NewItem, 0, len(req.Items))}
	lines := make([]events.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		snap, ok := snapshots[item.ProductID]
		if !ok {
			return transport.OrderResponse{}, apperr.NotFound(fmt.Sprintf("product %d not found", item.ProductID))
		}
		params.Items = append(params.Items, repository.NewItem{ProductID: snap.ID, Quantity: item.Quantity, Price: snap.Price})
		params.TotalAmount += snap.Price * float64(item.Quantity)
		lines = append(lines, events.OrderLine{ProductID: snap.ID, ProductName: snap.Name, Quantity: item.Quantity, Price: snap.Price})
	}

	order, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.OrderResponse{}, err
	}

	metrics.OrdersPlacedTotal.Inc()
	s.log.Info("order placed", "id", order.ID, "userId", actor.UserID, "total", order.TotalAmount, "items", len(order.Items))

	s.eventBus.Publish(ctx, events.OrderPlaced{
		BaseEvent:   events.NewBaseEvent(),
		OrderID:     order.ID,
		UserID:      actor.UserID,
		Email:       actor.Email,
		TotalAmount: order.TotalAmount,
		Items:       lines,
	})

	return toOrderResponse(order), nil
}

// Get returns an order the caller owns, or any order for superusers.
func (s *Service) Get(ctx context.Context, actor Actor, id int64) (transport.OrderResponse, error) {
	order, err := s.authorizedOrder(ctx, actor, id)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	return toOrderResponse(order), nil
}

// Update applies an owner or superuser update. Only status may change.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, req transport.UpdateOrderRequest) (transport.OrderResponse, error) {
	order, err := s.authorizedOrder(ctx, actor, id)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	if req.Status == nil {
		return toOrderResponse(order), nil
	}
	return s.changeStatus(ctx, order, *req.Status)
}

// UpdateStatus sets an order's status on behalf of an administrator.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req transport.UpdateStatusRequest) (transport.OrderResponse, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	return s.changeStatus(ctx, order, req.Status)
}

func (s *Service) changeStatus(ctx context.Context, order repository.Order, status string) (transport.OrderResponse, error) {
	if _, ok := statusDisplay[status]; !ok {
		return transport.OrderResponse{}, apperr.Validation(fmt.Sprintf("unknown order status %q", status)).WithDetails(knownStatuses())
	}
	if order.Status == status {
		return toOrderResponse(order), nil
	}

	updated, err := s.repo.UpdateStatus(ctx, order.ID, status)
	if err != nil {
		return transport.OrderResponse{}, err
	}
	s.log.Info("order status changed", "id", order.ID, "from", order.Status, "to", status)

	owner, err := s.users.GetUserSummary(ctx, order.UserID)
	if err != nil {
		s.log.Warn("order owner lookup failed; status email skipped", "orderId", order.ID, "error", err)
	} else {
		s.eventBus.Publish(ctx, events.OrderStatusChanged{
			BaseEvent:     events.NewBaseEvent(),
			OrderID:       order.ID,
			UserID:        order.UserID,
			Email:         owner.Email,
			OldStatus:     order.Status,
			NewStatus:     status,
			StatusDisplay: StatusDisplay(status),
		})
	}

	return toOrderResponse(updated), nil
}

// Delete removes an order the caller owns, or any order for superusers.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	if _, err := s.authorizedOrder(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("order deleted", "id", id, "by", actor.UserID)
	return nil
}

// authorizedOrder loads an order and checks the caller may access it:
// 404 when it does not exist, 403 when it belongs to someone else.
func (s *Service) authorizedOrder(ctx context.Context, actor Actor, id int64) (repository.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Order{}, err
	}
	if !actor.IsSuperuser && order.UserID != actor.UserID {
		return repository.Order{}, apperr.Forbidden(msgNotEnoughPermissions)
	}
	return order, nil
}

func listParams(req transport.ListRequest) repository.ListParams {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return repository.ListParams{Offset: max(req.Skip, 0), Limit: limit}
}

func toOrderResponse(o repository.Order) transport.OrderResponse {
	resp := transport.OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		StatusDisplay: StatusDisplay(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		OrderItems:    make([]transport.OrderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		line := transport.OrderItemResponse{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		if item.ProductID != nil && item.ProductName != nil {
			line.Product = &transport.OrderProduct{ID: *item.ProductID, Name: *item.ProductName, ImageURL: item.ProductImageURL}
		}
		resp.OrderItems = append(resp.OrderItems, line)
	}
	return resp
}
