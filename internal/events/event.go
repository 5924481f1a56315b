// Package events holds the SeedStore domain events. The bus itself lives in
// platform/events; its types are aliased here so modules import one package.
package events

import (
	"seedstore_backend/platform/events"
	"seedstore_backend/platform/logger"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates the process-local bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Users Domain Events
// =============================================================================

// UserProvisioned is published when a verified token email is seen for the
// first time and a local user is created for it.
type UserProvisioned struct {
	BaseEvent
	UserID      int64  `json:"userId"`
	Email       string `json:"email"`
	IsSuperuser bool   `json:"isSuperuser"`
}

func (e UserProvisioned) EventName() string { return "users.user.provisioned" }

// =============================================================================
// Orders Domain Events
// =============================================================================

// OrderLine is one line of a placed order as seen by event consumers.
type OrderLine struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderPlaced is published after an order and its items are committed.
type OrderPlaced struct {
	BaseEvent
	OrderID     int64       `json:"orderId"`
	UserID      int64       `json:"userId"`
	Email       string      `json:"email"`
	TotalAmount float64     `json:"totalAmount"`
	Items       []OrderLine `json:"items"`
}

func (e OrderPlaced) EventName() string { return "orders.order.placed" }

// OrderStatusChanged is published when an order moves to a new status.
type OrderStatusChanged struct {
	BaseEvent
	OrderID       int64  `json:"orderId"`
	UserID        int64  `json:"userId"`
	Email         string `json:"email"`
	OldStatus     string `json:"oldStatus"`
	NewStatus     string `json:"newStatus"`
	StatusDisplay string `json:"statusDisplay"`
}

func (e OrderStatusChanged) EventName() string { return "orders.order.status_changed" }

// =============================================================================
// Reviews Domain Events
// =============================================================================

// ReviewChanged is published when a review is created, updated or deleted so
// the product rating can be recomputed.
type ReviewChanged struct {
	BaseEvent
	ReviewID  int64  `json:"reviewId"`
	ProductID int64  `json:"productId"`
	Action    string `json:"action"` // "created", "updated", "deleted"
}

func (e ReviewChanged) EventName() string { return "reviews.review.changed" }
