// Package notification sends customer emails in response to order events.
// Domain modules publish events and never talk to the mail provider.
package notification

import (
	"context"
	"fmt"
	"strings"

	"seedstore_backend/internal/email"
	"seedstore_backend/internal/events"
	"seedstore_backend/platform/config"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/metrics"
)

const (
	templateOrderPlaced = "order_placed"
	templateOrderStatus = "order_status"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// New creates a new notification module.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{sender: sender, cfg: cfg, log: log}
}

// orderURL links to the storefront order page, or is empty without a base URL.
func (m *Module) orderURL(orderID int64) string {
	if m.cfg == nil {
		return ""
	}
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/orders/%d", base, orderID)
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.UserProvisioned{}.EventName(), m)
	bus.Subscribe(events.OrderPlaced{}.EventName(), m)
	bus.Subscribe(events.OrderStatusChanged{}.EventName(), m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.UserProvisioned:
		m.log.Info("user provisioned", "userId", e.UserID, "email", e.Email, "superuser", e.IsSuperuser)
		return nil
	case events.OrderPlaced:
		return m.handleOrderPlaced(ctx, e)
	case events.OrderStatusChanged:
		return m.handleOrderStatusChanged(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleOrderPlaced(ctx context.Context, e events.OrderPlaced) error {
	if e.Email == "" {
		m.log.Warn("order placed without customer email", "orderId", e.OrderID)
		return nil
	}

	lines := make([]email.OrderLine, 0, len(e.Items))
	for _, item := range e.Items {
		lines = append(lines, email.OrderLine{ProductName: item.ProductName, Quantity: item.Quantity, Price: item.Price})
	}

	err := m.sender.SendOrderPlacedEmail(ctx, e.Email, email.OrderPlacedMessage{
		OrderID:     e.OrderID,
		TotalAmount: e.TotalAmount,
		Items:       lines,
		OrderURL:    m.orderURL(e.OrderID),
	})
	return m.record(templateOrderPlaced, e.OrderID, e.Email, err)
}

func (m *Module) handleOrderStatusChanged(ctx context.Context, e events.OrderStatusChanged) error {
	if e.Email == "" {
		m.log.Warn("order status changed without customer email", "orderId", e.OrderID)
		return nil
	}

	err := m.sender.SendOrderStatusEmail(ctx, e.Email, email.OrderStatusMessage{
		OrderID:       e.OrderID,
		StatusDisplay: e.StatusDisplay,
		OrderURL:      m.orderURL(e.OrderID),
	})
	return m.record(templateOrderStatus, e.OrderID, e.Email, err)
}

func (m *Module) record(template string, orderID int64, to string, err error) error {
	m.log.EmailDelivery(template, orderID, to, err)
	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues(template, "error").Inc()
		return err
	}
	metrics.EmailsSentTotal.WithLabelValues(template, "sent").Inc()
	return nil
}
