package email

import "context"

// OrderLine is one product line rendered into an order email.
type OrderLine struct {
	ProductName string
	Quantity    int
	Price       float64
}

// OrderPlacedMessage describes a freshly placed order.
type OrderPlacedMessage struct {
	OrderID     int64
	TotalAmount float64
	Items       []OrderLine
	OrderURL    string
}

// OrderStatusMessage describes an order status transition.
type OrderStatusMessage struct {
	OrderID       int64
	StatusDisplay string
	OrderURL      string
}

type Sender interface {
	SendOrderPlacedEmail(ctx context.Context, toEmail string, msg OrderPlacedMessage) error
	SendOrderStatusEmail(ctx context.Context, toEmail string, msg OrderStatusMessage) error
}

type NoopSender struct{}

func (NoopSender) SendOrderPlacedEmail(context.Context, string, OrderPlacedMessage) error {
	return nil
}

func (NoopSender) SendOrderStatusEmail(context.Context, string, OrderStatusMessage) error {
	return nil
}
