package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedstore_backend/internal/email"
	"seedstore_backend/internal/events"
	"seedstore_backend/platform/logger"
)

type testNotificationConfig struct{}

func (testNotificationConfig) GetAppBaseURL() string { return "https://seedstore.by/" }

type testSender struct {
	mu      sync.Mutex
	placed  []email.OrderPlacedMessage
	status  []email.OrderStatusMessage
	to      []string
	failing bool
}

func (s *testSender) SendOrderPlacedEmail(_ context.Context, to string, msg email.OrderPlacedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("smtp down")
	}
	s.placed = append(s.placed, msg)
	s.to = append(s.to, to)
	return nil
}

func (s *testSender) SendOrderStatusEmail(_ context.Context, to string, msg email.OrderStatusMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("smtp down")
	}
	s.status = append(s.status, msg)
	s.to = append(s.to, to)
	return nil
}

func TestOrderPlacedSendsEmailThroughBus(t *testing.T) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	sender := &testSender{}
	New(sender, testNotificationConfig{}, log).RegisterHandlers(bus)

	bus.Publish(context.Background(), events.OrderPlaced{
		BaseEvent:   events.NewBaseEvent(),
		OrderID:     11,
		UserID:      7,
		Email:       "ivan@example.com",
		TotalAmount: 350,
		Items: []events.OrderLine{
			{ProductID: 1, ProductName: "Базилик Дольче", Quantity: 1, Price: 150},
			{ProductID: 2, ProductName: "Томат Бычье сердце", Quantity: 1, Price: 200},
		},
	})
	bus.Wait()

	require.Len(t, sender.placed, 1)
	assert.Equal(t, int64(11), sender.placed[0].OrderID)
	assert.Len(t, sender.placed[0].Items, 2)
	assert.Equal(t, []string{"ivan@example.com"}, sender.to)
}

func TestOrderStatusChangedUsesDisplayLabel(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.New("development"))

	err := m.Handle(context.Background(), events.OrderStatusChanged{
		OrderID:       3,
		Email:         "anna@example.com",
		OldStatus:     "pending",
		NewStatus:     "shipped",
		StatusDisplay: "Отправлен",
	})
	require.NoError(t, err)
	require.Len(t, sender.status, 1)
	assert.Equal(t, "Отправлен", sender.status[0].StatusDisplay)
	assert.Equal(t, "https://seedstore.by/orders/3", sender.status[0].OrderURL)
}

func TestMissingEmailIsSkipped(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.New("development"))

	require.NoError(t, m.Handle(context.Background(), events.OrderPlaced{OrderID: 1}))
	assert.Empty(t, sender.placed)
}

func TestSenderFailureIsReturned(t *testing.T) {
	m := New(&testSender{failing: true}, nil, logger.New("development"))
	err := m.Handle(context.Background(), events.OrderStatusChanged{OrderID: 1, Email: "a@example.com"})
	assert.EqualError(t, err, "smtp down")
}

func TestNilSenderFallsBackToNoop(t *testing.T) {
	m := New(nil, nil, logger.New("development"))
	assert.NoError(t, m.Handle(context.Background(), events.OrderPlaced{OrderID: 1, Email: "a@example.com"}))
}
