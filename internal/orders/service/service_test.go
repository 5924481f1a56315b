package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedstore_backend/internal/events"
	"seedstore_backend/internal/orders/repository"
	"seedstore_backend/internal/orders/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"
)

type fakeRepo struct {
	orders   map[int64]repository.Order
	comments []repository.Comment
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: map[int64]repository.Order{}}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (repository.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return repository.Order{}, apperr.NotFound("order not found")
	}
	return o, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListParams) ([]repository.Order, error) {
	var out []repository.Order
	for id := int64(1); id <= f.nextID; id++ {
		o, ok := f.orders[id]
		if !ok {
			continue
		}
		if params.UserID != nil && o.UserID != *params.UserID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateOrderParams) (repository.Order, error) {
	f.nextID++
	o := repository.Order{ID: f.nextID, UserID: params.UserID, Status: repository.StatusPending, TotalAmount: params.TotalAmount, CreatedAt: time.Now()}
	for i, item := range params.Items {
		productID := item.ProductID
		o.Items = append(o.Items, repository.OrderItem{ID: int64(i + 1), OrderID: o.ID, ProductID: &productID, Quantity: item.Quantity, Price: item.Price})
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status string) (repository.Order, error) {
	o := f.orders[id]
	o.Status = status
	f.orders[id] = o
	return o, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeRepo) ListComments(_ context.Context, orderID int64) ([]repository.Comment, error) {
	var out []repository.Comment
	for _, c := range f.comments {
		if c.OrderID == orderID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateComment(_ context.Context, orderID, userID int64, comment string) (repository.Comment, error) {
	c := repository.Comment{ID: int64(len(f.comments) + 1), OrderID: orderID, UserID: userID, Comment: comment}
	f.comments = append(f.comments, c)
	return c, nil
}

type fakeProducts map[int64]ProductSnapshot

func (f fakeProducts) GetProductSnapshots(_ context.Context, ids []int64) (map[int64]ProductSnapshot, error) {
	out := map[int64]ProductSnapshot{}
	for _, id := range ids {
		if p, ok := f[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeUsers map[int64]UserSummary

func (f fakeUsers) GetUserSummary(_ context.Context, id int64) (UserSummary, error) {
	u, ok := f[id]
	if !ok {
		return UserSummary{}, apperr.NotFound("user not found")
	}
	return u, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

var (
	buyer = Actor{UserID: 7, Email: "buyer@example.com"}
	other = Actor{UserID: 8, Email: "other@example.com"}
	admin = Actor{UserID: 1, Email: "admin@example.com", IsSuperuser: true}
)

func newOrdersService() (*Service, *fakeRepo, *recordingBus) {
	repo := newFakeRepo()
	bus := &recordingBus{}
	products := fakeProducts{
		1: {ID: 1, Name: "Базилик Дольче", Price: 150},
		2: {ID: 2, Name: "Томат Бычье сердце", Price: 200},
	}
	users := fakeUsers{
		1: {ID: 1, Email: admin.Email, FullName: "Администратор"},
		7: {ID: 7, Email: buyer.Email, FullName: "Иван"},
	}
	return New(repo, products, users, bus, logger.New("development")), repo, bus
}

func placeOrder(t *testing.T, svc *Service) transport.OrderResponse {
	t.Helper()
	order, err := svc.Create(context.Background(), buyer, transport.CreateOrderRequest{Items: []transport.OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}})
	require.NoError(t, err)
	return order
}

func TestCreateSnapshotsPricesAndPublishes(t *testing.T) {
	svc, _, bus := newOrdersService()

	order := placeOrder(t, svc)

	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "Ожидает обработки", order.StatusDisplay)
	assert.InDelta(t, 500.0, order.TotalAmount, 1e-9)
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, 150.0, order.OrderItems[0].Price)

	require.Len(t, bus.events, 1)
	placed, ok := bus.events[0].(events.OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, order.ID, placed.OrderID)
	assert.Equal(t, buyer.Email, placed.Email)
	assert.Len(t, placed.Items, 2)
}

func TestCreateUnknownProduct(t *testing.T) {
	svc, repo, bus := newOrdersService()

	_, err := svc.Create(context.Background(), buyer, transport.CreateOrderRequest{Items: []transport.OrderItemRequest{{ProductID: 42, Quantity: 1}}})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Empty(t, repo.orders)
	assert.Empty(t, bus.events)
}

func TestListScopesNonSuperusers(t *testing.T) {
	svc, _, _ := newOrdersService()
	ctx := context.Background()
	placeOrder(t, svc)

	mine, err := svc.List(ctx, buyer, transport.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.List(ctx, other, transport.ListRequest{})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := svc.List(ctx, admin, transport.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetUpdateDeleteOwnership(t *testing.T) {
	svc, _, _ := newOrdersService()
	ctx := context.Background()
	order := placeOrder(t, svc)

	_, err := svc.Get(ctx, other, order.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = svc.Get(ctx, buyer, 999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	cancelled := "cancelled"
	_, err = svc.Update(ctx, other, order.ID, transport.UpdateOrderRequest{Status: &cancelled})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	assert.True(t, apperr.Is(svc.Delete(ctx, other, order.ID), apperr.KindForbidden))

	got, err := svc.Get(ctx, admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, buyer, order.ID))
}

func TestUpdateStatusPublishesChange(t *testing.T) {
	svc, _, bus := newOrdersService()
	ctx := context.Background()
	order := placeOrder(t, svc)

	updated, err := svc.UpdateStatus(ctx, order.ID, transport.UpdateStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, "Отправлен", updated.StatusDisplay)

	require.Len(t, bus.events, 2)
	changed, ok := bus.events[1].(events.OrderStatusChanged)
	require.True(t, ok)
	assert.Equal(t, "pending", changed.OldStatus)
	assert.Equal(t, "shipped", changed.NewStatus)
	assert.Equal(t, buyer.Email, changed.Email)

	_, err = svc.UpdateStatus(ctx, order.ID, transport.UpdateStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Len(t, bus.events, 2, "unchanged status publishes nothing")

	_, err = svc.UpdateStatus(ctx, order.ID, transport.UpdateStatusRequest{Status: "lost"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestStatusDisplayFallsBackToRawStatus(t *testing.T) {
	assert.Equal(t, "Доставлен", StatusDisplay("delivered"))
	assert.Equal(t, "Отменен", StatusDisplay("cancelled"))
	assert.Equal(t, "archived", StatusDisplay("archived"))
}

func TestCommentsAreSanitizedAndEnriched(t *testing.T) {
	svc, _, _ := newOrdersService()
	ctx := context.Background()
	order := placeOrder(t, svc)

	created, err := svc.CreateComment(ctx, buyer, transport.CreateCommentRequest{OrderID: order.ID, Comment: "<b>Когда</b>   доставка?"})
	require.NoError(t, err)
	assert.Equal(t, "Когда доставка?", created.Comment)

	_, err = svc.CreateComment(ctx, admin, transport.CreateCommentRequest{OrderID: order.ID, Comment: "Завтра"})
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, buyer, order.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.NotNil(t, comments[0].UserFullName)
	assert.Equal(t, "Иван", *comments[0].UserFullName)
	require.NotNil(t, comments[1].UserEmail)
	assert.Equal(t, admin.Email, *comments[1].UserEmail)
}

func TestCommentsAccessControl(t *testing.T) {
	svc, _, _ := newOrdersService()
	ctx := context.Background()
	order := placeOrder(t, svc)

	_, err := svc.ListComments(ctx, other, order.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = svc.CreateComment(ctx, buyer, transport.CreateCommentRequest{OrderID: 999, Comment: "?"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.CreateComment(ctx, buyer, transport.CreateCommentRequest{OrderID: order.ID, Comment: "<i></i>"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
