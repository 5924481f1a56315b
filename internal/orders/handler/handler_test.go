package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedstore_backend/internal/events"
	"seedstore_backend/internal/orders/repository"
	"seedstore_backend/internal/orders/service"
	"seedstore_backend/internal/orders/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

// stubRepo serves the calls these tests make; anything else panics on the
// nil embedded interface.
type stubRepo struct {
	repository.Repository
	orders map[int64]repository.Order
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (repository.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return repository.Order{}, apperr.NotFound("order not found")
	}
	return o, nil
}

func (s *stubRepo) Create(_ context.Context, p repository.CreateOrderParams) (repository.Order, error) {
	o := repository.Order{ID: int64(len(s.orders) + 1), UserID: p.UserID, Status: repository.StatusPending, TotalAmount: p.TotalAmount}
	for i, item := range p.Items {
		productID := item.ProductID
		o.Items = append(o.Items, repository.OrderItem{ID: int64(i + 1), OrderID: o.ID, ProductID: &productID, Quantity: item.Quantity, Price: item.Price})
	}
	s.orders[o.ID] = o
	return o, nil
}

type stubProducts struct{}

func (stubProducts) GetProductSnapshots(_ context.Context, ids []int64) (map[int64]service.ProductSnapshot, error) {
	out := map[int64]service.ProductSnapshot{}
	for _, id := range ids {
		if id == 1 {
			out[id] = service.ProductSnapshot{ID: 1, Name: "Томат Бычье сердце", Price: 200}
		}
	}
	return out, nil
}

type stubUsers struct{}

func (stubUsers) GetUserSummary(_ context.Context, id int64) (service.UserSummary, error) {
	return service.UserSummary{ID: id, Email: "buyer@example.com"}, nil
}

func newEngine(t *testing.T, repo *stubRepo, userID int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	t.Cleanup(bus.Wait)

	h := New(service.New(repo, stubProducts{}, stubUsers{}, bus, log), validator.New())
	engine := gin.New()
	g := engine.Group("/orders", func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, userID)
		c.Set(httpkit.ContextEmailKey, "buyer@example.com")
		c.Next()
	})
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	return engine
}

func do(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderUsesCatalogPrice(t *testing.T) {
	engine := newEngine(t, &stubRepo{orders: map[int64]repository.Order{}}, 7)

	rec := do(engine, http.MethodPost, "/orders", `{"items":[{"product_id":1,"quantity":3}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got transport.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 600.0, got.TotalAmount)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "Ожидает обработки", got.StatusDisplay)
}

func TestCreateOrderValidation(t *testing.T) {
	engine := newEngine(t, &stubRepo{orders: map[int64]repository.Order{}}, 7)

	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodPost, "/orders", `{"items":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodPost, "/orders", `{"items":[{"product_id":1,"quantity":0}]}`).Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodPost, "/orders", `{"items":[{"product_id":99,"quantity":1}]}`).Code)
}

func TestGetOrderOfAnotherUserIsForbidden(t *testing.T) {
	repo := &stubRepo{orders: map[int64]repository.Order{5: {ID: 5, UserID: 8, Status: repository.StatusShipped}}}
	engine := newEngine(t, repo, 7)

	assert.Equal(t, http.StatusForbidden, do(engine, http.MethodGet, "/orders/5", "").Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodGet, "/orders/6", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodGet, "/orders/abc", "").Code)
}
