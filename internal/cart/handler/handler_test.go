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

	"seedstore_backend/internal/cart/repository"
	"seedstore_backend/internal/cart/service"
	"seedstore_backend/internal/cart/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

type stubRepo struct {
	items []repository.CartItem
}

func (s *stubRepo) ListByUser(context.Context, int64) ([]repository.CartItem, error) {
	return s.items, nil
}

func (s *stubRepo) AddOrMerge(_ context.Context, userID, productID int64, quantity int) (repository.CartItem, error) {
	item := repository.CartItem{ID: int64(len(s.items) + 1), UserID: userID, ProductID: productID, Quantity: quantity}
	s.items = append(s.items, item)
	return item, nil
}

func (s *stubRepo) UpdateQuantity(context.Context, int64, int64, int) (repository.CartItem, error) {
	return repository.CartItem{}, apperr.NotFound("cart item not found")
}

func (s *stubRepo) Delete(context.Context, int64, int64) error {
	return apperr.NotFound("cart item not found")
}

func (s *stubRepo) Clear(context.Context, int64) error {
	s.items = nil
	return nil
}

type stubProducts struct{}

func (stubProducts) GetProducts(_ context.Context, ids []int64) (map[int64]transport.Product, error) {
	out := map[int64]transport.Product{}
	for _, id := range ids {
		if id == 1 {
			out[id] = transport.Product{ID: 1, Name: "Базилик Дольче", Price: 150}
		}
	}
	return out, nil
}

func newEngine(authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.New(&stubRepo{}, stubProducts{}, logger.New("development")), validator.New())

	engine := gin.New()
	g := engine.Group("/cart")
	if authenticated {
		g.Use(func(c *gin.Context) {
			c.Set(httpkit.ContextUserIDKey, int64(7))
			c.Set(httpkit.ContextEmailKey, "buyer@example.com")
			c.Next()
		})
	}
	g.GET("", h.GetCart)
	g.POST("", h.AddItem)
	g.PUT("/:id", h.UpdateItem)
	g.DELETE("/item/:id", h.RemoveItem)
	g.DELETE("/clear", h.Clear)
	return engine
}

func do(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCartRequiresIdentity(t *testing.T) {
	rec := do(newEngine(false), http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddItemThenGetCart(t *testing.T) {
	engine := newEngine(true)

	rec := do(engine, http.MethodPost, "/cart", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(engine, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cart transport.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 300.0, cart.Total, 1e-9)
}

func TestAddItemValidation(t *testing.T) {
	engine := newEngine(true)

	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodPost, "/cart", `{"product_id":1,"quantity":0}`).Code)
	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodPost, "/cart", `{"product_id":5}`).Code)
}

func TestRemoveAndClear(t *testing.T) {
	engine := newEngine(true)

	assert.Equal(t, http.StatusNotFound, do(engine, http.MethodDelete, "/cart/item/3", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodDelete, "/cart/item/abc", "").Code)

	rec := do(engine, http.MethodDelete, "/cart/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
}
