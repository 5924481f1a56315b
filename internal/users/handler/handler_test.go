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
	"seedstore_backend/internal/users/repository"
	"seedstore_backend/internal/users/service"
	"seedstore_backend/internal/users/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

// stubRepo holds two users: 7 is a shopper, 8 another shopper.
type stubRepo struct {
	repository.Repository
	users map[int64]repository.User
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (repository.User, error) {
	u, ok := s.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s *stubRepo) GetAddress(context.Context, int64) (*repository.Address, error) {
	return nil, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, p repository.UpdateUserParams) (repository.User, error) {
	u := s.users[id]
	if p.Theme != nil {
		u.Theme = *p.Theme
	}
	s.users[id] = u
	return u, nil
}

type noSuperusers struct{}

func (noSuperusers) GetSuperuserEmails() []string { return nil }

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("development")
	repo := &stubRepo{users: map[int64]repository.User{
		7: {ID: 7, Email: "ivan@example.com", FullName: "Иван", IsActive: true, Theme: "light"},
		8: {ID: 8, Email: "anna@example.com", FullName: "Анна", IsActive: true, Theme: "light"},
	}}
	h := New(service.New(repo, noSuperusers{}, events.NewInMemoryBus(log), log), validator.New())

	engine := gin.New()
	g := engine.Group("/users", func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, int64(7))
		c.Set(httpkit.ContextEmailKey, "ivan@example.com")
		c.Next()
	})
	g.GET("/me", h.Me)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/theme", h.SetTheme)
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

func TestMe(t *testing.T) {
	rec := do(newEngine(), http.MethodGet, "/users/me", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got transport.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ivan@example.com", got.Email)
	assert.NotNil(t, got.Addresses)
}

func TestGetOtherUserIsForbidden(t *testing.T) {
	engine := newEngine()
	assert.Equal(t, http.StatusForbidden, do(engine, http.MethodGet, "/users/8", "").Code)
	assert.Equal(t, http.StatusOK, do(engine, http.MethodGet, "/users/7", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodGet, "/users/x", "").Code)
}

func TestSetTheme(t *testing.T) {
	engine := newEngine()
	assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodPost, "/users/theme", `{"theme":"blue"}`).Code)

	rec := do(engine, http.MethodPost, "/users/theme", `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"theme":"dark"`)
}

func TestUpdateProfileRejectsBadPhone(t *testing.T) {
	rec := do(newEngine(), http.MethodPut, "/users/profile", `{"phone":"12345","postal_code":"220000"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid phone number format")
}
