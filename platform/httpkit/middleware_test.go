package httpkit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testJWTConfig struct{ issuer string }

func (c testJWTConfig) GetJWTSecret() string { return testSecret }
func (c testJWTConfig) GetJWTIssuer() string { return c.issuer }

type stubResolver struct {
	principal Principal
	err       error
	seen      string
}

func (r *stubResolver) ResolvePrincipal(_ context.Context, email string) (Principal, error) {
	r.seen = email
	if r.err != nil {
		return Principal{}, r.err
	}
	p := r.principal
	p.Email = email
	return p, nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newAuthEngine(resolver IdentityResolver, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handlers := append([]gin.HandlerFunc{AuthRequired(testJWTConfig{}, resolver, logger.New("development"))}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id := MustGetIdentity(c)
		if id == nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID(), "email": id.Email(), "superuser": id.IsSuperuser()})
	})
	engine.GET("/me", handlers...)
	return engine
}

func doRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequiredResolvesEmailClaim(t *testing.T) {
	resolver := &stubResolver{principal: Principal{UserID: 7, IsActive: true}}
	engine := newAuthEngine(resolver)

	token := signToken(t, jwt.MapClaims{"email": "Buyer@Example.com", "exp": time.Now().Add(time.Hour).Unix()})
	rec := doRequest(engine, token)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "buyer@example.com", resolver.seen)
	assert.JSONEq(t, `{"userId":7,"email":"buyer@example.com","superuser":false}`, rec.Body.String())
}

func TestAuthRequiredRejectsMissingAndBadTokens(t *testing.T) {
	engine := newAuthEngine(&stubResolver{principal: Principal{UserID: 1, IsActive: true}})

	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, "not-a-jwt").Code)

	noEmail := signToken(t, jwt.MapClaims{"sub": "abc"})
	rec := doRequest(engine, noEmail)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no email")

	expired := signToken(t, jwt.MapClaims{"email": "a@b.c", "exp": time.Now().Add(-time.Minute).Unix()})
	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, expired).Code)
}

func TestAuthRequiredBlocksInactiveUsers(t *testing.T) {
	engine := newAuthEngine(&stubResolver{principal: Principal{UserID: 3, IsActive: false}})

	rec := doRequest(engine, signToken(t, jwt.MapClaims{"email": "blocked@example.com"}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "inactive user")
}

func TestAuthRequiredSurfacesResolverFailure(t *testing.T) {
	engine := newAuthEngine(&stubResolver{err: fmt.Errorf("get user: %w", errors.New("db down"))})

	rec := doRequest(engine, signToken(t, jwt.MapClaims{"email": "a@example.com"}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireSuperuser(t *testing.T) {
	regular := newAuthEngine(&stubResolver{principal: Principal{UserID: 3, IsActive: true}}, RequireSuperuser())
	admin := newAuthEngine(&stubResolver{principal: Principal{UserID: 1, IsActive: true, IsSuperuser: true}}, RequireSuperuser())
	token := signToken(t, jwt.MapClaims{"email": "x@example.com"})

	assert.Equal(t, http.StatusForbidden, doRequest(regular, token).Code)
	assert.Equal(t, http.StatusOK, doRequest(admin, token).Code)
}

type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	run := func(limiter KeyedLimiter) []int {
		engine := gin.New()
		engine.GET("/chat", RateLimitByIP(limiter, logger.New("development")), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))
			codes = append(codes, rec.Code)
		}
		return codes
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests},
		run(&countingLimiter{limit: 2, seen: map[string]int{}}))
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusNoContent},
		run(&countingLimiter{err: errors.New("redis down")}), "limiter outage lets requests through")
}

func TestHandleErrorMapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("product not found"), http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", apperr.Forbidden("not enough permissions")), http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		require.True(t, HandleError(c, tc.err))
		assert.Equal(t, tc.want, rec.Code)
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	assert.False(t, HandleError(c, nil))
}

func TestRequestIDEchoesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.Request.Context().Value(logger.RequestIDKey).(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestMustGetIdentityWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	assert.Nil(t, MustGetIdentity(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, ok := LookupIdentity(c)
	assert.False(t, ok)
}
