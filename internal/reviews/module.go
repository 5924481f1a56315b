// Package reviews provides the product reviews bounded context module.
package reviews

import (
	"seedstore_backend/internal/events"
	apphttp "seedstore_backend/internal/http"
	"seedstore_backend/internal/reviews/handler"
	"seedstore_backend/internal/reviews/repository"
	"seedstore_backend/internal/reviews/service"
	"seedstore_backend/platform/db"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

// Module is the reviews bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the reviews module. Rating recalculation
// is driven by ReviewChanged events, so the catalog module must be
// subscribed on eventBus.
func NewModule(q db.Querier, products service.ProductChecker, authors service.AuthorDirectory, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(q), products, authors, eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reviews"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts review routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/reviews/product/:productId", m.handler.ListByProduct)

	g := ctx.Protected.Group("/reviews")
	g.GET("", m.handler.List)
	g.POST("", m.handler.Create)
	g.GET("/:id", m.handler.Get)
	g.PUT("/:id", m.handler.Update)
	g.DELETE("/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
