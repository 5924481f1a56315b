// Package cart provides the shopping cart bounded context module.
package cart

import (
	"seedstore_backend/internal/cart/handler"
	"seedstore_backend/internal/cart/repository"
	"seedstore_backend/internal/cart/service"
	apphttp "seedstore_backend/internal/http"
	"seedstore_backend/platform/db"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

// Module is the cart bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the cart module.
func NewModule(q db.Querier, products service.ProductReader, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(q)
	svc := service.New(repo, products, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cart"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts cart routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.Protected.Group("/cart")
	g.GET("", m.handler.GetCart)
	g.POST("", m.handler.AddItem)
	g.PUT("/:id", m.handler.UpdateItem)
	g.DELETE("/item/:id", m.handler.RemoveItem)
	g.DELETE("/clear", m.handler.Clear)
}

var _ apphttp.Module = (*Module)(nil)
