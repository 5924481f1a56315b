// Package orders provides the orders bounded context module, including
// order comments.
package orders

import (
	"seedstore_backend/internal/events"
	apphttp "seedstore_backend/internal/http"
	"seedstore_backend/internal/orders/handler"
	"seedstore_backend/internal/orders/repository"
	"seedstore_backend/internal/orders/service"
	"seedstore_backend/platform/db"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

// Module is the orders bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the orders module.
func NewModule(pool db.DB, products service.ProductReader, users service.UserDirectory, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, products, users, eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "orders"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts order and order-comment routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	orders := ctx.Protected.Group("/orders")
	orders.GET("", m.handler.List)
	orders.POST("", m.handler.Create)
	orders.GET("/:id", m.handler.Get)
	orders.PUT("/:id", m.handler.Update)
	orders.DELETE("/:id", m.handler.Delete)

	comments := ctx.Protected.Group("/order-comments")
	comments.GET("/order/:orderId", m.handler.ListComments)
	comments.POST("", m.handler.CreateComment)

	ctx.Admin.GET("/orders", m.handler.AdminList)
	ctx.Admin.PUT("/orders/:id", m.handler.AdminUpdateStatus)
}

var _ apphttp.Module = (*Module)(nil)
