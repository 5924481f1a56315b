// Package catalog serves categories, manufacturers and products, and keeps
// product ratings in step with reviews.
package catalog

import (
	"context"

	"seedstore_backend/internal/adapters/storage"
	"seedstore_backend/internal/catalog/handler"
	"seedstore_backend/internal/catalog/repository"
	"seedstore_backend/internal/catalog/service"
	"seedstore_backend/internal/events"
	apphttp "seedstore_backend/internal/http"
	"seedstore_backend/platform/db"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the catalog over q. images is nil when MinIO is not
// configured; image endpoints then answer 400.
func NewModule(q db.Querier, images storage.ImageStore, bucket string, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repository.New(q), images, bucket, log)
	return &Module{handler: handler.New(svc, val), service: svc}
}

func (m *Module) Name() string { return "catalog" }

// Service backs the product adapters used by cart, orders and reviews, and
// the seed command.
func (m *Module) Service() *service.Service { return m.service }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public read-only endpoints
	ctx.V1.GET("/categories", m.handler.ListCategories)
	ctx.V1.GET("/categories/:id", m.handler.GetCategory)
	ctx.V1.GET("/manufacturers", m.handler.ListManufacturers)
	ctx.V1.GET("/manufacturers/:id", m.handler.GetManufacturer)
	ctx.V1.GET("/products", m.handler.ListProducts)
	ctx.V1.GET("/products/:id", m.handler.GetProduct)

	// Superuser writes share the public paths
	su := ctx.SuperuserMiddleware
	ctx.Protected.POST("/categories", su, m.handler.CreateCategory)
	ctx.Protected.PUT("/categories/:id", su, m.handler.UpdateCategory)
	ctx.Protected.DELETE("/categories/:id", su, m.handler.DeleteCategory)

	ctx.Protected.POST("/manufacturers", su, m.handler.CreateManufacturer)
	ctx.Protected.PUT("/manufacturers/:id", su, m.handler.UpdateManufacturer)
	ctx.Protected.DELETE("/manufacturers/:id", su, m.handler.DeleteManufacturer)

	ctx.Protected.POST("/products", su, m.handler.CreateProduct)
	ctx.Protected.PUT("/products/:id", su, m.handler.UpdateProduct)
	ctx.Protected.DELETE("/products/:id", su, m.handler.DeleteProduct)

	ctx.Admin.POST("/products/:id/image/presign", m.handler.PresignProductImage)
	ctx.Admin.POST("/products/:id/image", m.handler.AttachProductImage)
}

// RegisterHandlers subscribes to review changes to keep ratings current.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ReviewChanged{}.EventName(), m)
}

func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.ReviewChanged:
		return m.service.RecalculateAverageRating(ctx, e.ProductID)
	default:
		return nil
	}
}

var _ apphttp.Module = (*Module)(nil)
