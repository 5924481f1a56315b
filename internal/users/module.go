// Package users provides the users bounded context module: identity
// resolution for authenticated requests, self-service profile and
// administration.
package users

import (
	"seedstore_backend/internal/events"
	apphttp "seedstore_backend/internal/http"
	"seedstore_backend/internal/users/handler"
	"seedstore_backend/internal/users/repository"
	"seedstore_backend/internal/users/service"
	"seedstore_backend/platform/config"
	"seedstore_backend/platform/db"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

// Module is the users bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

// NewModule creates and initializes the users module.
func NewModule(pool db.DB, cfg config.SuperuserConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "users"
}

// Service returns the service layer. It also serves as the identity resolver
// for the auth middleware.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes read access for other modules' adapters.
func (m *Module) Repository() repository.UserReader {
	return m.repo
}

// RegisterRoutes mounts user routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.Protected.Group("/users")
	g.GET("/me", m.handler.Me)
	g.PUT("/me", m.handler.UpdateMe)
	g.PUT("/profile", m.handler.UpdateProfile)
	g.POST("/theme", m.handler.SetTheme)
	g.GET("/:id", m.handler.Get)

	admin := ctx.Admin.Group("/users")
	admin.GET("", m.handler.List)
	admin.POST("", m.handler.Create)
	admin.PUT("/:id/block", m.handler.SetActive)
}

var _ apphttp.Module = (*Module)(nil)
