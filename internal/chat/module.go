// Package chat provides the chat search bounded context: a rule-based
// natural-language product search and a keyword search agent.
package chat

import (
	"seedstore_backend/internal/chat/handler"
	"seedstore_backend/internal/chat/repository"
	"seedstore_backend/internal/chat/service"
	apphttp "seedstore_backend/internal/http"
	"seedstore_backend/platform/db"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/validator"
)

// Module is the chat bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the chat module with the embedded vocabulary.
func NewModule(q db.Querier, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(q)
	svc := service.New(repo, service.NewExtractor(service.DefaultVocabulary()), log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "chat"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public, rate-limited chat routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/chat/search", ctx.ChatRateLimit, m.handler.Search)

	agent := ctx.V1.Group("/ai-agent", ctx.ChatRateLimit)
	agent.POST("/search", m.handler.AgentSearch)
	agent.POST("/recommend", m.handler.AgentRecommend)
}

var _ apphttp.Module = (*Module)(nil)
