package http

import (
	"context"

	"seedstore_backend/platform/config"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/logger"
)

// RouterConfig is the part of the configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker backs GET /api/health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is everything cmd/api hands to the router once wiring is done.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health may be nil, in which case the health endpoint always answers ok.
	Health   HealthChecker
	Identity httpkit.IdentityResolver
	// ChatLimiter may be nil to disable chat throttling.
	ChatLimiter httpkit.KeyedLimiter
	Modules     []Module
}
