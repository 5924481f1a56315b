// Package http defines how bounded contexts plug into the API server.
package http

import "github.com/gin-gonic/gin"

// Module is a bounded context that serves HTTP routes.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the route groups a module mounts on. Every group
// lives under the API prefix.
type RouterContext struct {
	// V1 is open to anonymous callers.
	V1 *gin.RouterGroup
	// Protected requires a valid bearer token of an active user.
	Protected *gin.RouterGroup
	// Admin is Protected plus the superuser check, mounted at /admin.
	Admin *gin.RouterGroup
	// SuperuserMiddleware guards single admin routes that sit outside /admin.
	// It must run after authentication.
	SuperuserMiddleware gin.HandlerFunc
	// ChatRateLimit throttles chat search per client IP.
	ChatRateLimit gin.HandlerFunc
}
