package http

import "github.com/gin-gonic/gin"

// Middleware is a gin handler used for cross-cutting request processing.
type Middleware = gin.HandlerFunc

// Module represents a bounded context that registers its own HTTP routes,
// keeping the router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the shared route groups.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// Engine is the root gin engine for modules needing engine-level access.
	Engine *gin.Engine
	// V1 is the public /api/v1 route group.
	V1 *gin.RouterGroup
	// Protected is the authenticated route group under /api/v1.
	Protected *gin.RouterGroup
}
