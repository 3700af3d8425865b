// Package http provides HTTP server infrastructure including module
// registration. Transport concerns live here; business rules do not.
package http

import (
	"context"

	"tenantcore/platform/config"
	"tenantcore/platform/logger"
)

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies. It is populated
// by main.go (the composition root) and handed to the router.
type App struct {
	// Config holds the HTTP server settings.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (DB ping).
	Health HealthChecker
	// AuthMiddleware guards the protected route group.
	AuthMiddleware Middleware
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
