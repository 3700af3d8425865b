// Package membership is the membership bounded context: organization
// membership mutations, listings, and the password reset flow.
package membership

import (
	"tenantcore/internal/events"
	apphttp "tenantcore/internal/http"
	"tenantcore/internal/membership/handler"
	"tenantcore/internal/membership/service"
	"tenantcore/internal/store"
	"tenantcore/platform/logger"
	"tenantcore/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(st store.Store, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(st, bus, log)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "membership"
}

// RegisterRoutes mounts the membership mutations and password reset on the
// public group and the member listing on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAuthRoutes(ctx.V1.Group("/auth"))
	m.handler.RegisterOrganizationRoutes(ctx.V1.Group("/organizations"))
	m.handler.RegisterProtectedRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
