// Package tenancy is the tenant lifecycle bounded context: it owns the
// signup flow that brings a user, organization, owner role, and owner
// membership into existence together.
package tenancy

import (
	"tenantcore/internal/events"
	apphttp "tenantcore/internal/http"
	"tenantcore/internal/store"
	"tenantcore/internal/tenancy/handler"
	"tenantcore/internal/tenancy/service"
	"tenantcore/platform/logger"
	"tenantcore/platform/validator"
)

// Module is the tenancy bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the tenancy module's dependencies.
func NewModule(st store.Store, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(st, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

func (m *Module) Name() string {
	return "tenancy"
}

// Service exposes the tenancy service to other composition-root consumers.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the signup route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/auth"))
}

var _ apphttp.Module = (*Module)(nil)
