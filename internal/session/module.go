// Package session is the session bounded context: sign-in, token issuance,
// and the authenticated profile endpoint.
package session

import (
	"tenantcore/internal/credentials"
	apphttp "tenantcore/internal/http"
	"tenantcore/internal/session/handler"
	"tenantcore/internal/session/service"
	"tenantcore/internal/store"
	"tenantcore/platform/logger"
	"tenantcore/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(st store.Store, tokens *credentials.TokenIssuer, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(st, tokens, log)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "session"
}

// RegisterRoutes mounts sign-in on the public group and the profile endpoint
// on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1.Group("/auth"))
	m.handler.RegisterProtectedRoutes(ctx.Protected)
}

var _ apphttp.Module = (*Module)(nil)
