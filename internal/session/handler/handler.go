package handler

import (
	"net/http"

	"tenantcore/internal/http/middleware"
	"tenantcore/internal/session/service"
	"tenantcore/internal/session/transport"
	"tenantcore/platform/httpkit"
	"tenantcore/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/sign-in", h.SignIn)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.Me)
}

func (h *Handler) SignIn(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	token, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusOK, transport.SignInResponse{Token: token})
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := h.svc.Profile(c.Request.Context(), userID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusOK, transport.ToProfileResponse(user))
}
