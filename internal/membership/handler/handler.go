package handler

import (
	"net/http"
	"strconv"

	"tenantcore/internal/membership/service"
	"tenantcore/internal/membership/transport"
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

func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/reset-password", h.ResetPassword)
}

func (h *Handler) RegisterOrganizationRoutes(rg *gin.RouterGroup) {
	rg.POST("/:orgId/members", h.Invite)
	rg.DELETE("/:orgId/members/:userId", h.Remove)
	rg.PUT("/:orgId/members/:userId/role", h.UpdateRole)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/organizations/:orgId/members", h.List)
}

func (h *Handler) Invite(c *gin.Context) {
	orgID, ok := pathID(c, "orgId", "invalid organization id")
	if !ok {
		return
	}

	var req transport.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	member, err := h.svc.Invite(c.Request.Context(), orgID, req.Email, req.RoleID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToMemberResponse(member))
}

func (h *Handler) Remove(c *gin.Context) {
	orgID, ok := pathID(c, "orgId", "invalid organization id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId", "invalid user id")
	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), orgID, userID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "member removed"})
}

func (h *Handler) UpdateRole(c *gin.Context) {
	orgID, ok := pathID(c, "orgId", "invalid organization id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId", "invalid user id")
	if !ok {
		return
	}

	var req transport.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	if err := h.svc.UpdateRole(c.Request.Context(), orgID, userID, req.RoleID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "member role updated"})
}

func (h *Handler) List(c *gin.Context) {
	orgID, ok := pathID(c, "orgId", "invalid organization id")
	if !ok {
		return
	}

	members, err := h.svc.List(c.Request.Context(), orgID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusOK, transport.ToMemberListResponse(members))
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req transport.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"message": "password updated"})
}

func pathID(c *gin.Context, param, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		httpkit.Error(c, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}
