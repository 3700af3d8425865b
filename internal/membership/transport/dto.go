package transport

import "tenantcore/internal/store"

type InviteMemberRequest struct {
	Email  string `json:"email" validate:"required,email"`
	RoleID int64  `json:"roleId" validate:"required"`
}

type UpdateMemberRoleRequest struct {
	RoleID int64 `json:"roleId" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type MemberResponse struct {
	ID             int64  `json:"id"`
	OrganizationID int64  `json:"organizationId"`
	UserID         int64  `json:"userId"`
	RoleID         int64  `json:"roleId"`
	Status         int    `json:"status"`
	CreatedAt      int64  `json:"createdAt"`
	UpdatedAt      int64  `json:"updatedAt"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
}

func ToMemberResponse(m store.Member) MemberResponse {
	return MemberResponse{
		ID:             m.ID,
		OrganizationID: m.OrgID,
		UserID:         m.UserID,
		RoleID:         m.RoleID,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToMemberListResponse(details []store.MemberDetail) []MemberResponse {
	out := make([]MemberResponse, 0, len(details))
	for _, d := range details {
		r := ToMemberResponse(d.Member)
		r.Email = d.Email
		r.Role = d.RoleName
		out = append(out, r)
	}
	return out
}
