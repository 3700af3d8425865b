package transport

import "tenantcore/internal/store"

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

// ProfileResponse is the authenticated user's own account. The password hash
// never crosses the transport boundary.
type ProfileResponse struct {
	ID        int64          `json:"id"`
	Email     string         `json:"email"`
	Status    int            `json:"status"`
	Profile   map[string]any `json:"profile"`
	CreatedAt int64          `json:"createdAt"`
	UpdatedAt int64          `json:"updatedAt"`
}

func ToProfileResponse(u store.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Status:    u.Status,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
