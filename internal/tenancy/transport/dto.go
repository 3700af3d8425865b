package transport

type SignUpRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
	OrganizationName string `json:"organizationName" validate:"required"`
}

type SignUpResponse struct {
	UserID         int64 `json:"userId"`
	OrganizationID int64 `json:"organizationId"`
}
