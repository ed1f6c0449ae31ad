package dto

// -------- Core auth --------

// RegisterRequest fields are checked in declaration order: email first.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	return validateStruct(r)
}

// LoginRequest is not validated: any missing field is just a failed login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// -------- Admin --------

// SetRoleRequest is validated by the service after the admin check, so an
// anonymous caller never learns which fields are expected.
type SetRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// -------- Profile --------

type UpdateDisplayNameRequest struct {
	DisplayName string `json:"displayName"`
}

type UpdateProfilePictureRequest struct {
	Image string `json:"image"`
}
