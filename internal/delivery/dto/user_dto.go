package dto

type CreateUserRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required,oneof=STAFF ADMIN INVESTOR PARTNER"`
	Status string `json:"status" validate:"omitempty,oneof=Active Pending Disabled Suspended 'On Leave'"`
}

// UpdateUserRequest changes a user's role and/or status
type UpdateUserRequest struct {
	Role   *string `json:"role" validate:"omitempty,oneof=STAFF ADMIN INVESTOR PARTNER"`
	Status *string `json:"status" validate:"omitempty,oneof=Active Pending Disabled Suspended 'On Leave'"`
}
