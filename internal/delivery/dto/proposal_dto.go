package dto

type VoteRequest struct {
	Choice string `json:"choice" validate:"required,oneof=yes no"`
}
