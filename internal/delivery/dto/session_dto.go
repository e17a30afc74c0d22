package dto

import (
	"time"

	"mediaccess/internal/domain/entity"
)

type LoginRequest struct {
	Role   string `json:"role" validate:"required,oneof=STAFF ADMIN INVESTOR PARTNER staff admin investor partner"`
	Method string `json:"method" validate:"required,oneof=face fingerprint finger password"`
}

type LoginResponse struct {
	State       string      `json:"state"`
	Trail       []string    `json:"trail"`
	Role        entity.Role `json:"role"`
	Method      string      `json:"method"`
	AccessToken string      `json:"access_token,omitempty"`
	TokenType   string      `json:"token_type,omitempty"`
	ExpiresAt   *time.Time  `json:"expires_at,omitempty"`
	Message     string      `json:"message,omitempty"`
}

type SessionResponse struct {
	Role         entity.Role             `json:"role"`
	RoleLabel    string                  `json:"role_label"`
	Dashboard    entity.DashboardVariant `json:"dashboard"`
	Navigation   []entity.NavItem        `json:"navigation"`
	Capabilities []entity.Capability     `json:"capabilities"`
}

type RolePermissions struct {
	Role         entity.Role         `json:"role"`
	Label        string              `json:"label"`
	Capabilities []entity.Capability `json:"capabilities"`
}
