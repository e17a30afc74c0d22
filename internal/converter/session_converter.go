package converter

import (
	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/login"
)

func LoginResultToResponse(res login.Result) *dto.LoginResponse {
	trail := make([]string, 0, len(res.Trail))
	for _, st := range res.Trail {
		trail = append(trail, string(st))
	}

	resp := &dto.LoginResponse{
		State:   string(res.State),
		Trail:   trail,
		Role:    res.Role,
		Method:  string(res.Method),
		Message: res.Message,
	}
	if res.Token != "" {
		expiresAt := res.ExpiresAt
		resp.AccessToken = res.Token
		resp.TokenType = "Bearer"
		resp.ExpiresAt = &expiresAt
	}
	return resp
}

func RoleToSession(role entity.Role) *dto.SessionResponse {
	return &dto.SessionResponse{
		Role:         role,
		RoleLabel:    role.Label(),
		Dashboard:    entity.DashboardFor(role),
		Navigation:   entity.NavigationFor(role),
		Capabilities: entity.CapabilitiesFor(role),
	}
}
