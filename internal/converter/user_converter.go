package converter

import (
	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/store"
)

// NeverActive is the last-active label of a user who has not signed in yet
const NeverActive = "Never"

// CreateUserRequestToEntity builds a new user. Status defaults to Active.
func CreateUserRequestToEntity(req *dto.CreateUserRequest) entity.User {
	status := entity.UserStatusActive
	if req.Status != "" {
		status = entity.UserStatus(req.Status)
	}
	return entity.User{
		Name:       req.Name,
		Email:      req.Email,
		Role:       entity.Role(req.Role),
		Status:     status,
		LastActive: NeverActive,
	}
}

func UpdateUserRequestToChanges(req *dto.UpdateUserRequest) store.UserChanges {
	var changes store.UserChanges
	if req.Role != nil {
		role := entity.Role(*req.Role)
		changes.Role = &role
	}
	if req.Status != nil {
		status := entity.UserStatus(*req.Status)
		changes.Status = &status
	}
	return changes
}

// RolePermissionsTable lists every role with the capabilities it holds
func RolePermissionsTable() []dto.RolePermissions {
	roles := entity.AllRoles()
	table := make([]dto.RolePermissions, 0, len(roles))
	for _, r := range roles {
		table = append(table, dto.RolePermissions{
			Role:         r,
			Label:        r.Label(),
			Capabilities: entity.CapabilitiesFor(r),
		})
	}
	return table
}
