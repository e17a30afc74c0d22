package entity

// UserStatus represents the account status of a dashboard user
type UserStatus string

const (
	UserStatusActive    UserStatus = "Active"
	UserStatusPending   UserStatus = "Pending"
	UserStatusDisabled  UserStatus = "Disabled"
	UserStatusSuspended UserStatus = "Suspended"
	UserStatusOnLeave   UserStatus = "On Leave"
)

// Valid reports whether s is one of the enumerated statuses
func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusPending, UserStatusDisabled, UserStatusSuspended, UserStatusOnLeave:
		return true
	}
	return false
}

// User represents a dashboard account managed by administrators
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Status     UserStatus `json:"status"`
	LastActive string     `json:"last_active"`
}
