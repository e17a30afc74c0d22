package store

import (
	"fmt"
	"slices"

	"mediaccess/internal/domain/entity"
)

// UserChanges holds a partial update. Nil fields are left unchanged.
type UserChanges struct {
	Name       *string
	Email      *string
	Role       *entity.Role
	Status     *entity.UserStatus
	LastActive *string
}

func (c UserChanges) validate() error {
	if c.Role != nil && !c.Role.Valid() {
		return fmt.Errorf("%w: user role %q", ErrInvalidValue, *c.Role)
	}
	if c.Status != nil && !c.Status.Valid() {
		return fmt.Errorf("%w: user status %q", ErrInvalidValue, *c.Status)
	}
	return nil
}

func (c UserChanges) apply(u *entity.User) {
	if c.Name != nil {
		u.Name = *c.Name
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.Role != nil {
		u.Role = *c.Role
	}
	if c.Status != nil {
		u.Status = *c.Status
	}
	if c.LastActive != nil {
		u.LastActive = *c.LastActive
	}
}

// AddUser appends a user. An empty id is replaced with a generated one.
func (s *Store) AddUser(u entity.User) (entity.User, error) {
	if !u.Role.Valid() {
		return entity.User{}, fmt.Errorf("%w: user role %q", ErrInvalidValue, u.Role)
	}
	if !u.Status.Valid() {
		return entity.User{}, fmt.Errorf("%w: user status %q", ErrInvalidValue, u.Status)
	}

	err := s.mutate("AddUser", func(t *tx) error {
		if u.ID == "" {
			u.ID = t.s.newID()
		}
		if t.s.userIndex(u.ID) >= 0 {
			return fmt.Errorf("%w: user %s", ErrDuplicateID, u.ID)
		}
		t.s.users = append(t.s.users, u)
		t.log(entity.LogModuleSystem, fmt.Sprintf("New user created: %s [%s]", u.Email, u.Role), entity.LogStatusOK)
		return nil
	})
	if err != nil {
		return entity.User{}, err
	}
	return u, nil
}

// UpdateUser merges changes into the user with the given id
func (s *Store) UpdateUser(id string, changes UserChanges) (entity.User, error) {
	if err := changes.validate(); err != nil {
		return entity.User{}, err
	}

	var updated entity.User
	err := s.mutate("UpdateUser", func(t *tx) error {
		i := t.s.userIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		changes.apply(&t.s.users[i])
		updated = t.s.users[i]
		t.log(entity.LogModuleSystem, fmt.Sprintf("User profile updated: ID %s", id), entity.LogStatusOK)
		return nil
	})
	return updated, err
}

// Users returns all users in insertion order
func (s *Store) Users() []entity.User {
	var out []entity.User
	s.read(func() {
		out = cloneAll(s.users, nil)
	})
	return out
}

// User returns one user by id
func (s *Store) User(id string) (entity.User, error) {
	var (
		u  entity.User
		ok bool
	)
	s.read(func() {
		if i := s.userIndex(id); i >= 0 {
			u, ok = s.users[i], true
		}
	})
	if !ok {
		return entity.User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return u, nil
}

func (s *Store) userIndex(id string) int {
	return slices.IndexFunc(s.users, func(u entity.User) bool { return u.ID == id })
}
