package usecase

import (
	"context"
	"errors"

	"mediaccess/internal/converter"
	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type UserUsecase interface {
	ListUsers(ctx context.Context) []entity.User
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*entity.User, error)
}

type userUsecase struct {
	store *store.Store
	log   *logrus.Logger
}

func NewUserUsecase(s *store.Store, log *logrus.Logger) UserUsecase {
	return &userUsecase{store: s, log: log}
}

func (u *userUsecase) ListUsers(ctx context.Context) []entity.User {
	return u.store.Users()
}

func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*entity.User, error) {
	user, err := u.store.AddUser(converter.CreateUserRequestToEntity(req))
	if err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}
	return &user, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*entity.User, error) {
	user, err := u.store.UpdateUser(id, converter.UpdateUserRequestToChanges(req))
	if err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
