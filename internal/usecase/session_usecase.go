package usecase

import (
	"context"
	"errors"

	"mediaccess/internal/converter"
	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/login"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var (
	ErrForbidden    = errors.New("role is not permitted to perform this action")
	ErrAccessDenied = errors.New("biometric access denied")
)

type SessionUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, role entity.Role) *dto.SessionResponse
	Roles(ctx context.Context) []dto.RolePermissions
}

type sessionUsecase struct {
	store     *store.Store
	log       *logrus.Logger
	simulator *login.Simulator
}

func NewSessionUsecase(s *store.Store, log *logrus.Logger, simulator *login.Simulator) SessionUsecase {
	return &sessionUsecase{
		store:     s,
		log:       log,
		simulator: simulator,
	}
}

// Login runs the biometric ceremony. A denied scan returns ErrAccessDenied
// together with the response describing the FAILED attempt.
func (u *sessionUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	method, err := login.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}

	res, err := u.simulator.Authenticate(ctx, role, method, u.store.Offline())
	if err != nil {
		u.log.Warnf("Failed to authenticate %s via %s: %+v", role, method, err)
		return nil, err
	}

	resp := converter.LoginResultToResponse(res)
	if res.State == login.StateFailed {
		return resp, ErrAccessDenied
	}
	return resp, nil
}

func (u *sessionUsecase) Me(ctx context.Context, role entity.Role) *dto.SessionResponse {
	return converter.RoleToSession(role)
}

func (u *sessionUsecase) Roles(ctx context.Context) []dto.RolePermissions {
	return converter.RolePermissionsTable()
}
