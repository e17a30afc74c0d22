package usecase

import (
	"context"
	"errors"
	"slices"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/projection"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var (
	ErrTraineeNotFound   = errors.New("trainee not found")
	ErrUnknownSupervisor = errors.New("supervisor is not on the faculty list")
)

type TraineeUsecase interface {
	ListTrainees(ctx context.Context, mine bool) []entity.Trainee
	Supervisors(ctx context.Context) []string
	AssignSupervisor(ctx context.Context, id string, req *dto.AssignSupervisorRequest) (*entity.Trainee, error)
	LogReview(ctx context.Context, id string, req *dto.TraineeReviewRequest) (*entity.Trainee, error)
}

type traineeUsecase struct {
	store      *store.Store
	log        *logrus.Logger
	supervisor string
}

// NewTraineeUsecase creates the use case. supervisor is the acting faculty
// member: reviews are signed with that name and "mine" filters by it.
func NewTraineeUsecase(s *store.Store, log *logrus.Logger, supervisor string) TraineeUsecase {
	return &traineeUsecase{store: s, log: log, supervisor: supervisor}
}

func (u *traineeUsecase) ListTrainees(ctx context.Context, mine bool) []entity.Trainee {
	ts := u.store.Trainees()
	if mine {
		return projection.TraineesForSupervisor(ts, u.supervisor)
	}
	return ts
}

func (u *traineeUsecase) Supervisors(ctx context.Context) []string {
	return slices.Clone(entity.AvailableSupervisors)
}

func (u *traineeUsecase) AssignSupervisor(ctx context.Context, id string, req *dto.AssignSupervisorRequest) (*entity.Trainee, error) {
	if !slices.Contains(entity.AvailableSupervisors, req.Supervisor) {
		return nil, ErrUnknownSupervisor
	}

	t, err := u.store.UpdateTrainee(id, store.TraineeChanges{AssignedSupervisor: &req.Supervisor})
	if err != nil {
		return nil, u.traineeError("assign supervisor", err)
	}
	return &t, nil
}

func (u *traineeUsecase) LogReview(ctx context.Context, id string, req *dto.TraineeReviewRequest) (*entity.Trainee, error) {
	t, err := u.store.AddTraineeReview(id, entity.TraineeReview{
		Date:    u.store.Today(),
		Comment: req.Comment,
		Author:  u.supervisor,
	})
	if err != nil {
		return nil, u.traineeError("log review", err)
	}
	return &t, nil
}

func (u *traineeUsecase) traineeError(what string, err error) error {
	u.log.Warnf("Failed to %s: %+v", what, err)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTraineeNotFound
	}
	return err
}
