package usecase

import (
	"context"

	"mediaccess/internal/domain/entity"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

// SimulationUsecase drives the scripted demo scenarios. A scenario started
// from the wrong state fails with store.ErrInvalidTransition.
type SimulationUsecase interface {
	TriggerCyberAttack(ctx context.Context) (*entity.AdminTask, error)
	ResolveSecurityEvent(ctx context.Context) (entity.SecurityLevel, error)
	TriggerPatientSurge(ctx context.Context) ([]entity.Patient, error)
}

type simulationUsecase struct {
	store *store.Store
	log   *logrus.Logger
}

func NewSimulationUsecase(s *store.Store, log *logrus.Logger) SimulationUsecase {
	return &simulationUsecase{store: s, log: log}
}

func (u *simulationUsecase) TriggerCyberAttack(ctx context.Context) (*entity.AdminTask, error) {
	task, err := u.store.TriggerCyberAttack()
	if err != nil {
		u.log.Warnf("Failed to trigger cyber attack: %+v", err)
		return nil, err
	}
	u.log.Infof("Cyber attack simulation started, response task %s", task.ID)
	return &task, nil
}

func (u *simulationUsecase) ResolveSecurityEvent(ctx context.Context) (entity.SecurityLevel, error) {
	if err := u.store.ResolveSecurityEvent(); err != nil {
		u.log.Warnf("Failed to resolve security event: %+v", err)
		return u.store.SecurityLevel(), err
	}
	return u.store.SecurityLevel(), nil
}

func (u *simulationUsecase) TriggerPatientSurge(ctx context.Context) ([]entity.Patient, error) {
	batch, err := u.store.TriggerPatientSurge()
	if err != nil {
		u.log.Warnf("Failed to trigger patient surge: %+v", err)
		return nil, err
	}
	return batch, nil
}
