package usecase

import (
	"context"

	"mediaccess/internal/domain/entity"
	"mediaccess/internal/projection"

	"github.com/sirupsen/logrus"
)

type FinancialUsecase interface {
	Outlook(ctx context.Context, role entity.Role) (*projection.FinancialOutlook, error)
}

type financialUsecase struct {
	log *logrus.Logger
}

func NewFinancialUsecase(log *logrus.Logger) FinancialUsecase {
	return &financialUsecase{log: log}
}

func (u *financialUsecase) Outlook(ctx context.Context, role entity.Role) (*projection.FinancialOutlook, error) {
	if !entity.IsPermitted(role, entity.CapViewFinancials) {
		u.log.Warnf("Failed to show financials: role %s is restricted", role)
		return nil, ErrForbidden
	}
	outlook := projection.BuildFinancialOutlook(projection.FinancialProjections())
	return &outlook, nil
}
