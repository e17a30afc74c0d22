package usecase

import (
	"context"
	"errors"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/projection"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var ErrProposalNotFound = errors.New("proposal not found")

type ProposalUsecase interface {
	ListProposals(ctx context.Context, view string) ([]entity.BoardProposal, error)
	Vote(ctx context.Context, id string, req *dto.VoteRequest) (*entity.BoardProposal, error)
}

type proposalUsecase struct {
	store *store.Store
	log   *logrus.Logger
}

func NewProposalUsecase(s *store.Store, log *logrus.Logger) ProposalUsecase {
	return &proposalUsecase{store: s, log: log}
}

func (u *proposalUsecase) ListProposals(ctx context.Context, view string) ([]entity.BoardProposal, error) {
	v, err := projection.ParseProposalView(view)
	if err != nil {
		return nil, err
	}
	return projection.FilterProposals(u.store.Proposals(), v), nil
}

func (u *proposalUsecase) Vote(ctx context.Context, id string, req *dto.VoteRequest) (*entity.BoardProposal, error) {
	p, err := u.store.VoteProposal(id, entity.VoteChoice(req.Choice))
	if err != nil {
		u.log.Warnf("Failed to vote on proposal: %+v", err)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &p, nil
}
