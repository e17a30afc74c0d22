package store

import (
	"fmt"
	"slices"

	"mediaccess/internal/domain/entity"
)

// VoteProposal increments one side of a pending proposal's tally
func (s *Store) VoteProposal(id string, choice entity.VoteChoice) (entity.BoardProposal, error) {
	if !choice.Valid() {
		return entity.BoardProposal{}, fmt.Errorf("%w: vote %q", ErrInvalidValue, choice)
	}

	var updated entity.BoardProposal
	err := s.mutate("VoteProposal", func(t *tx) error {
		i := t.s.proposalIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: proposal %s", ErrNotFound, id)
		}
		p := &t.s.proposals[i]
		if !p.IsPending() {
			return fmt.Errorf("%w: proposal %s is %s", ErrProposalClosed, id, p.Status)
		}

		switch choice {
		case entity.VoteYes:
			p.Votes.Yes++
		case entity.VoteNo:
			p.Votes.No++
		}
		updated = *p

		t.notify(entity.NotificationSuccess, "Vote Cast", fmt.Sprintf("A vote was cast on proposal #%s.", id))
		t.log(entity.LogModuleAPI, fmt.Sprintf("Vote recorded on Proposal #%s", id), entity.LogStatusOK)
		return nil
	})
	return updated, err
}

// Proposals returns all board proposals in seed order
func (s *Store) Proposals() []entity.BoardProposal {
	var out []entity.BoardProposal
	s.read(func() {
		out = cloneAll(s.proposals, nil)
	})
	return out
}

// Proposal returns one proposal by id
func (s *Store) Proposal(id string) (entity.BoardProposal, error) {
	var (
		p  entity.BoardProposal
		ok bool
	)
	s.read(func() {
		if i := s.proposalIndex(id); i >= 0 {
			p, ok = s.proposals[i], true
		}
	})
	if !ok {
		return entity.BoardProposal{}, fmt.Errorf("%w: proposal %s", ErrNotFound, id)
	}
	return p, nil
}

func (s *Store) proposalIndex(id string) int {
	return slices.IndexFunc(s.proposals, func(p entity.BoardProposal) bool { return p.ID == id })
}
