package entity

// ProposalStatus represents the board decision on a proposal
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "Pending"
	ProposalStatusApproved ProposalStatus = "Approved"
	ProposalStatusRejected ProposalStatus = "Rejected"
)

// Valid reports whether s is one of the enumerated statuses
func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusApproved, ProposalStatusRejected:
		return true
	}
	return false
}

// VoteChoice is the side of a board vote
type VoteChoice string

const (
	VoteYes VoteChoice = "yes"
	VoteNo  VoteChoice = "no"
)

// Valid reports whether c is yes or no
func (c VoteChoice) Valid() bool {
	return c == VoteYes || c == VoteNo
}

// Votes holds the running tally of a proposal
type Votes struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// BoardProposal represents a strategic decision put to the board
type BoardProposal struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	SubmittedBy string         `json:"submitted_by"`
	Date        string         `json:"date"`
	Status      ProposalStatus `json:"status"`
	Summary     string         `json:"summary"`
	Votes       Votes          `json:"votes"`
}

// IsPending checks if the proposal is still open for voting
func (p *BoardProposal) IsPending() bool {
	return p.Status == ProposalStatusPending
}
