package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPermitted_Table(t *testing.T) {
	const (
		S = 1 << iota
		A
		I
		P
	)
	grants := map[Capability]int{
		CapViewDashboard:          S | A | I | P,
		CapViewConfidentialDocs:   I,
		CapManageUsers:            A,
		CapManagePatients:         S | A,
		CapVoteProposals:          A | I,
		CapViewBoardReview:        A | I,
		CapManageGuides:           A,
		CapManageTrainees:         A | P,
		CapViewDeveloperAPI:       A | P,
		CapViewPerformanceReviews: S | A | P,
		CapApproveTasks:           A,
		CapRunSimulations:         A,
		CapPublishJournals:        P,
		CapViewFinancials:         A | I | P,
		CapAnalyzeSecurityLogs:    S | A,
		CapGenerateReports:        A,
	}
	roleBits := map[Role]int{RoleStaff: S, RoleAdmin: A, RoleInvestor: I, RolePartner: P}

	require.Len(t, AllCapabilities(), len(grants))
	for _, c := range AllCapabilities() {
		want, ok := grants[c]
		require.True(t, ok, "capability %s missing from table", c)
		for _, r := range AllRoles() {
			assert.Equal(t, want&roleBits[r] != 0, IsPermitted(r, c), "%s / %s", r, c)
		}
	}
}

func TestIsPermitted_Edges(t *testing.T) {
	assert.False(t, IsPermitted(RoleStaff, CapViewBoardReview))
	assert.False(t, IsPermitted(RoleAdmin, CapViewConfidentialDocs))
	assert.False(t, IsPermitted(RoleAdmin, CapPublishJournals))
	assert.False(t, IsPermitted(Role("ROOT"), CapViewDashboard))
	assert.False(t, IsPermitted(RoleAdmin, Capability("launch_rockets")))
	assert.Nil(t, Capability("launch_rockets").Roles())
}

func TestCapabilitiesFor(t *testing.T) {
	assert.Equal(t, []Capability{CapViewDashboard, CapViewConfidentialDocs, CapVoteProposals, CapViewBoardReview, CapViewFinancials},
		CapabilitiesFor(RoleInvestor))
	assert.Len(t, CapabilitiesFor(RoleAdmin), 14)
	assert.Empty(t, CapabilitiesFor(Role("ROOT")))
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		token   string
		want    Role
		wantErr error
	}{
		{token: "", want: RoleStaff},
		{token: "   ", want: RoleStaff},
		{token: "investor", want: RoleInvestor},
		{token: " Admin ", want: RoleAdmin},
		{token: "PARTNER", want: RolePartner},
		{token: "ROOT", wantErr: ErrInvalidRole},
		{token: "doctor", wantErr: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ResolveRole(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRole_RejectsEmpty(t *testing.T) {
	_, err := ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
