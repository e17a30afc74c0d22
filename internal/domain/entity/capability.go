package entity

// Capability is a view or action that may be gated by role
type Capability string

// Capability constants
const (
	CapViewDashboard           Capability = "view_dashboard"
	CapViewConfidentialDocs    Capability = "view_confidential_documents"
	CapManageUsers             Capability = "manage_users"
	CapManagePatients          Capability = "manage_patients"
	CapVoteProposals           Capability = "vote_proposals"
	CapViewBoardReview         Capability = "view_board_review"
	CapManageGuides            Capability = "manage_guides"
	CapManageTrainees          Capability = "manage_trainees"
	CapViewDeveloperAPI        Capability = "view_developer_api"
	CapViewPerformanceReviews  Capability = "view_performance_reviews"
	CapApproveTasks            Capability = "approve_tasks"
	CapRunSimulations          Capability = "run_simulations"
	CapPublishJournals         Capability = "publish_journals"
	CapViewFinancials          Capability = "view_financials"
	CapAnalyzeSecurityLogs     Capability = "analyze_security_logs"
	CapGenerateReports         Capability = "generate_reports"
)

// AllCapabilities returns every capability in table order
func AllCapabilities() []Capability {
	return []Capability{
		CapViewDashboard,
		CapViewConfidentialDocs,
		CapManageUsers,
		CapManagePatients,
		CapVoteProposals,
		CapViewBoardReview,
		CapManageGuides,
		CapManageTrainees,
		CapViewDeveloperAPI,
		CapViewPerformanceReviews,
		CapApproveTasks,
		CapRunSimulations,
		CapPublishJournals,
		CapViewFinancials,
		CapAnalyzeSecurityLogs,
		CapGenerateReports,
	}
}

// Roles returns the roles granted the capability. Unknown capabilities grant nobody.
func (c Capability) Roles() []Role {
	switch c {
	case CapViewDashboard:
		return []Role{RoleStaff, RoleAdmin, RoleInvestor, RolePartner}
	case CapViewConfidentialDocs:
		return []Role{RoleInvestor}
	case CapManageUsers, CapManageGuides, CapApproveTasks, CapRunSimulations, CapGenerateReports:
		return []Role{RoleAdmin}
	case CapManagePatients, CapAnalyzeSecurityLogs:
		return []Role{RoleStaff, RoleAdmin}
	case CapVoteProposals, CapViewBoardReview:
		return []Role{RoleInvestor, RoleAdmin}
	case CapManageTrainees, CapViewDeveloperAPI:
		return []Role{RolePartner, RoleAdmin}
	case CapViewPerformanceReviews:
		return []Role{RoleStaff, RolePartner, RoleAdmin}
	case CapPublishJournals:
		return []Role{RolePartner}
	case CapViewFinancials:
		return []Role{RoleAdmin, RoleInvestor, RolePartner}
	}
	return nil
}

// IsPermitted reports whether role holds capability c
func IsPermitted(role Role, c Capability) bool {
	for _, r := range c.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// CapabilitiesFor lists every capability granted to role
func CapabilitiesFor(role Role) []Capability {
	var caps []Capability
	for _, c := range AllCapabilities() {
		if IsPermitted(role, c) {
			caps = append(caps, c)
		}
	}
	return caps
}
