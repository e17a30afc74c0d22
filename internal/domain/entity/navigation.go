package entity

// NavItem is a single sidebar link
type NavItem struct {
	Path    string `json:"path"`
	Label   string `json:"label"`
	Section string `json:"section,omitempty"`
}

// DashboardVariant describes the role specific landing view
type DashboardVariant struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// DashboardFor returns the dashboard variant for role
func DashboardFor(role Role) DashboardVariant {
	switch role {
	case RoleAdmin:
		return DashboardVariant{Title: "System Administration", Subtitle: "Infrastructure monitoring and oversight."}
	case RoleInvestor:
		return DashboardVariant{Title: "Investor Overview", Subtitle: "Performance metrics, ROI, and Governance."}
	case RolePartner:
		return DashboardVariant{Title: "Academic Research Portal", Subtitle: "Collaboration, publications, and trainee insights."}
	default:
		return DashboardVariant{Title: "Medical Operations", Subtitle: "System health checks, patient queue, and reporting."}
	}
}

// NavigationFor returns the sidebar links for role
func NavigationFor(role Role) []NavItem {
	switch role {
	case RoleAdmin:
		return []NavItem{
			{Path: "/dashboard", Label: "System Overview"},
			{Path: "/admin-approvals", Label: "Approvals & SLA"},
			{Path: "/compliance", Label: "Security & Compliance"},
			{Path: "/timeline", Label: "Project Roadmap"},
			{Path: "/users", Label: "User Management", Section: "Administration"},
			{Path: "/guides", Label: "System Guides", Section: "Administration"},
			{Path: "/developer-api", Label: "Developer API", Section: "Administration"},
		}
	case RoleStaff:
		return []NavItem{
			{Path: "/dashboard", Label: "Medical Ops Overview"},
			{Path: "/patients", Label: "Patient Management"},
			{Path: "/performance-reviews", Label: "Performance Reviews"},
			{Path: "/medical-reports", Label: "Medical Reports", Section: "Medical Resources"},
			{Path: "/journals", Label: "Journals & Research", Section: "Medical Resources"},
		}
	case RolePartner:
		return []NavItem{
			{Path: "/dashboard", Label: "Academic Overview"},
			{Path: "/performance-reviews", Label: "Performance Reviews"},
			{Path: "/timeline", Label: "Project Roadmap"},
			{Path: "/research-stats", Label: "Research Contributions", Section: "Research Data"},
			{Path: "/journals", Label: "Journals & Research", Section: "Research Data"},
			{Path: "/developer-api", Label: "Developer API", Section: "Research Data"},
		}
	case RoleInvestor:
		return []NavItem{
			{Path: "/dashboard", Label: "Investor Overview"},
			{Path: "/board-review", Label: "Board Review"},
			{Path: "/financials", Label: "Financials & ROI"},
			{Path: "/compliance", Label: "Security & Compliance"},
			{Path: "/timeline", Label: "Project Roadmap"},
			{Path: "/documents", Label: "Project Docs", Section: "Investor Resources"},
			{Path: "/investor-reports", Label: "Strategic Reports", Section: "Investor Resources"},
		}
	}
	return nil
}
