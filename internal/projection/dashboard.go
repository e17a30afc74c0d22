package projection

import (
	"fmt"
	"math"
	"strings"

	"mediaccess/internal/domain/entity"
	"mediaccess/internal/store"
)

// SimulatedRevenueYTD is the fixed revenue figure shown to stakeholders
const SimulatedRevenueYTD = "R4.2M"

const recentUpdatesLimit = 4

// AdminStats feeds the system administration dashboard
type AdminStats struct {
	PendingApprovals int                  `json:"pending_approvals"`
	CriticalIssues   int                  `json:"critical_issues"`
	SystemHealth     string               `json:"system_health"`
	SecurityLevel    entity.SecurityLevel `json:"security_level"`
	RecentLogs       []entity.SystemLog   `json:"recent_logs"`
}

// StaffStats feeds the medical operations dashboard
type StaffStats struct {
	TotalPatients   int             `json:"total_patients"`
	WaitingPatients int             `json:"waiting_patients"`
	RecentUpdates   []PatientUpdate `json:"recent_updates"`
}

// InvestorStats feeds the investor overview
type InvestorStats struct {
	RevenueYTD       string `json:"revenue_ytd"`
	PendingProposals int    `json:"pending_proposals"`
	ReportCount      int    `json:"report_count"`
}

// PartnerStats feeds the academic research portal
type PartnerStats struct {
	PublishedPapers int `json:"published_papers"`
	Trainees        int `json:"trainees"`
}

// DashboardStats is the landing view for one role. Exactly one of the
// role sections is set.
type DashboardStats struct {
	Role                entity.Role             `json:"role"`
	Variant             entity.DashboardVariant `json:"variant"`
	UnreadNotifications int                     `json:"unread_notifications"`
	Offline             bool                    `json:"offline"`

	Admin    *AdminStats    `json:"admin,omitempty"`
	Staff    *StaffStats    `json:"staff,omitempty"`
	Investor *InvestorStats `json:"investor,omitempty"`
	Partner  *PartnerStats  `json:"partner,omitempty"`
}

// Dashboard builds the role specific dashboard from a snapshot
func Dashboard(role entity.Role, snap store.Snapshot) DashboardStats {
	stats := DashboardStats{
		Role:                role,
		Variant:             entity.DashboardFor(role),
		UnreadNotifications: UnreadCount(snap.Notifications),
		Offline:             snap.Offline,
	}

	switch role {
	case entity.RoleAdmin:
		critical := CriticalPendingCount(snap.Tasks)
		health := "Optimal"
		if critical > 0 {
			health = "Degraded"
		}
		logs := snap.Logs
		if len(logs) > 5 {
			logs = logs[:5]
		}
		stats.Admin = &AdminStats{
			PendingApprovals: PendingTaskCount(snap.Tasks),
			CriticalIssues:   critical,
			SystemHealth:     health,
			SecurityLevel:    snap.SecurityLevel,
			RecentLogs:       logs,
		}
	case entity.RoleInvestor:
		stats.Investor = &InvestorStats{
			RevenueYTD:       SimulatedRevenueYTD,
			PendingProposals: PendingProposalCount(snap.Proposals),
			ReportCount:      len(snap.Reports),
		}
	case entity.RolePartner:
		stats.Partner = &PartnerStats{
			PublishedPapers: len(snap.Journals),
			Trainees:        len(snap.Trainees),
		}
	default:
		stats.Staff = &StaffStats{
			TotalPatients:   len(snap.Patients),
			WaitingPatients: WaitingCount(snap.Patients),
			RecentUpdates:   RecentPatientUpdates(snap.Patients, recentUpdatesLimit),
		}
	}
	return stats
}

// SLASummary is the headline of the approvals console
type SLASummary struct {
	Adherence         string `json:"adherence"`
	CriticalPending   int    `json:"critical_pending"`
	Pending           int    `json:"pending"`
	Completed         int    `json:"completed"`
	ChecksDone        int    `json:"checks_done"`
	ChecksTotal       int    `json:"checks_total"`
	ChecklistProgress int    `json:"checklist_progress"`
}

// slaAdherence is the contractual adherence figure shown on the console
const slaAdherence = "98.5%"

// SummarizeSLA counts the task queue and checklist for the approvals console.
// ChecklistProgress is the rounded percentage of checked items.
func SummarizeSLA(tasks []entity.AdminTask, checks []entity.SLACheck) SLASummary {
	s := SLASummary{Adherence: slaAdherence, ChecksTotal: len(checks)}
	for _, c := range checks {
		if c.Checked {
			s.ChecksDone++
		}
	}
	if s.ChecksTotal > 0 {
		s.ChecklistProgress = int(math.Round(float64(s.ChecksDone) * 100 / float64(s.ChecksTotal)))
	}
	for i := range tasks {
		switch {
		case tasks[i].IsCriticalPending():
			s.CriticalPending++
			s.Pending++
		case tasks[i].IsPending():
			s.Pending++
		case tasks[i].Status == entity.TaskStatusCompleted, tasks[i].Status == entity.TaskStatusApproved:
			s.Completed++
		}
	}
	return s
}

// LiveContext renders the state digest handed to the assistant with every
// chat session
func LiveContext(snap store.Snapshot) string {
	var alerts []string
	for i, n := range snap.Notifications {
		if i == 3 {
			break
		}
		alerts = append(alerts, fmt.Sprintf("- %s: %s", n.Time, n.Message))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current Security Level: %s\n", snap.SecurityLevel)
	fmt.Fprintf(&b, "Active Patients Registered: %d\n", len(snap.Patients))
	fmt.Fprintf(&b, "Pending Admin Tasks: %d (Critical: %d)\n", PendingTaskCount(snap.Tasks), CriticalPendingCount(snap.Tasks))
	fmt.Fprintf(&b, "Pending Board Proposals: %d\n", PendingProposalCount(snap.Proposals))
	b.WriteString("Recent System Alerts:\n")
	for _, a := range alerts {
		b.WriteString(a)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Current Revenue (YTD): %s (Simulated)\n", SimulatedRevenueYTD)
	return b.String()
}
