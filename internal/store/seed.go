package store

import (
	"time"

	"mediaccess/internal/domain/entity"
)

// Seed is the initial content of a Store
type Seed struct {
	Users         []entity.User
	Patients      []entity.Patient
	Trainees      []entity.Trainee
	Proposals     []entity.BoardProposal
	Tasks         []entity.AdminTask
	Journals      []entity.JournalArticle
	Reports       []entity.SystemReport
	Guides        []entity.SystemGuide
	Notifications []entity.AppNotification
	Logs          []entity.SystemLog
	SLAChecks     []entity.SLACheck
}

func (s Seed) clone() Seed {
	return Seed{
		Users:         cloneAll(s.Users, nil),
		Patients:      cloneAll(s.Patients, entity.Patient.Clone),
		Trainees:      cloneAll(s.Trainees, entity.Trainee.Clone),
		Proposals:     cloneAll(s.Proposals, nil),
		Tasks:         cloneAll(s.Tasks, nil),
		Journals:      cloneAll(s.Journals, nil),
		Reports:       cloneAll(s.Reports, nil),
		Guides:        cloneAll(s.Guides, nil),
		Notifications: cloneAll(s.Notifications, nil),
		Logs:          cloneAll(s.Logs, nil),
		SLAChecks:     cloneAll(s.SLAChecks, nil),
	}
}

// Snapshot is a deep copy of the whole store taken under one read lock
type Snapshot struct {
	Seed
	Offline        bool
	SecurityLevel  entity.SecurityLevel
	MobileMenuOpen bool
}

// Snapshot returns a consistent copy of every collection and flag
func (s *Store) Snapshot() Snapshot {
	var snap Snapshot
	s.read(func() {
		snap = Snapshot{
			Seed: Seed{
				Users:         s.users,
				Patients:      s.patients,
				Trainees:      s.trainees,
				Proposals:     s.proposals,
				Tasks:         s.tasks,
				Journals:      s.journals,
				Reports:       s.reports,
				Guides:        s.guides,
				Notifications: s.notifications,
				Logs:          s.logs,
				SLAChecks:     s.slaChecks,
			}.clone(),
			Offline:        s.offline,
			SecurityLevel:  s.securityLevel,
			MobileMenuOpen: s.mobileMenuOpen,
		}
	})
	return snap
}

// DefaultSeed returns the demo dataset. now dates the deep scan report and
// stamps the boot log lines.
func DefaultSeed(now time.Time) Seed {
	today := now.Format(entity.DateLayout)

	return Seed{
		Users: []entity.User{
			{ID: "1", Name: "Dr. Sarah Smith", Email: "s.smith@mediaccess.io", Role: entity.RoleStaff, Status: entity.UserStatusActive, LastActive: "2 mins ago"},
			{ID: "2", Name: "James Wilson", Email: "admin@mediaccess.io", Role: entity.RoleAdmin, Status: entity.UserStatusActive, LastActive: "Just now"},
			{ID: "3", Name: "Global Health Ventures", Email: "investments@ghv.com", Role: entity.RoleInvestor, Status: entity.UserStatusActive, LastActive: "2 days ago"},
			{ID: "4", Name: "UCT Research Lab", Email: "partners@uct.ac.za", Role: entity.RolePartner, Status: entity.UserStatusPending, LastActive: "1 week ago"},
			{ID: "5", Name: "Nurse John Doe", Email: "j.doe@mediaccess.io", Role: entity.RoleStaff, Status: entity.UserStatusSuspended, LastActive: "1 month ago"},
			{ID: "6", Name: "Dr. Emily Blunt", Email: "e.blunt@mediaccess.io", Role: entity.RoleStaff, Status: entity.UserStatusOnLeave, LastActive: "3 days ago"},
			{ID: "7", Name: "Tech Support", Email: "support@mediaccess.io", Role: entity.RoleAdmin, Status: entity.UserStatusDisabled, LastActive: "Never"},
		},
		Patients: []entity.Patient{
			{
				ID: "1", Name: "John Doe", DOB: "1985-04-12", Contact: "555-0101",
				History: "Hypertension, T2 Diabetes", LastVisit: "2023-10-25",
				Status: entity.PatientStatusConsultation,
				Notes: []entity.PatientNote{
					{Date: "2023-10-25", Text: "Routine checkup. BP slightly elevated. Advised diet change.", Author: "Dr. Smith"},
					{Date: "2023-09-10", Text: "Patient complained of mild headaches. Prescribed analgesics.", Author: "Nurse Joy"},
				},
				Vitals: entity.Vitals{BP: "135/85", HeartRate: "78", Temp: "36.8"},
			},
			{
				ID: "2", Name: "Jane Smith", DOB: "1992-08-30", Contact: "555-0202",
				History: "Asthma", LastVisit: "2023-10-20",
				Status: entity.PatientStatusWaiting,
				Notes:  []entity.PatientNote{},
				Vitals: entity.Vitals{BP: "120/80", HeartRate: "72", Temp: "37.0"},
			},
			{
				ID: "3", Name: "Robert Fox", DOB: "1978-11-15", Contact: "555-0303",
				History: "Fractured Tibia (Recovering)", LastVisit: "2023-10-28",
				Status: entity.PatientStatusTriage,
				Notes:  []entity.PatientNote{},
				Vitals: entity.Vitals{BP: "128/82", HeartRate: "80", Temp: "36.5"},
			},
		},
		Trainees: []entity.Trainee{
			{
				ID: "1", Name: "Dr. Emily Chen", Role: "Trainee Doctor",
				Performance: 88, ClinicalHours: 120, SupervisorRating: 4.5, JournalEntries: 3,
				AssignedSupervisor: "Prof. Alan Grant",
				Reviews: []entity.TraineeReview{
					{Date: "2023-10-01", Comment: "Excellent patient interaction during rounds. Demonstrated strong diagnostic skills.", Author: "Prof. Alan Grant"},
				},
			},
			{
				ID: "2", Name: "James Botha", Role: "Researcher",
				Performance: 92, ClinicalHours: 40, SupervisorRating: 5.0, JournalEntries: 2,
				AssignedSupervisor: "Dr. Ellie Sattler",
				Reviews:            []entity.TraineeReview{},
			},
			{
				ID: "3", Name: "Sarah Connor", Role: "Trainee Doctor",
				Performance: 76, ClinicalHours: 95, SupervisorRating: 3.8, JournalEntries: 1,
				Reviews: []entity.TraineeReview{},
			},
		},
		Proposals: []entity.BoardProposal{
			{
				ID: "1", Title: "Q4 Budget Expansion for Regional Rollout", SubmittedBy: "CFO", Date: "2023-10-20",
				Status:  entity.ProposalStatusPending,
				Summary: "Requesting R2.5M additional funding to support the expansion into 5 new district hospitals. Breakdown includes hardware procurement (40%), staff training (30%), and logistical support (30%).",
				Votes:   entity.Votes{Yes: 3, No: 1},
			},
			{
				ID: "2", Title: "Partnership Agreement with MedTech Sol", SubmittedBy: "CEO", Date: "2023-10-15",
				Status:  entity.ProposalStatusApproved,
				Summary: "Strategic alliance for hardware procurement discounts. This 2-year contract locks in a 15% discount on all biometric scanners.",
				Votes:   entity.Votes{Yes: 5, No: 0},
			},
			{
				ID: "3", Title: "Delay of Phase 3 Scaling", SubmittedBy: "CTO", Date: "2023-10-28",
				Status:  entity.ProposalStatusRejected,
				Summary: "Proposal to delay Kubernetes deployment by 2 weeks to conduct further load testing on the legacy auth server.",
				Votes:   entity.Votes{Yes: 1, No: 4},
			},
		},
		Tasks: []entity.AdminTask{
			{ID: "1", Type: entity.TaskTypeAccess, Title: "New Intern Access Request", Requester: "Dr. Smith", SLARating: entity.SLAMedium, Status: entity.TaskStatusPending, Date: "2023-10-27"},
			{ID: "2", Type: entity.TaskTypeHardware, Title: "Server Rack Maintenance", Requester: "IT Ops", SLARating: entity.SLACritical, Status: entity.TaskStatusPending, Date: "2023-10-26"},
			{ID: "3", Type: entity.TaskTypeSystemUpdate, Title: "v2.4 Security Patch", Requester: "DevOps", SLARating: entity.SLAHigh, Status: entity.TaskStatusApproved, Date: "2023-10-25"},
			{ID: "4", Type: entity.TaskTypeChartAudit, Title: "Routine Audit: Ward A Logs", Requester: "Compliance Bot", SLARating: entity.SLAMedium, Status: entity.TaskStatusPending, Date: "2023-10-27"},
			{ID: "5", Type: entity.TaskTypeSoftware, Title: "License Renewal: Radiography Suite", Requester: "Procurement", SLARating: entity.SLALow, Status: entity.TaskStatusPending, Date: "2023-10-28"},
			{ID: "6", Type: entity.TaskTypeSystemUpdate, Title: "Database Migration Approval", Requester: "Lead Eng.", SLARating: entity.SLACritical, Status: entity.TaskStatusPending, Date: "2023-10-28"},
			{ID: "7", Type: entity.TaskTypeAccess, Title: "Revoke Access: Ex-Employee", Requester: "HR Dept", SLARating: entity.SLAHigh, Status: entity.TaskStatusPending, Date: "2023-10-28"},
		},
		Journals: []entity.JournalArticle{
			{ID: "1", Title: "Biometric Efficacy in High-Trauma Environments", Author: "Dr. A. Peterson", Type: entity.JournalTypeResearch, Date: "2023-11-01", Abstract: "Analysis of facial recognition speed in emergency room settings."},
			{ID: "2", Title: "Patient Data Privacy: A New Paradigm", Author: "MediAccess Security Team", Type: entity.JournalTypeMedical, Date: "2023-10-15", Abstract: "Implementing zero-trust architecture in hospital networks."},
			{ID: "3", Title: "Ethical Implications of AI in Healthcare", Author: "UCT Research Dept", Type: entity.JournalTypeResearch, Date: "2023-09-28", Abstract: "A qualitative study on patient perception of automated entry systems."},
			{ID: "4", Title: "Monthly Operational Efficiency Report", Author: "Ops Team", Type: entity.JournalTypeMedical, Date: "2023-10-01", Abstract: "Statistics on wait time reduction post-implementation."},
		},
		Reports: []entity.SystemReport{
			{ID: "1", Title: "Q3 2024 Financial Performance Review", Type: entity.ReportTypeFinancial, Size: "2.4 MB", Date: "2023-10-24", GeneratedBy: "System"},
			{ID: "2", Title: "Expansion Feasibility Study: Sub-Saharan Region", Type: entity.ReportTypeStrategy, Size: "5.1 MB", Date: "2023-10-20", GeneratedBy: "External Audit"},
			{ID: "3", Title: "Technical Infrastructure Audit", Type: entity.ReportTypeSystem, Size: "3.2 MB", Date: "2023-10-15", GeneratedBy: "DevOps"},
			{ID: "4", Title: "Q2 2024 Stakeholder Update", Type: entity.ReportTypeGeneral, Size: "1.8 MB", Date: "2023-09-30", GeneratedBy: "CEO"},
			{ID: "5", Title: "MediAccess System Deep Scan Audit", Type: entity.ReportTypeAudit, Size: "1.5 MB", Date: today, GeneratedBy: "Auto-Scan"},
		},
		Guides: []entity.SystemGuide{
			{ID: "1", Title: "Cybersecurity Level 1 Support", Category: entity.GuideCategorySecurity, UploadedBy: "Admin", Date: "2023-10-25", Size: "2.4 MB"},
			{ID: "2", Title: "Network Troubleshooting Cheat Sheet", Category: entity.GuideCategoryTroubleshooting, UploadedBy: "Admin", Date: "2023-10-20", Size: "1.1 MB"},
			{ID: "3", Title: "New Employee Onboarding", Category: entity.GuideCategoryOnboarding, UploadedBy: "HR", Date: "2023-09-15", Size: "3.5 MB"},
			{ID: "4", Title: "Hardware Setup SOP", Category: entity.GuideCategorySetup, UploadedBy: "Admin", Date: "2023-08-10", Size: "4.2 MB"},
			{ID: "5", Title: "Website Audit Guide", Category: entity.GuideCategorySecurity, UploadedBy: "Admin", Date: "2023-11-01", Size: "1.8 MB"},
		},
		Notifications: []entity.AppNotification{
			{ID: "1", Title: "SLA Warning", Message: "API Latency check spiking > 200ms.", Time: "10 mins ago", Type: entity.NotificationWarning, CreatedAt: now.Add(-10 * time.Minute)},
			{ID: "2", Title: "New Proposal", Message: "Phase 3 Budget Adjustment submitted for review.", Time: "1 hour ago", Type: entity.NotificationInfo, CreatedAt: now.Add(-time.Hour)},
			{ID: "3", Title: "Backup Success", Message: "Daily database snapshot completed successfully.", Time: "4 hours ago", Type: entity.NotificationSuccess, Read: true, CreatedAt: now.Add(-4 * time.Hour)},
		},
		Logs: []entity.SystemLog{
			{ID: "1", Timestamp: now, Module: entity.LogModuleSystem, Message: "Initializing biometric subsystem...", Status: entity.LogStatusOK},
			{ID: "2", Timestamp: now, Module: entity.LogModuleDB, Message: "Replication sync with ZA-North", Status: entity.LogStatusOK},
			{ID: "3", Timestamp: now, Module: entity.LogModuleAuth, Message: "Service ready. Listening on port 443", Status: entity.LogStatusOK},
		},
		SLAChecks: []entity.SLACheck{
			{ID: "1", Category: "Infrastructure", Label: "Daily Backup Verification", Checked: true},
			{ID: "2", Category: "Infrastructure", Label: "Server Uptime Check (>99.9%)", Checked: true},
			{ID: "3", Category: "Security", Label: "Intrusion Detection Logs Review"},
			{ID: "4", Category: "Security", Label: "MFA Latency Test (< 2s)"},
			{ID: "5", Category: "Compliance", Label: "User Access & Privilege Audit"},
			{ID: "6", Category: "Performance", Label: "API Response Time Analysis"},
			{ID: "7", Category: "Infrastructure", Label: "Database Integrity Verification"},
			{ID: "8", Category: "Security", Label: "SSL/TLS Certificate Validity", Checked: true},
			{ID: "9", Category: "Support", Label: "Help Desk Ticket Resolution Rate"},
			{ID: "10", Category: "Compliance", Label: "Data Retention Policy Check"},
		},
	}
}
