// Package projection derives read-only views from store snapshots.
// Every function is pure: inputs are never modified and results share no
// backing arrays with them.
package projection

import (
	"errors"
	"sort"
	"strings"

	"mediaccess/internal/domain/entity"
)

var ErrUnknownProposalView = errors.New("unknown proposal view")

// UnreadCount counts notifications that have not been read
func UnreadCount(ns []entity.AppNotification) int {
	n := 0
	for _, item := range ns {
		if !item.Read {
			n++
		}
	}
	return n
}

// TaskFilter selects tasks. Empty Types matches every type.
type TaskFilter struct {
	Types       []entity.TaskType
	PendingOnly bool
}

// Task groupings used by the approvals console
var (
	RequestTaskTypes  = []entity.TaskType{entity.TaskTypeHardware, entity.TaskTypeSoftware, entity.TaskTypeAccess}
	ApprovalTaskTypes = []entity.TaskType{entity.TaskTypeSystemUpdate, entity.TaskTypeChartAudit}
)

// FilterTasks returns tasks matching f in their original order
func FilterTasks(tasks []entity.AdminTask, f TaskFilter) []entity.AdminTask {
	out := make([]entity.AdminTask, 0, len(tasks))
	for _, t := range tasks {
		if f.PendingOnly && !t.IsPending() {
			continue
		}
		if len(f.Types) > 0 && !containsType(f.Types, t.Type) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsType(types []entity.TaskType, t entity.TaskType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// PendingTaskCount counts tasks awaiting a decision
func PendingTaskCount(tasks []entity.AdminTask) int {
	n := 0
	for i := range tasks {
		if tasks[i].IsPending() {
			n++
		}
	}
	return n
}

// CriticalPendingCount counts pending tasks rated Critical
func CriticalPendingCount(tasks []entity.AdminTask) int {
	n := 0
	for i := range tasks {
		if tasks[i].IsCriticalPending() {
			n++
		}
	}
	return n
}

// ProposalView selects which proposals the board review lists
type ProposalView string

const (
	ProposalViewPending ProposalView = "Pending"
	ProposalViewHistory ProposalView = "History"
	ProposalViewAll     ProposalView = "All"
)

// ParseProposalView maps a query value to a view. Empty means All.
func ParseProposalView(v string) (ProposalView, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return ProposalViewAll, nil
	case "pending":
		return ProposalViewPending, nil
	case "history":
		return ProposalViewHistory, nil
	}
	return "", ErrUnknownProposalView
}

// FilterProposals applies a board review view
func FilterProposals(ps []entity.BoardProposal, view ProposalView) []entity.BoardProposal {
	out := make([]entity.BoardProposal, 0, len(ps))
	for _, p := range ps {
		switch view {
		case ProposalViewPending:
			if !p.IsPending() {
				continue
			}
		case ProposalViewHistory:
			if p.IsPending() {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// PendingProposalCount counts proposals still open for voting
func PendingProposalCount(ps []entity.BoardProposal) int {
	return len(FilterProposals(ps, ProposalViewPending))
}

// BoardColumn is one status lane of the patient Kanban board
type BoardColumn struct {
	Status   entity.PatientStatus `json:"status"`
	Patients []entity.Patient     `json:"patients"`
}

// PatientBoard groups patients by status. Every lane of the care flow is
// present, in flow order, and patients keep their list order within a lane.
func PatientBoard(ps []entity.Patient) []BoardColumn {
	cols := make([]BoardColumn, len(entity.PatientFlow))
	index := make(map[entity.PatientStatus]int, len(entity.PatientFlow))
	for i, st := range entity.PatientFlow {
		cols[i] = BoardColumn{Status: st, Patients: []entity.Patient{}}
		index[st] = i
	}
	for _, p := range ps {
		if i, ok := index[p.Status]; ok {
			cols[i].Patients = append(cols[i].Patients, p.Clone())
		}
	}
	return cols
}

// SearchPatients matches a case-insensitive substring of the patient name.
// An empty query returns every patient.
func SearchPatients(ps []entity.Patient, query string) []entity.Patient {
	q := strings.ToLower(query)
	out := make([]entity.Patient, 0, len(ps))
	for _, p := range ps {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// WaitingCount counts patients in the Waiting lane
func WaitingCount(ps []entity.Patient) int {
	n := 0
	for _, p := range ps {
		if p.Status == entity.PatientStatusWaiting {
			n++
		}
	}
	return n
}

// PatientUpdate is a chart note tagged with its patient
type PatientUpdate struct {
	PatientID   string             `json:"patient_id"`
	PatientName string             `json:"patient_name"`
	Note        entity.PatientNote `json:"note"`
}

// RecentPatientUpdates returns the latest chart notes across all patients,
// newest date first, at most limit entries
func RecentPatientUpdates(ps []entity.Patient, limit int) []PatientUpdate {
	var out []PatientUpdate
	for _, p := range ps {
		for _, n := range p.Notes {
			out = append(out, PatientUpdate{PatientID: p.ID, PatientName: p.Name, Note: n})
		}
	}
	// DateLayout sorts lexically in chronological order
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Note.Date > out[j].Note.Date
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []PatientUpdate{}
	}
	return out
}

// TraineesForSupervisor keeps trainees assigned to the given supervisor
func TraineesForSupervisor(ts []entity.Trainee, supervisor string) []entity.Trainee {
	out := make([]entity.Trainee, 0, len(ts))
	for _, t := range ts {
		if t.AssignedSupervisor == supervisor {
			out = append(out, t.Clone())
		}
	}
	return out
}

// SearchGuides matches a case-insensitive substring of the guide title
func SearchGuides(gs []entity.SystemGuide, query string) []entity.SystemGuide {
	q := strings.ToLower(query)
	out := make([]entity.SystemGuide, 0, len(gs))
	for _, g := range gs {
		if strings.Contains(strings.ToLower(g.Title), q) {
			out = append(out, g)
		}
	}
	return out
}

// FilterJournals keeps articles of the given type whose title contains query.
// An empty type matches both Medical and Research.
func FilterJournals(js []entity.JournalArticle, typ entity.JournalType, query string) []entity.JournalArticle {
	q := strings.ToLower(query)
	out := make([]entity.JournalArticle, 0, len(js))
	for _, j := range js {
		if typ != "" && j.Type != typ {
			continue
		}
		if !strings.Contains(strings.ToLower(j.Title), q) {
			continue
		}
		out = append(out, j)
	}
	return out
}
