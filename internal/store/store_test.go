package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"mediaccess/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	}
	return New(DefaultSeed(fixedNow), append(base, opts...)...)
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Observe(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestNew_Seed(t *testing.T) {
	s := newTestStore(t)
	snap := s.Snapshot()

	assert.Len(t, snap.Users, 7)
	assert.Len(t, snap.Patients, 3)
	assert.Len(t, snap.Trainees, 3)
	assert.Len(t, snap.Proposals, 3)
	assert.Len(t, snap.Tasks, 7)
	assert.Len(t, snap.Journals, 4)
	assert.Len(t, snap.Reports, 5)
	assert.Len(t, snap.Guides, 5)
	assert.Len(t, snap.Notifications, 3)
	assert.Len(t, snap.Logs, 3)
	assert.Equal(t, entity.SecurityLevelLow, snap.SecurityLevel)
	assert.False(t, snap.Offline)
	assert.Equal(t, "2024-03-14", snap.Reports[4].Date)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	s := newTestStore(t)

	snap := s.Snapshot()
	snap.Patients[0].Notes[0].Text = "tampered"
	snap.Users[0].Name = "tampered"

	p, err := s.Patient("1")
	require.NoError(t, err)
	assert.Equal(t, "Routine checkup. BP slightly elevated. Advised diet change.", p.Notes[0].Text)
	assert.Equal(t, "Dr. Sarah Smith", s.Users()[0].Name)
}

func TestAddUser(t *testing.T) {
	s := newTestStore(t)

	u, err := s.AddUser(entity.User{Name: "Ada", Email: "ada@mediaccess.io", Role: entity.RoleAdmin, Status: entity.UserStatusActive, LastActive: "Never"})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", u.ID)

	users := s.Users()
	assert.Len(t, users, 8)
	assert.Equal(t, "Ada", users[7].Name, "users are appended")

	logs := s.Logs()
	assert.Equal(t, "New user created: ada@mediaccess.io [ADMIN]", logs[0].Message)
	assert.Equal(t, entity.LogModuleSystem, logs[0].Module)
	assert.Equal(t, entity.LogStatusOK, logs[0].Status)
}

func TestAddUser_InvalidValues(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddUser(entity.User{Name: "X", Role: "ROOT", Status: entity.UserStatusActive})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = s.AddUser(entity.User{Name: "X", Role: entity.RoleStaff, Status: "Retired"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = s.AddUser(entity.User{ID: "1", Name: "X", Role: entity.RoleStaff, Status: entity.UserStatusActive})
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Len(t, s.Users(), 7)
	assert.Len(t, s.Logs(), 3)
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)

	u, err := s.UpdateUser("5", UserChanges{Status: ptr(entity.UserStatusActive)})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, u.Status)
	assert.Equal(t, "Nurse John Doe", u.Name)
	assert.Equal(t, "User profile updated: ID 5", s.Logs()[0].Message)
}

func TestUpdate_UnknownIDIsRejectedWithoutSideEffects(t *testing.T) {
	rec := &recorder{}
	s := newTestStore(t, WithObserver(rec))
	before := s.Snapshot()

	_, err := s.UpdateUser("404", UserChanges{Name: ptr("ghost")})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdatePatient("404", PatientChanges{Name: ptr("ghost")})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateTrainee("404", TraineeChanges{AssignedSupervisor: ptr("ghost")})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateTask("404", TaskChanges{Status: ptr(entity.TaskStatusApproved)})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.VoteProposal("404", entity.VoteYes)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DeleteGuide("404")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.MarkNotificationRead("404")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, before, s.Snapshot())
	assert.Empty(t, rec.kinds())
}

func TestAddPatient_PrependsAndLogs(t *testing.T) {
	s := newTestStore(t)

	p, err := s.AddPatient(entity.Patient{Name: "Test Patient", Vitals: entity.PlaceholderVitals()})
	require.NoError(t, err)
	assert.Equal(t, entity.PatientStatusWaiting, p.Status)

	patients := s.Patients()
	assert.Equal(t, "Test Patient", patients[0].Name)
	assert.Equal(t, entity.PatientStatusWaiting, patients[0].Status)
	assert.Equal(t, entity.LogModuleDB, s.Logs()[0].Module)
	assert.Equal(t, "Patient record created: gen-1 (Encrypted)", s.Logs()[0].Message)
}

func TestUpdatePatient_StatusFlow(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		status  entity.PatientStatus
		wantErr error
	}{
		{name: "waiting to triage", id: "2", status: entity.PatientStatusTriage},
		{name: "same status", id: "2", status: entity.PatientStatusWaiting},
		{name: "skip a step", id: "2", status: entity.PatientStatusConsultation, wantErr: ErrInvalidTransition},
		{name: "backwards", id: "1", status: entity.PatientStatusTriage, wantErr: ErrInvalidTransition},
		{name: "unknown status", id: "1", status: "Admitted", wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			p, err := s.UpdatePatient(tt.id, PatientChanges{Status: ptr(tt.status)})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, p.Status)
		})
	}
}

func TestUpdatePatient_NotesArePrepended(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdatePatient("1", PatientChanges{
		PrependNotes: []entity.PatientNote{{Date: "2024-03-14", Text: "newest", Author: "Dr. Test"}},
	})
	require.NoError(t, err)

	p, err := s.AddPatientNote("1", entity.PatientNote{Date: "2024-03-14", Text: "even newer", Author: "Dr. Test"})
	require.NoError(t, err)
	require.Len(t, p.Notes, 4)
	assert.Equal(t, "even newer", p.Notes[0].Text)
	assert.Equal(t, "newest", p.Notes[1].Text)
	assert.Equal(t, "Routine checkup. BP slightly elevated. Advised diet change.", p.Notes[2].Text)
}

func TestUpdatePatient_MergesVitalsPerReading(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.UpdatePatient("1", PatientChanges{BP: ptr("140/90")})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := s.UpdatePatient("1", PatientChanges{Temp: ptr("38.2")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := s.Patient("1")
	require.NoError(t, err)
	assert.Equal(t, entity.Vitals{BP: "140/90", HeartRate: "78", Temp: "38.2"}, p.Vitals)
}

func TestAdvancePatient(t *testing.T) {
	s := newTestStore(t)

	for _, want := range []entity.PatientStatus{
		entity.PatientStatusTriage,
		entity.PatientStatusConsultation,
		entity.PatientStatusObservation,
		entity.PatientStatusDischarged,
	} {
		p, err := s.AdvancePatient("2")
		require.NoError(t, err)
		assert.Equal(t, want, p.Status)
	}

	_, err := s.AdvancePatient("2")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateTrainee(t *testing.T) {
	s := newTestStore(t)

	tr, err := s.UpdateTrainee("3", TraineeChanges{AssignedSupervisor: ptr("Dr. Ian Malcolm")})
	require.NoError(t, err)
	assert.True(t, tr.HasSupervisor())

	tr, err = s.AddTraineeReview("1", entity.TraineeReview{Date: "2024-03-14", Comment: "Solid week.", Author: "Prof. Alan Grant"})
	require.NoError(t, err)
	require.Len(t, tr.Reviews, 2)
	assert.Equal(t, "Solid week.", tr.Reviews[1].Comment, "reviews are appended")

	_, err = s.UpdateTrainee("1", TraineeChanges{Performance: ptr(101)})
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = s.UpdateTrainee("1", TraineeChanges{SupervisorRating: ptr(0.5)})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestVoteProposal(t *testing.T) {
	s := newTestStore(t)
	logsBefore := len(s.Logs())

	p, err := s.VoteProposal("1", entity.VoteYes)
	require.NoError(t, err)
	assert.Equal(t, entity.Votes{Yes: 4, No: 1}, p.Votes)

	n := s.Notifications()[0]
	assert.Equal(t, "Vote Cast", n.Title)
	assert.Equal(t, entity.NotificationSuccess, n.Type)
	assert.False(t, n.Read)

	logs := s.Logs()
	assert.Len(t, logs, logsBefore+1)
	assert.Equal(t, entity.LogModuleAPI, logs[0].Module)
	assert.Equal(t, entity.LogStatusOK, logs[0].Status)
	assert.Equal(t, "Vote recorded on Proposal #1", logs[0].Message)
}

func TestVoteProposal_Closed(t *testing.T) {
	s := newTestStore(t)

	_, err := s.VoteProposal("2", entity.VoteNo)
	assert.ErrorIs(t, err, ErrProposalClosed)

	_, err = s.VoteProposal("1", "abstain")
	assert.ErrorIs(t, err, ErrInvalidValue)

	p, err := s.Proposal("2")
	require.NoError(t, err)
	assert.Equal(t, entity.Votes{Yes: 5, No: 0}, p.Votes)
}

func TestUpdateTask_Transitions(t *testing.T) {
	s := newTestStore(t)

	task, err := s.UpdateTask("1", TaskChanges{Status: ptr(entity.TaskStatusApproved)})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusApproved, task.Status)
	assert.Equal(t, "Task 1 status changed to Approved", s.Logs()[0].Message)

	_, err = s.UpdateTask("1", TaskChanges{Status: ptr(entity.TaskStatusRejected)})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = s.UpdateTask("1", TaskChanges{Status: ptr(entity.TaskStatusCompleted)})
	assert.NoError(t, err)

	logs := len(s.Logs())
	_, err = s.UpdateTask("5", TaskChanges{Title: ptr("License Renewal: Radiography Suite 2025")})
	require.NoError(t, err)
	assert.Len(t, s.Logs(), logs, "only status changes are logged")
}

func TestAddReport_NotifiesAndLogs(t *testing.T) {
	s := newTestStore(t)

	r, err := s.AddReport(entity.SystemReport{Title: "Weekly Ops", Type: entity.ReportTypeGeneral, Size: "0.4 MB", GeneratedBy: "Ops"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14", r.Date)

	assert.Equal(t, "Weekly Ops", s.Reports()[0].Title)
	assert.Equal(t, "Report Generated", s.Notifications()[0].Title)
	assert.Equal(t, "Weekly Ops is ready for download.", s.Notifications()[0].Message)
	assert.Equal(t, "Generated Report: Weekly Ops", s.Logs()[0].Message)
}

func TestJournalsAndGuides(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddJournal(entity.JournalArticle{Title: "Gait Analysis", Author: "UCT", Type: entity.JournalTypeResearch})
	require.NoError(t, err)
	assert.Equal(t, "Gait Analysis", s.Journals()[0].Title)
	assert.Equal(t, "New Research Journal indexed: Gait Analysis", s.Logs()[0].Message)

	_, err = s.AddJournal(entity.JournalArticle{Title: "Bad", Type: "Opinion"})
	assert.ErrorIs(t, err, ErrInvalidValue)

	g, err := s.AddGuide(entity.SystemGuide{Title: "Badge Printer SOP", Category: entity.GuideCategorySetup, UploadedBy: "Admin", Size: "1.2 MB"})
	require.NoError(t, err)
	assert.Equal(t, "System Guide uploaded: Badge Printer SOP", s.Logs()[0].Message)
	assert.Len(t, s.Guides(), 6)

	removed, err := s.DeleteGuide(g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Badge Printer SOP", removed.Title)
	assert.Len(t, s.Guides(), 5)
}

func TestLogRingBuffer(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 60; i++ {
		_, err := s.AddSystemLog(entity.LogModuleAPI, fmt.Sprintf("call %d", i), entity.LogStatusOK)
		require.NoError(t, err)
	}

	logs := s.Logs()
	require.Len(t, logs, LogCap)
	for i, l := range logs {
		assert.Equal(t, fmt.Sprintf("call %d", 59-i), l.Message)
	}
}

func TestNotificationCap(t *testing.T) {
	s := newTestStore(t, WithNotificationCap(4))

	for i := 0; i < 3; i++ {
		_, err := s.Notify(entity.NotificationInfo, "n", fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	ns := s.Notifications()
	require.Len(t, ns, 4)
	assert.Equal(t, "m2", ns[0].Message)
	assert.Equal(t, "SLA Warning", ns[3].Title, "oldest seeded entries are dropped first")
}

func TestMarkNotificationRead(t *testing.T) {
	s := newTestStore(t)
	unread := func() int {
		c := 0
		for _, n := range s.Notifications() {
			if !n.Read {
				c++
			}
		}
		return c
	}
	require.Equal(t, 2, unread())

	_, err := s.MarkNotificationRead("1")
	require.NoError(t, err)
	assert.Equal(t, 1, unread())

	_, err = s.MarkNotificationRead("3")
	require.NoError(t, err)
	assert.Equal(t, 1, unread(), "already read entries stay unchanged")

	ns := s.Notifications()
	assert.True(t, ns[0].Read)
	assert.False(t, ns[1].Read)
}

func TestToggles(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.ToggleOffline())
	assert.Equal(t, "Connection Lost. Switching to Local Cache.", s.Logs()[0].Message)
	assert.Equal(t, entity.LogStatusWarn, s.Logs()[0].Status)

	assert.False(t, s.ToggleOffline())
	assert.Equal(t, "Connection Restored.", s.Logs()[0].Message)
	assert.Equal(t, entity.LogModuleNetwork, s.Logs()[0].Module)

	assert.True(t, s.ToggleMobileMenu())
	assert.True(t, s.MobileMenuOpen())
}

func TestToggleSLACheck(t *testing.T) {
	s := newTestStore(t)

	check, err := s.ToggleSLACheck("3")
	require.NoError(t, err)
	assert.True(t, check.Checked)
	assert.True(t, s.SLAChecks()[2].Checked)

	check, err = s.ToggleSLACheck("3")
	require.NoError(t, err)
	assert.False(t, check.Checked)

	_, err = s.ToggleSLACheck("404")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, s.SLAChecks(), 10)

	// callers get copies
	s.SLAChecks()[0].Checked = false
	assert.True(t, s.SLAChecks()[0].Checked)
}

func TestObserver_ReceivesEventsInEmissionOrder(t *testing.T) {
	rec := &recorder{}
	s := newTestStore(t, WithObserver(rec))

	_, err := s.VoteProposal("1", entity.VoteNo)
	require.NoError(t, err)

	assert.Equal(t, []EventKind{EventNotification, EventLog, EventMutation}, rec.kinds())
	assert.Equal(t, "VoteProposal", rec.events[2].Operation)
	assert.Equal(t, "Vote Cast", rec.events[0].Notification.Title)
}

func TestConcurrentMutations(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.VoteProposal("1", entity.VoteYes)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	p, err := s.Proposal("1")
	require.NoError(t, err)
	assert.Equal(t, 23, p.Votes.Yes)
}
