package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"mediaccess/internal/assistant"
	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/knowledge"
	"mediaccess/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Trainees
// ---------------------------------------------------------------------------

func TestTraineeUsecase_ListMine(t *testing.T) {
	uc := NewTraineeUsecase(newTestStore(t), quietLogger(), "Prof. Alan Grant")
	ctx := context.Background()

	assert.Len(t, uc.ListTrainees(ctx, false), 3)

	mine := uc.ListTrainees(ctx, true)
	require.Len(t, mine, 1)
	assert.Equal(t, "Dr. Emily Chen", mine[0].Name)
}

func TestTraineeUsecase_AssignSupervisor(t *testing.T) {
	uc := NewTraineeUsecase(newTestStore(t), quietLogger(), "Prof. Alan Grant")
	ctx := context.Background()

	tr, err := uc.AssignSupervisor(ctx, "3", &dto.AssignSupervisorRequest{Supervisor: "Dr. Ian Malcolm"})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ian Malcolm", tr.AssignedSupervisor)

	_, err = uc.AssignSupervisor(ctx, "3", &dto.AssignSupervisorRequest{Supervisor: "Dr. Nobody"})
	assert.ErrorIs(t, err, ErrUnknownSupervisor)

	_, err = uc.AssignSupervisor(ctx, "404", &dto.AssignSupervisorRequest{Supervisor: "Dr. Ian Malcolm"})
	assert.ErrorIs(t, err, ErrTraineeNotFound)

	supervisors := uc.Supervisors(ctx)
	supervisors[0] = "mutated"
	assert.Equal(t, "Prof. Alan Grant", uc.Supervisors(ctx)[0])
}

func TestTraineeUsecase_LogReview(t *testing.T) {
	uc := NewTraineeUsecase(newTestStore(t), quietLogger(), "Dr. Ellie Sattler")

	tr, err := uc.LogReview(context.Background(), "2", &dto.TraineeReviewRequest{Comment: "Solid progress on the cohort study."})
	require.NoError(t, err)
	require.Len(t, tr.Reviews, 1)
	assert.Equal(t, "Dr. Ellie Sattler", tr.Reviews[0].Author)
	assert.Equal(t, "2024-03-14", tr.Reviews[0].Date)

	_, err = uc.LogReview(context.Background(), "404", &dto.TraineeReviewRequest{Comment: "x"})
	assert.ErrorIs(t, err, ErrTraineeNotFound)
}

// ---------------------------------------------------------------------------
// Proposals
// ---------------------------------------------------------------------------

func TestProposalUsecase_ListAndVote(t *testing.T) {
	uc := NewProposalUsecase(newTestStore(t), quietLogger())
	ctx := context.Background()

	pending, err := uc.ListProposals(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	history, err := uc.ListProposals(ctx, "History")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, err = uc.ListProposals(ctx, "archived")
	assert.Error(t, err)

	p, err := uc.Vote(ctx, "1", &dto.VoteRequest{Choice: "yes"})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Votes.Yes)

	_, err = uc.Vote(ctx, "2", &dto.VoteRequest{Choice: "no"})
	assert.ErrorIs(t, err, store.ErrProposalClosed)

	_, err = uc.Vote(ctx, "404", &dto.VoteRequest{Choice: "no"})
	assert.ErrorIs(t, err, ErrProposalNotFound)
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

func TestTaskUsecase_ListTasks(t *testing.T) {
	uc := NewTaskUsecase(newTestStore(t), quietLogger(), 0)
	ctx := context.Background()

	all, err := uc.ListTasks(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, all.Tasks, 7)
	assert.Equal(t, 6, all.PendingCount)
	assert.Equal(t, 2, all.CriticalCount)

	requests, err := uc.ListTasks(ctx, "requests", false)
	require.NoError(t, err)
	assert.Len(t, requests.Tasks, 4)

	approvals, err := uc.ListTasks(ctx, "approvals", true)
	require.NoError(t, err)
	assert.Len(t, approvals.Tasks, 2)

	_, err = uc.ListTasks(ctx, "Catering", false)
	assert.ErrorIs(t, err, ErrUnknownTaskType)
}

func TestTaskUsecase_Decide(t *testing.T) {
	uc := NewTaskUsecase(newTestStore(t), quietLogger(), 0)
	ctx := context.Background()

	task, err := uc.Approve(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusApproved, task.Status)

	task, err = uc.Reject(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusRejected, task.Status)

	_, err = uc.Approve(ctx, "2")
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	_, err = uc.Reject(ctx, "404")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskUsecase_SLAChecklist(t *testing.T) {
	uc := NewTaskUsecase(newTestStore(t), quietLogger(), 0)
	ctx := context.Background()

	list := uc.SLAChecklist(ctx)
	require.Len(t, list.Checks, 10)
	assert.Equal(t, 3, list.SLA.ChecksDone)
	assert.Equal(t, 30, list.SLA.ChecklistProgress)

	list, err := uc.ToggleSLACheck(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, 4, list.SLA.ChecksDone)
	assert.Equal(t, 40, list.SLA.ChecklistProgress)

	_, err = uc.ToggleSLACheck(ctx, "11")
	assert.ErrorIs(t, err, ErrSLACheckNotFound)
}

func TestTaskUsecase_RunFullAudit(t *testing.T) {
	s := newTestStore(t)
	uc := NewTaskUsecase(s, quietLogger(), 0)

	resp, err := uc.RunFullAudit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AuditSteps, resp.Steps)
	require.Len(t, resp.Reports, 2)
	assert.Len(t, s.Reports(), 7)
}

func TestTaskUsecase_RunFullAuditCancelled(t *testing.T) {
	s := newTestStore(t)
	uc := NewTaskUsecase(s, quietLogger(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.RunFullAudit(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, s.Reports(), 5)
}

func TestTaskUsecase_RunFullAuditCancelledMidStep(t *testing.T) {
	s := newTestStore(t)
	uc := NewTaskUsecase(s, quietLogger(), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := uc.RunFullAudit(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Len(t, s.Reports(), 5)
}

func TestSleepCtx(t *testing.T) {
	require.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}

// ---------------------------------------------------------------------------
// Publications
// ---------------------------------------------------------------------------

type fakeFiles struct {
	objects map[string][]byte
	putErr  error
	deleted []string
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{objects: map[string][]byte{}}
}

func (f *fakeFiles) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = b
	return nil
}

func (f *fakeFiles) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.objects, key)
	return nil
}

func TestPublicationUsecase_Journals(t *testing.T) {
	uc := NewPublicationUsecase(newTestStore(t), quietLogger(), nil)
	ctx := context.Background()

	assert.Len(t, uc.ListJournals(ctx, "Research", ""), 2)
	assert.Len(t, uc.ListJournals(ctx, "", "privacy"), 1)

	j, err := uc.PublishJournal(ctx, &dto.PublishJournalRequest{Title: "Wait Times", Author: "Ops", Type: "Medical"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-14", j.Date)
	assert.Len(t, uc.ListJournals(ctx, "Medical", ""), 3)
}

func TestPublicationUsecase_UploadGuideStoresFile(t *testing.T) {
	files := newFakeFiles()
	uc := NewPublicationUsecase(newTestStore(t), quietLogger(), files)
	ctx := context.Background()

	g, err := uc.UploadGuide(ctx, &dto.UploadGuideRequest{
		Title:    "VPN Setup",
		Category: "Setup",
		FileName: "../vpn.pdf",
		Content:  []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "guides/gen-1/vpn.pdf", g.ObjectKey)
	assert.Equal(t, "0.0 MB", g.Size)
	assert.Equal(t, "Admin", g.UploadedBy)
	assert.Contains(t, files.objects, g.ObjectKey)

	require.NoError(t, uc.DeleteGuide(ctx, g.ID))
	assert.Equal(t, []string{g.ObjectKey}, files.deleted)
	assert.ErrorIs(t, uc.DeleteGuide(ctx, g.ID), ErrGuideNotFound)
}

func TestPublicationUsecase_UploadGuideWithoutBody(t *testing.T) {
	uc := NewPublicationUsecase(newTestStore(t), quietLogger(), nil)

	g, err := uc.UploadGuide(context.Background(), &dto.UploadGuideRequest{Title: "Badge Policy", Category: "Onboarding"})
	require.NoError(t, err)
	assert.Equal(t, "1.2 MB", g.Size)
	assert.Empty(t, g.ObjectKey)
	assert.Len(t, uc.ListGuides(context.Background(), "badge"), 1)
}

func TestPublicationUsecase_UploadGuideFailures(t *testing.T) {
	files := newFakeFiles()
	uc := NewPublicationUsecase(newTestStore(t), quietLogger(), files)
	ctx := context.Background()

	// rejected by the store after the file was written: the object is removed
	_, err := uc.UploadGuide(ctx, &dto.UploadGuideRequest{Title: "x", Category: "Finance", Content: []byte("a")})
	assert.ErrorIs(t, err, store.ErrInvalidValue)
	assert.Empty(t, files.objects)
	assert.Len(t, files.deleted, 1)

	files.putErr = errors.New("bucket gone")
	_, err = uc.UploadGuide(ctx, &dto.UploadGuideRequest{Title: "y", Category: "Setup", Content: []byte("a")})
	assert.Error(t, err)
	assert.Len(t, uc.ListGuides(ctx, ""), 5)
}

// ---------------------------------------------------------------------------
// Simulations
// ---------------------------------------------------------------------------

func TestSimulationUsecase_CyberAttackLifecycle(t *testing.T) {
	s := newTestStore(t)
	uc := NewSimulationUsecase(s, quietLogger())
	ctx := context.Background()

	task, err := uc.TriggerCyberAttack(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.SLACritical, task.SLARating)
	assert.Equal(t, entity.SecurityLevelCritical, s.SecurityLevel())

	_, err = uc.TriggerCyberAttack(ctx)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	level, err := uc.ResolveSecurityEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.SecurityLevelLow, level)

	_, err = uc.ResolveSecurityEvent(ctx)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
}

func TestSimulationUsecase_PatientSurge(t *testing.T) {
	s := newTestStore(t)
	uc := NewSimulationUsecase(s, quietLogger())

	batch, err := uc.TriggerPatientSurge(context.Background())
	require.NoError(t, err)
	assert.Len(t, batch, store.SurgeSize)
	assert.Len(t, s.Patients(), 3+store.SurgeSize)
}

// ---------------------------------------------------------------------------
// Financials
// ---------------------------------------------------------------------------

func TestFinancialUsecase_Outlook(t *testing.T) {
	uc := NewFinancialUsecase(quietLogger())

	_, err := uc.Outlook(context.Background(), entity.RoleStaff)
	assert.ErrorIs(t, err, ErrForbidden)

	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleInvestor, entity.RolePartner} {
		out, err := uc.Outlook(context.Background(), role)
		require.NoError(t, err, role)
		assert.NotEmpty(t, out.Projections)
		assert.True(t, out.TotalUSD.GreaterThan(decimal.Zero))
	}
}

// ---------------------------------------------------------------------------
// Assistant
// ---------------------------------------------------------------------------

type scriptedGenerator struct {
	reply    string
	err      error
	requests []assistant.Request
}

func (g *scriptedGenerator) Generate(_ context.Context, req assistant.Request) (string, error) {
	g.requests = append(g.requests, req)
	return g.reply, g.err
}

func (g *scriptedGenerator) Stream(_ context.Context, req assistant.Request) <-chan assistant.Chunk {
	g.requests = append(g.requests, req)
	ch := make(chan assistant.Chunk, 2)
	if g.err != nil {
		ch <- assistant.Chunk{Err: g.err}
	} else {
		ch <- assistant.Chunk{Text: g.reply}
	}
	close(ch)
	return ch
}

func newAssistantUsecase(s *store.Store, gen assistant.Generator) AssistantUsecase {
	kb := knowledge.MustLoad()
	a := assistant.New(gen, kb, assistant.Config{Timeout: time.Second}, quietLogger(), s.Offline)
	return NewAssistantUsecase(s, quietLogger(), a, kb)
}

func TestAssistantUsecase_DocumentsByRole(t *testing.T) {
	uc := newAssistantUsecase(newTestStore(t), &scriptedGenerator{})
	ctx := context.Background()

	staffDocs := uc.ListDocuments(ctx, entity.RoleStaff)
	investorDocs := uc.ListDocuments(ctx, entity.RoleInvestor)
	assert.Len(t, investorDocs, len(staffDocs)+2)
	for _, d := range staffDocs {
		assert.False(t, d.Confidential, d.ID)
	}

	_, err := uc.GetDocument(ctx, entity.RoleStaff, "proposal")
	assert.ErrorIs(t, err, ErrForbidden)

	doc, err := uc.GetDocument(ctx, entity.RoleInvestor, "proposal")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Body)

	_, err = uc.GetDocument(ctx, entity.RoleAdmin, "nope")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestAssistantUsecase_Summarize(t *testing.T) {
	gen := &scriptedGenerator{reply: "Short summary."}
	uc := newAssistantUsecase(newTestStore(t), gen)
	ctx := context.Background()

	reply, err := uc.Summarize(ctx, entity.RoleStaff, &dto.SummarizeRequest{DocumentID: "devops_guide"})
	require.NoError(t, err)
	assert.Equal(t, "Short summary.", reply.Text)
	assert.False(t, reply.Fallback)

	_, err = uc.Summarize(ctx, entity.RoleStaff, &dto.SummarizeRequest{DocumentID: "technical"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = uc.Summarize(ctx, entity.RoleStaff, &dto.SummarizeRequest{Text: "Raw text to condense."})
	require.NoError(t, err)
	require.Len(t, gen.requests, 2)
	assert.Contains(t, gen.requests[1].Messages[len(gen.requests[1].Messages)-1].Text, "Raw text to condense.")
}

func TestAssistantUsecase_ChatSeesLiveState(t *testing.T) {
	s := newTestStore(t)
	gen := &scriptedGenerator{reply: "All systems nominal."}
	uc := newAssistantUsecase(s, gen)
	ctx := context.Background()

	_, err := s.TriggerCyberAttack()
	require.NoError(t, err)

	admin := ChatOwner(entity.RoleAdmin, "")
	reply := uc.Chat(ctx, admin, &dto.ChatRequest{SessionID: "s1", Message: "Status?"})
	assert.Equal(t, "All systems nominal.", reply.Text)
	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].SystemInstruction, "Current Security Level: Critical")

	transcript := uc.Transcript(ctx, admin, "s1")
	require.Len(t, transcript, 3)
	assert.Equal(t, assistant.Greeting, transcript[0].Text)
	assert.Equal(t, "All systems nominal.", transcript[2].Text)

	uc.ResetChat(ctx, admin, "s1")
	assert.Len(t, uc.Transcript(ctx, admin, "s1"), 1)
}

func TestAssistantUsecase_SessionsAreScopedToOwner(t *testing.T) {
	gen := &scriptedGenerator{reply: "Noted."}
	uc := newAssistantUsecase(newTestStore(t), gen)
	ctx := context.Background()

	admin := ChatOwner(entity.RoleAdmin, "")
	uc.Chat(ctx, admin, &dto.ChatRequest{SessionID: "s1", Message: "Confidential question"})

	assert.Len(t, uc.Transcript(ctx, admin, "s1"), 3)
	assert.Len(t, uc.Transcript(ctx, ChatOwner(entity.RoleStaff, ""), "s1"), 1)
	assert.Len(t, uc.Transcript(ctx, ChatOwner(entity.RoleAdmin, "tok-1"), "s1"), 1)

	uc.ResetChat(ctx, ChatOwner(entity.RoleStaff, ""), "s1")
	assert.Len(t, uc.Transcript(ctx, admin, "s1"), 3)
}

func TestChatOwner(t *testing.T) {
	assert.Equal(t, "role:INVESTOR", ChatOwner(entity.RoleInvestor, ""))
	assert.Equal(t, "token:abc", ChatOwner(entity.RoleInvestor, "abc"))
}

func TestAssistantUsecase_FallbackWhenOffline(t *testing.T) {
	s := newTestStore(t)
	s.ToggleOffline()
	gen := &scriptedGenerator{reply: "unused"}
	uc := newAssistantUsecase(s, gen)
	ctx := context.Background()

	reply := uc.AskCompliance(ctx, &dto.ComplianceRequest{Question: "Is biometric data PII?"})
	assert.True(t, reply.Fallback)
	assert.Equal(t, assistant.FallbackCompliance, reply.Text)

	var events []assistant.StreamEvent
	for ev := range uc.ChatStream(ctx, ChatOwner(entity.RoleStaff, ""), &dto.ChatRequest{SessionID: "s2", Message: "hi"}) {
		events = append(events, ev)
	}
	require.NotEmpty(t, events)
	assert.True(t, events[len(events)-1].Fallback)
	assert.Empty(t, gen.requests)
}

func TestAssistantUsecase_AnalyzeLog(t *testing.T) {
	gen := &scriptedGenerator{err: errors.New("quota exceeded")}
	uc := newAssistantUsecase(newTestStore(t), gen)

	reply := uc.AnalyzeLog(context.Background(), &dto.AnalyzeLogRequest{Log: "[SEC] DDoS Attack Signature detected"})
	assert.True(t, reply.Fallback)
	assert.Equal(t, assistant.FallbackAnalysis, reply.Text)
}

// ---------------------------------------------------------------------------
// Developer API
// ---------------------------------------------------------------------------

func TestDeveloperUsecase_TryEndpoint(t *testing.T) {
	s := newTestStore(t)
	uc := NewDeveloperUsecase(s, quietLogger())
	ctx := context.Background()

	assert.Len(t, uc.Endpoints(ctx), 3)

	resp, err := uc.TryEndpoint(ctx, &dto.TryEndpointRequest{Method: "GET", Path: "/api/v1/patients/1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, 45, resp.LatencyMS)
	body := resp.Body.(map[string]interface{})
	assert.Equal(t, "1", body["id"])
	assert.Equal(t, "2023-10-25", body["last_visit"])

	resp, err = uc.TryEndpoint(ctx, &dto.TryEndpointRequest{Method: "post", Path: "/api/v1/auth/token"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Body.(map[string]interface{})["type"])

	_, err = uc.TryEndpoint(ctx, &dto.TryEndpointRequest{Method: "GET", Path: "/api/v1/auth/token"})
	assert.ErrorIs(t, err, ErrUnknownEndpoint)
}

func TestDeveloperUsecase_OfflineTimesOut(t *testing.T) {
	s := newTestStore(t)
	s.ToggleOffline()
	uc := NewDeveloperUsecase(s, quietLogger())

	resp, err := uc.TryEndpoint(context.Background(), &dto.TryEndpointRequest{Method: "POST", Path: "/api/v1/biometric/verify"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
	assert.Zero(t, resp.LatencyMS)
	assert.Equal(t, "Gateway unreachable", resp.Body.(map[string]string)["message"])
}

func TestPathMatches(t *testing.T) {
	assert.True(t, pathMatches("/api/v1/patients/{id}", "/api/v1/patients/abc/"))
	assert.False(t, pathMatches("/api/v1/patients/{id}", "/api/v1/patients"))
	assert.False(t, pathMatches("/api/v1/auth/token", "/api/v1/auth/tokens"))
	assert.False(t, strings.Contains(APIVersion, " "))
}
