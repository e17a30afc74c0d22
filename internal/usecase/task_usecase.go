package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/projection"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrUnknownTaskType  = errors.New("unknown task type")
	ErrSLACheckNotFound = errors.New("sla check not found")
)

// AuditSteps are the phases reported while a full audit runs
var AuditSteps = []string{"Starting", "Security", "Integrity", "Compiling"}

type TaskUsecase interface {
	ListTasks(ctx context.Context, taskType string, pendingOnly bool) (*dto.TaskListResponse, error)
	Approve(ctx context.Context, id string) (*entity.AdminTask, error)
	Reject(ctx context.Context, id string) (*entity.AdminTask, error)
	RunFullAudit(ctx context.Context) (*dto.AuditResponse, error)
	SLAChecklist(ctx context.Context) *dto.SLAChecklistResponse
	ToggleSLACheck(ctx context.Context, id string) (*dto.SLAChecklistResponse, error)
}

type taskUsecase struct {
	store     *store.Store
	log       *logrus.Logger
	stepDelay time.Duration
}

// NewTaskUsecase creates the approvals use case. stepDelay paces the audit phases.
func NewTaskUsecase(s *store.Store, log *logrus.Logger, stepDelay time.Duration) TaskUsecase {
	return &taskUsecase{store: s, log: log, stepDelay: stepDelay}
}

// parseTaskFilter accepts a task type or one of the console groups
// "requests" and "approvals". Empty matches everything.
func parseTaskFilter(taskType string) ([]entity.TaskType, error) {
	switch strings.ToLower(taskType) {
	case "", "all":
		return nil, nil
	case "requests":
		return projection.RequestTaskTypes, nil
	case "approvals":
		return projection.ApprovalTaskTypes, nil
	}
	t := entity.TaskType(taskType)
	if !t.Valid() {
		return nil, ErrUnknownTaskType
	}
	return []entity.TaskType{t}, nil
}

func (u *taskUsecase) ListTasks(ctx context.Context, taskType string, pendingOnly bool) (*dto.TaskListResponse, error) {
	types, err := parseTaskFilter(taskType)
	if err != nil {
		return nil, err
	}

	all := u.store.Tasks()
	return &dto.TaskListResponse{
		Tasks:         projection.FilterTasks(all, projection.TaskFilter{Types: types, PendingOnly: pendingOnly}),
		PendingCount:  projection.PendingTaskCount(all),
		CriticalCount: projection.CriticalPendingCount(all),
		SLA:           projection.SummarizeSLA(all, u.store.SLAChecks()),
	}, nil
}

func (u *taskUsecase) Approve(ctx context.Context, id string) (*entity.AdminTask, error) {
	return u.decide(id, entity.TaskStatusApproved)
}

func (u *taskUsecase) Reject(ctx context.Context, id string) (*entity.AdminTask, error) {
	return u.decide(id, entity.TaskStatusRejected)
}

func (u *taskUsecase) decide(id string, status entity.TaskStatus) (*entity.AdminTask, error) {
	t, err := u.store.UpdateTask(id, store.TaskChanges{Status: &status})
	if err != nil {
		u.log.Warnf("Failed to set task %s to %s: %+v", id, status, err)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (u *taskUsecase) SLAChecklist(ctx context.Context) *dto.SLAChecklistResponse {
	return u.checklist()
}

func (u *taskUsecase) ToggleSLACheck(ctx context.Context, id string) (*dto.SLAChecklistResponse, error) {
	if _, err := u.store.ToggleSLACheck(id); err != nil {
		u.log.Warnf("Failed to toggle sla check %s: %+v", id, err)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSLACheckNotFound
		}
		return nil, err
	}
	return u.checklist(), nil
}

func (u *taskUsecase) checklist() *dto.SLAChecklistResponse {
	checks := u.store.SLAChecks()
	return &dto.SLAChecklistResponse{
		Checks: checks,
		SLA:    projection.SummarizeSLA(u.store.Tasks(), checks),
	}
}

// RunFullAudit walks the audit phases and then files both audit reports.
// Cancelling ctx before the last phase files nothing.
func (u *taskUsecase) RunFullAudit(ctx context.Context) (*dto.AuditResponse, error) {
	resp := &dto.AuditResponse{}
	for _, step := range AuditSteps {
		resp.Steps = append(resp.Steps, step)
		u.log.Debugf("Audit step %d/%d: %s", len(resp.Steps), len(AuditSteps), step)

		if err := sleepCtx(ctx, u.stepDelay); err != nil {
			u.log.Warnf("Failed to complete audit: %+v", err)
			return nil, err
		}
	}

	reports, err := u.store.RunFullAudit()
	if err != nil {
		u.log.Warnf("Failed to generate audit reports: %+v", err)
		return nil, err
	}
	resp.Reports = reports
	return resp, nil
}

// sleepCtx waits for d or until ctx is done, whichever comes first
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
