package entity

// TaskType categorizes an administrative task
type TaskType string

const (
	TaskTypeHardware     TaskType = "Hardware"
	TaskTypeSoftware     TaskType = "Software"
	TaskTypeAccess       TaskType = "Access"
	TaskTypeSystemUpdate TaskType = "SystemUpdate"
	TaskTypeChartAudit   TaskType = "ChartAudit"
)

// Valid reports whether t is one of the enumerated task types
func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeHardware, TaskTypeSoftware, TaskTypeAccess, TaskTypeSystemUpdate, TaskTypeChartAudit:
		return true
	}
	return false
}

// SLARating is the urgency of a task
type SLARating string

const (
	SLACritical SLARating = "Critical"
	SLAHigh     SLARating = "High"
	SLAMedium   SLARating = "Medium"
	SLALow      SLARating = "Low"
)

// Valid reports whether r is one of the enumerated ratings
func (r SLARating) Valid() bool {
	switch r {
	case SLACritical, SLAHigh, SLAMedium, SLALow:
		return true
	}
	return false
}

// TaskStatus represents where a task is in its approval lifecycle
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusApproved  TaskStatus = "Approved"
	TaskStatusCompleted TaskStatus = "Completed"
	TaskStatusRejected  TaskStatus = "Rejected"
)

// Valid reports whether s is one of the enumerated statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusApproved, TaskStatusCompleted, TaskStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a task in s may move to next
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch s {
	case TaskStatusPending:
		return next == TaskStatusApproved || next == TaskStatusRejected
	case TaskStatusApproved:
		return next == TaskStatusCompleted
	}
	return false
}

// AdminTask represents an item in the administrator approval queue
type AdminTask struct {
	ID        string     `json:"id"`
	Type      TaskType   `json:"type"`
	Title     string     `json:"title"`
	Requester string     `json:"requester"`
	SLARating SLARating  `json:"sla_rating"`
	Status    TaskStatus `json:"status"`
	Date      string     `json:"date"`
}

// IsPending checks if the task awaits a decision
func (t *AdminTask) IsPending() bool {
	return t.Status == TaskStatusPending
}

// IsCriticalPending checks if the task is both pending and critical
func (t *AdminTask) IsCriticalPending() bool {
	return t.IsPending() && t.SLARating == SLACritical
}

// SLACheck is one item of the recurring SLA checklist on the approvals console
type SLACheck struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Label    string `json:"label"`
	Checked  bool   `json:"checked"`
}
