package dto

import (
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/projection"
)

type TaskListResponse struct {
	Tasks         []entity.AdminTask    `json:"tasks"`
	PendingCount  int                   `json:"pending_count"`
	CriticalCount int                   `json:"critical_count"`
	SLA           projection.SLASummary `json:"sla"`
}

type AuditResponse struct {
	Steps   []string              `json:"steps"`
	Reports []entity.SystemReport `json:"reports"`
}

type SLAChecklistResponse struct {
	Checks []entity.SLACheck     `json:"checks"`
	SLA    projection.SLASummary `json:"sla"`
}
