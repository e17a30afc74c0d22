package handler

import (
	"net/http"
	"strconv"

	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
)

// AuditLogHandler serves the system log feed and its database archive
type AuditLogHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewAuditLogHandler(dashboardUsecase usecase.DashboardUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *AuditLogHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Logs retrieved successfully", h.dashboardUsecase.Logs(r.Context()))
}

func (h *AuditLogHandler) GetArchivedLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = n
	}

	logs, err := h.dashboardUsecase.ArchivedLogs(r.Context(), r.URL.Query().Get("module"), limit)
	if err != nil {
		writeError(w, err, "Failed to get archived logs")
		return
	}

	response.Success(w, http.StatusOK, "Archived logs retrieved successfully", logs)
}
