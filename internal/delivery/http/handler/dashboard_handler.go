package handler

import (
	"net/http"

	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"

	"github.com/gorilla/mux"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", h.dashboardUsecase.Dashboard(r.Context(), roleFrom(r)))
}

func (h *DashboardHandler) GetState(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "State retrieved successfully", h.dashboardUsecase.State(r.Context()))
}

func (h *DashboardHandler) ToggleOffline(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Connectivity toggled", h.dashboardUsecase.ToggleOffline(r.Context()))
}

func (h *DashboardHandler) ToggleMobileMenu(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Menu toggled", h.dashboardUsecase.ToggleMobileMenu(r.Context()))
}

func (h *DashboardHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Notifications retrieved successfully", h.dashboardUsecase.Notifications(r.Context()))
}

func (h *DashboardHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	n, err := h.dashboardUsecase.MarkNotificationRead(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to mark notification as read")
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", n)
}
