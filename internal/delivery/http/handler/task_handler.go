package handler

import (
	"net/http"

	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
	}
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tasks, err := h.taskUsecase.ListTasks(r.Context(), query.Get("type"), query.Get("pending") == "true")
	if err != nil {
		writeError(w, err, "Failed to get tasks")
		return
	}

	response.Success(w, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (h *TaskHandler) ApproveTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskUsecase.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to approve task")
		return
	}

	response.Success(w, http.StatusOK, "Task approved", task)
}

func (h *TaskHandler) RejectTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskUsecase.Reject(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to reject task")
		return
	}

	response.Success(w, http.StatusOK, "Task rejected", task)
}

func (h *TaskHandler) RunAudit(w http.ResponseWriter, r *http.Request) {
	resp, err := h.taskUsecase.RunFullAudit(r.Context())
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		writeError(w, err, "Failed to run audit")
		return
	}

	response.Success(w, http.StatusCreated, "Audit complete", resp)
}

func (h *TaskHandler) GetSLAChecklist(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "SLA checklist retrieved successfully", h.taskUsecase.SLAChecklist(r.Context()))
}

func (h *TaskHandler) ToggleSLACheck(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.taskUsecase.ToggleSLACheck(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to toggle SLA check")
		return
	}

	response.Success(w, http.StatusOK, "SLA check toggled", checklist)
}
