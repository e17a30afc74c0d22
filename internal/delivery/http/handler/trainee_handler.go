package handler

import (
	"net/http"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
	"mediaccess/pkg/validator"

	"github.com/gorilla/mux"
)

type TraineeHandler struct {
	traineeUsecase usecase.TraineeUsecase
	validator      *validator.CustomValidator
}

func NewTraineeHandler(traineeUsecase usecase.TraineeUsecase, validator *validator.CustomValidator) *TraineeHandler {
	return &TraineeHandler{
		traineeUsecase: traineeUsecase,
		validator:      validator,
	}
}

func (h *TraineeHandler) GetTrainees(w http.ResponseWriter, r *http.Request) {
	mine := r.URL.Query().Get("mine") == "true"
	response.Success(w, http.StatusOK, "Trainees retrieved successfully", h.traineeUsecase.ListTrainees(r.Context(), mine))
}

func (h *TraineeHandler) GetSupervisors(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Supervisors retrieved successfully", h.traineeUsecase.Supervisors(r.Context()))
}

func (h *TraineeHandler) AssignSupervisor(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignSupervisorRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	trainee, err := h.traineeUsecase.AssignSupervisor(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to assign supervisor")
		return
	}

	response.Success(w, http.StatusOK, "Supervisor assigned successfully", trainee)
}

func (h *TraineeHandler) LogReview(w http.ResponseWriter, r *http.Request) {
	var req dto.TraineeReviewRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	trainee, err := h.traineeUsecase.LogReview(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to log review")
		return
	}

	response.Success(w, http.StatusCreated, "Review logged successfully", trainee)
}
