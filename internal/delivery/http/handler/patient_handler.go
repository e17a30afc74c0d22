package handler

import (
	"net/http"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
	"mediaccess/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// GetPatients lists patients matching ?q=, or the status board with ?view=board
func (h *PatientHandler) GetPatients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	switch query.Get("view") {
	case "", "list":
		response.Success(w, http.StatusOK, "Patients retrieved successfully", h.patientUsecase.ListPatients(r.Context(), query.Get("q")))
	case "board":
		response.Success(w, http.StatusOK, "Patient board retrieved successfully", h.patientUsecase.Board(r.Context()))
	default:
		response.Error(w, http.StatusBadRequest, "Invalid view", nil)
	}
}

func (h *PatientHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *PatientHandler) UpdateChart(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateChartRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpdateChart(r.Context(), roleFrom(r), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to update chart")
		return
	}

	response.Success(w, http.StatusOK, "Chart updated successfully", patient)
}

func (h *PatientHandler) AdvancePatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientUsecase.AdvancePatient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to advance patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient advanced successfully", patient)
}

func (h *PatientHandler) Dictate(w http.ResponseWriter, r *http.Request) {
	var req dto.DictationRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	resp, err := h.patientUsecase.Dictate(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to transcribe dictation")
		return
	}

	response.Success(w, http.StatusOK, "Dictation transcribed", resp)
}
