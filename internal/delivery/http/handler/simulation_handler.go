package handler

import (
	"net/http"

	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
)

type SimulationHandler struct {
	simulationUsecase usecase.SimulationUsecase
}

func NewSimulationHandler(simulationUsecase usecase.SimulationUsecase) *SimulationHandler {
	return &SimulationHandler{
		simulationUsecase: simulationUsecase,
	}
}

func (h *SimulationHandler) CyberAttack(w http.ResponseWriter, r *http.Request) {
	task, err := h.simulationUsecase.TriggerCyberAttack(r.Context())
	if err != nil {
		writeError(w, err, "Failed to start cyber attack simulation")
		return
	}

	response.Success(w, http.StatusCreated, "Cyber attack simulation started", task)
}

func (h *SimulationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	level, err := h.simulationUsecase.ResolveSecurityEvent(r.Context())
	if err != nil {
		writeError(w, err, "Failed to resolve security event")
		return
	}

	response.Success(w, http.StatusOK, "Security event resolved", map[string]interface{}{"security_level": level})
}

func (h *SimulationHandler) PatientSurge(w http.ResponseWriter, r *http.Request) {
	patients, err := h.simulationUsecase.TriggerPatientSurge(r.Context())
	if err != nil {
		writeError(w, err, "Failed to start patient surge")
		return
	}

	response.Success(w, http.StatusCreated, "Patient surge admitted", patients)
}
