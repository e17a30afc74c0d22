package handler

import (
	"net/http"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
	"mediaccess/pkg/validator"
)

type DeveloperHandler struct {
	developerUsecase usecase.DeveloperUsecase
	validator        *validator.CustomValidator
}

func NewDeveloperHandler(developerUsecase usecase.DeveloperUsecase, validator *validator.CustomValidator) *DeveloperHandler {
	return &DeveloperHandler{
		developerUsecase: developerUsecase,
		validator:        validator,
	}
}

func (h *DeveloperHandler) GetEndpoints(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Endpoints retrieved successfully", map[string]interface{}{
		"version":   usecase.APIVersion,
		"endpoints": h.developerUsecase.Endpoints(r.Context()),
	})
}

// TryEndpoint always answers 200; the simulated gateway status is in the body
func (h *DeveloperHandler) TryEndpoint(w http.ResponseWriter, r *http.Request) {
	var req dto.TryEndpointRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	resp, err := h.developerUsecase.TryEndpoint(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to call endpoint")
		return
	}

	response.Success(w, http.StatusOK, "Endpoint called", resp)
}
