package handler

import (
	"net/http"

	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
)

type FinancialHandler struct {
	financialUsecase usecase.FinancialUsecase
}

func NewFinancialHandler(financialUsecase usecase.FinancialUsecase) *FinancialHandler {
	return &FinancialHandler{
		financialUsecase: financialUsecase,
	}
}

func (h *FinancialHandler) GetOutlook(w http.ResponseWriter, r *http.Request) {
	outlook, err := h.financialUsecase.Outlook(r.Context(), roleFrom(r))
	if err != nil {
		writeError(w, err, "Failed to get financials")
		return
	}

	response.Success(w, http.StatusOK, "Financials retrieved successfully", outlook)
}
