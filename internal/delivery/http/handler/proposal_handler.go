package handler

import (
	"net/http"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
	"mediaccess/pkg/validator"

	"github.com/gorilla/mux"
)

type ProposalHandler struct {
	proposalUsecase usecase.ProposalUsecase
	validator       *validator.CustomValidator
}

func NewProposalHandler(proposalUsecase usecase.ProposalUsecase, validator *validator.CustomValidator) *ProposalHandler {
	return &ProposalHandler{
		proposalUsecase: proposalUsecase,
		validator:       validator,
	}
}

func (h *ProposalHandler) GetProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.proposalUsecase.ListProposals(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, err, "Failed to get proposals")
		return
	}

	response.Success(w, http.StatusOK, "Proposals retrieved successfully", proposals)
}

func (h *ProposalHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req dto.VoteRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	proposal, err := h.proposalUsecase.Vote(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to record vote")
		return
	}

	response.Success(w, http.StatusOK, "Vote recorded successfully", proposal)
}
