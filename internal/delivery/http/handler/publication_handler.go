package handler

import (
	"net/http"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
	"mediaccess/pkg/validator"

	"github.com/gorilla/mux"
)

// PublicationHandler serves journals, reports and system guides
type PublicationHandler struct {
	publicationUsecase usecase.PublicationUsecase
	validator          *validator.CustomValidator
}

func NewPublicationHandler(publicationUsecase usecase.PublicationUsecase, validator *validator.CustomValidator) *PublicationHandler {
	return &PublicationHandler{
		publicationUsecase: publicationUsecase,
		validator:          validator,
	}
}

func (h *PublicationHandler) GetJournals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	response.Success(w, http.StatusOK, "Journals retrieved successfully",
		h.publicationUsecase.ListJournals(r.Context(), query.Get("type"), query.Get("q")))
}

func (h *PublicationHandler) PublishJournal(w http.ResponseWriter, r *http.Request) {
	var req dto.PublishJournalRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	journal, err := h.publicationUsecase.PublishJournal(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to publish journal")
		return
	}

	response.Success(w, http.StatusCreated, "Journal published successfully", journal)
}

func (h *PublicationHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Reports retrieved successfully", h.publicationUsecase.ListReports(r.Context()))
}

func (h *PublicationHandler) GetGuides(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Guides retrieved successfully", h.publicationUsecase.ListGuides(r.Context(), r.URL.Query().Get("q")))
}

func (h *PublicationHandler) UploadGuide(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadGuideRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	guide, err := h.publicationUsecase.UploadGuide(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to upload guide")
		return
	}

	response.Success(w, http.StatusCreated, "Guide uploaded successfully", guide)
}

func (h *PublicationHandler) DeleteGuide(w http.ResponseWriter, r *http.Request) {
	if err := h.publicationUsecase.DeleteGuide(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete guide")
		return
	}

	response.Success(w, http.StatusOK, "Guide deleted successfully", nil)
}
