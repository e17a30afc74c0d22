package handler

import (
	"io"
	"net/http"
	"strconv"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/response"
	"mediaccess/pkg/validator"

	"github.com/gorilla/mux"
)

// FallbackTrailer is set on streamed chat responses once the stream ends
const FallbackTrailer = "X-Assistant-Fallback"

type AssistantHandler struct {
	assistantUsecase usecase.AssistantUsecase
	validator        *validator.CustomValidator
}

func NewAssistantHandler(assistantUsecase usecase.AssistantUsecase, validator *validator.CustomValidator) *AssistantHandler {
	return &AssistantHandler{
		assistantUsecase: assistantUsecase,
		validator:        validator,
	}
}

func (h *AssistantHandler) AnalyzeLog(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeLogRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	response.Success(w, http.StatusOK, "Log analyzed", h.assistantUsecase.AnalyzeLog(r.Context(), &req))
}

func (h *AssistantHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req dto.SummarizeRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	reply, err := h.assistantUsecase.Summarize(r.Context(), roleFrom(r), &req)
	if err != nil {
		writeError(w, err, "Failed to summarize document")
		return
	}

	response.Success(w, http.StatusOK, "Document summarized", reply)
}

func (h *AssistantHandler) AskCompliance(w http.ResponseWriter, r *http.Request) {
	var req dto.ComplianceRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	response.Success(w, http.StatusOK, "Compliance question answered", h.assistantUsecase.AskCompliance(r.Context(), &req))
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	response.Success(w, http.StatusOK, "Chat answered", h.assistantUsecase.Chat(r.Context(), chatOwnerFrom(r), &req))
}

// ChatStream writes the answer as plain text fragments while they arrive.
// Whether the fallback text was sent is reported in a trailer.
func (h *AssistantHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if !decodeRequest(w, r, h.validator, &req) {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Trailer", FallbackTrailer)
	w.WriteHeader(http.StatusOK)

	fallback, streamed := false, false
	for ev := range h.assistantUsecase.ChatStream(r.Context(), chatOwnerFrom(r), &req) {
		switch {
		case ev.Fallback:
			fallback = true
			io.WriteString(w, ev.Text)
		case ev.Done:
			// full text repeats what was already streamed
			if !streamed {
				io.WriteString(w, ev.Text)
			}
		default:
			streamed = streamed || ev.Text != ""
			io.WriteString(w, ev.Text)
		}
		flusher.Flush()
	}
	w.Header().Set(FallbackTrailer, strconv.FormatBool(fallback))
}

func (h *AssistantHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Transcript retrieved successfully",
		h.assistantUsecase.Transcript(r.Context(), chatOwnerFrom(r), mux.Vars(r)["session"]))
}

func (h *AssistantHandler) ResetChat(w http.ResponseWriter, r *http.Request) {
	h.assistantUsecase.ResetChat(r.Context(), chatOwnerFrom(r), mux.Vars(r)["session"])
	response.Success(w, http.StatusOK, "Chat session reset", nil)
}

func (h *AssistantHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Documents retrieved successfully", h.assistantUsecase.ListDocuments(r.Context(), roleFrom(r)))
}

func (h *AssistantHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.assistantUsecase.GetDocument(r.Context(), roleFrom(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get document")
		return
	}

	response.Success(w, http.StatusOK, "Document retrieved successfully", doc)
}
