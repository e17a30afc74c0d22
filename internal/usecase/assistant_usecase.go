package usecase

import (
	"context"
	"errors"

	"mediaccess/internal/assistant"
	"mediaccess/internal/converter"
	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/knowledge"
	"mediaccess/internal/projection"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var ErrDocumentNotFound = errors.New("document not found")

type AssistantUsecase interface {
	AnalyzeLog(ctx context.Context, req *dto.AnalyzeLogRequest) assistant.Reply
	Summarize(ctx context.Context, role entity.Role, req *dto.SummarizeRequest) (*assistant.Reply, error)
	AskCompliance(ctx context.Context, req *dto.ComplianceRequest) assistant.Reply
	Chat(ctx context.Context, owner string, req *dto.ChatRequest) assistant.Reply
	ChatStream(ctx context.Context, owner string, req *dto.ChatRequest) <-chan assistant.StreamEvent
	Transcript(ctx context.Context, owner, sessionID string) []assistant.Message
	ResetChat(ctx context.Context, owner, sessionID string)
	ListDocuments(ctx context.Context, role entity.Role) []dto.DocumentSummary
	GetDocument(ctx context.Context, role entity.Role, id string) (*knowledge.Document, error)
}

type assistantUsecase struct {
	store     *store.Store
	log       *logrus.Logger
	assistant *assistant.Assistant
	kb        *knowledge.Base
}

func NewAssistantUsecase(s *store.Store, log *logrus.Logger, a *assistant.Assistant, kb *knowledge.Base) AssistantUsecase {
	return &assistantUsecase{store: s, log: log, assistant: a, kb: kb}
}

func (u *assistantUsecase) AnalyzeLog(ctx context.Context, req *dto.AnalyzeLogRequest) assistant.Reply {
	return u.assistant.AnalyzeLog(ctx, req.Log)
}

// Summarize summarizes raw text or a knowledge document the role may read
func (u *assistantUsecase) Summarize(ctx context.Context, role entity.Role, req *dto.SummarizeRequest) (*assistant.Reply, error) {
	text := req.Text
	if req.DocumentID != "" {
		doc, err := u.GetDocument(ctx, role, req.DocumentID)
		if err != nil {
			return nil, err
		}
		text = doc.Body
	}

	reply := u.assistant.Summarize(ctx, text)
	return &reply, nil
}

func (u *assistantUsecase) AskCompliance(ctx context.Context, req *dto.ComplianceRequest) assistant.Reply {
	return u.assistant.AskCompliance(ctx, req.Question)
}

// ChatOwner names whose chat sessions a caller can reach: the session token
// when the caller signed in, otherwise the acting role
func ChatOwner(role entity.Role, tokenID string) string {
	if tokenID != "" {
		return "token:" + tokenID
	}
	return "role:" + string(role)
}

func chatKey(owner, sessionID string) string {
	return owner + "/" + sessionID
}

func (u *assistantUsecase) Chat(ctx context.Context, owner string, req *dto.ChatRequest) assistant.Reply {
	return u.assistant.Chat(ctx, chatKey(owner, req.SessionID), req.Message, u.liveContext())
}

func (u *assistantUsecase) ChatStream(ctx context.Context, owner string, req *dto.ChatRequest) <-chan assistant.StreamEvent {
	return u.assistant.ChatStream(ctx, chatKey(owner, req.SessionID), req.Message, u.liveContext())
}

// Transcript starts with the greeting even for a session nobody used yet
func (u *assistantUsecase) Transcript(ctx context.Context, owner, sessionID string) []assistant.Message {
	return u.assistant.Sessions().Transcript(chatKey(owner, sessionID))
}

func (u *assistantUsecase) ResetChat(ctx context.Context, owner, sessionID string) {
	u.assistant.Sessions().Reset(chatKey(owner, sessionID))
}

func (u *assistantUsecase) ListDocuments(ctx context.Context, role entity.Role) []dto.DocumentSummary {
	docs := u.kb.List(entity.IsPermitted(role, entity.CapViewConfidentialDocs))
	out := make([]dto.DocumentSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, converter.DocumentToSummary(d))
	}
	return out
}

func (u *assistantUsecase) GetDocument(ctx context.Context, role entity.Role, id string) (*knowledge.Document, error) {
	doc, err := u.kb.Get(id)
	if err != nil {
		if errors.Is(err, knowledge.ErrDocumentNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.Confidential && !entity.IsPermitted(role, entity.CapViewConfidentialDocs) {
		u.log.Warnf("Failed to open document %s: role %s is restricted", id, role)
		return nil, ErrForbidden
	}
	return &doc, nil
}

// liveContext is rebuilt on every call so the model always sees current state
func (u *assistantUsecase) liveContext() string {
	return projection.LiveContext(u.store.Snapshot())
}
