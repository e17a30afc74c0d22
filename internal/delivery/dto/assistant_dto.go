package dto

type AnalyzeLogRequest struct {
	Log string `json:"log" validate:"required"`
}

// SummarizeRequest names a knowledge document or carries raw text
type SummarizeRequest struct {
	DocumentID string `json:"document_id" validate:"required_without=Text"`
	Text       string `json:"text" validate:"required_without=DocumentID"`
}

type ComplianceRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required,max=128"`
	Message   string `json:"message" validate:"required,max=4000"`
}

type DocumentSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Section      string `json:"section"`
	Confidential bool   `json:"confidential"`
}
