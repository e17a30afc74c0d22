package dto

type PublishJournalRequest struct {
	Title    string `json:"title" validate:"required,max=300"`
	Author   string `json:"author" validate:"required,max=200"`
	Type     string `json:"type" validate:"required,oneof=Medical Research"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Abstract string `json:"abstract" validate:"max=5000"`
}

// UploadGuideRequest carries an optional file body, base64 encoded in JSON
type UploadGuideRequest struct {
	Title       string `json:"title" validate:"required,max=300"`
	Category    string `json:"category" validate:"required,oneof=Security Setup Onboarding Troubleshooting"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}
