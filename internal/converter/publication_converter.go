package converter

import (
	"fmt"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/knowledge"
)

// DefaultGuideSize is shown for guides uploaded without a file body
const DefaultGuideSize = "1.2 MB"

// GuideUploader is recorded as the uploader of every guide
const GuideUploader = "Admin"

func PublishJournalRequestToEntity(req *dto.PublishJournalRequest, today string) entity.JournalArticle {
	date := req.Date
	if date == "" {
		date = today
	}
	return entity.JournalArticle{
		Title:    req.Title,
		Author:   req.Author,
		Type:     entity.JournalType(req.Type),
		Date:     date,
		Abstract: req.Abstract,
	}
}

// FormatFileSize renders a byte count in megabytes with one decimal
func FormatFileSize(n int) string {
	return fmt.Sprintf("%.1f MB", float64(n)/1024/1024)
}

func UploadGuideRequestToEntity(req *dto.UploadGuideRequest, today string) entity.SystemGuide {
	size := DefaultGuideSize
	if len(req.Content) > 0 {
		size = FormatFileSize(len(req.Content))
	}
	return entity.SystemGuide{
		Title:      req.Title,
		Category:   entity.GuideCategory(req.Category),
		UploadedBy: GuideUploader,
		Date:       today,
		Size:       size,
	}
}

func DocumentToSummary(d knowledge.Document) dto.DocumentSummary {
	return dto.DocumentSummary{
		ID:           d.ID,
		Title:        d.Title,
		Section:      string(d.Section),
		Confidential: d.Confidential,
	}
}
