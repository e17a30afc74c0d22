package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"mediaccess/internal/converter"
	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/projection"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var ErrGuideNotFound = errors.New("guide not found")

const guideObjectPrefix = "guides"

// GuideFileStore keeps uploaded guide bodies. *storage.MinioStore satisfies it.
type GuideFileStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

type PublicationUsecase interface {
	ListJournals(ctx context.Context, journalType, query string) []entity.JournalArticle
	PublishJournal(ctx context.Context, req *dto.PublishJournalRequest) (*entity.JournalArticle, error)
	ListReports(ctx context.Context) []entity.SystemReport
	ListGuides(ctx context.Context, query string) []entity.SystemGuide
	UploadGuide(ctx context.Context, req *dto.UploadGuideRequest) (*entity.SystemGuide, error)
	DeleteGuide(ctx context.Context, id string) error
}

type publicationUsecase struct {
	store *store.Store
	log   *logrus.Logger
	files GuideFileStore
}

// NewPublicationUsecase creates the use case. files may be nil, in which case
// guide bodies are measured but not kept.
func NewPublicationUsecase(s *store.Store, log *logrus.Logger, files GuideFileStore) PublicationUsecase {
	return &publicationUsecase{store: s, log: log, files: files}
}

func (u *publicationUsecase) ListJournals(ctx context.Context, journalType, query string) []entity.JournalArticle {
	return projection.FilterJournals(u.store.Journals(), entity.JournalType(journalType), query)
}

func (u *publicationUsecase) PublishJournal(ctx context.Context, req *dto.PublishJournalRequest) (*entity.JournalArticle, error) {
	j, err := u.store.AddJournal(converter.PublishJournalRequestToEntity(req, u.store.Today()))
	if err != nil {
		u.log.Warnf("Failed to publish journal: %+v", err)
		return nil, err
	}
	return &j, nil
}

func (u *publicationUsecase) ListReports(ctx context.Context) []entity.SystemReport {
	return u.store.Reports()
}

func (u *publicationUsecase) ListGuides(ctx context.Context, query string) []entity.SystemGuide {
	return projection.SearchGuides(u.store.Guides(), query)
}

func (u *publicationUsecase) UploadGuide(ctx context.Context, req *dto.UploadGuideRequest) (*entity.SystemGuide, error) {
	guide := converter.UploadGuideRequestToEntity(req, u.store.Today())
	guide.ID = u.store.NewID()

	if u.files != nil && len(req.Content) > 0 {
		name := req.FileName
		if name == "" {
			name = guide.ID
		}
		guide.ObjectKey = path.Join(guideObjectPrefix, guide.ID, path.Base(name))

		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := u.files.Put(ctx, guide.ObjectKey, bytes.NewReader(req.Content), int64(len(req.Content)), contentType); err != nil {
			u.log.Warnf("Failed to store guide file: %+v", err)
			return nil, err
		}
	}

	created, err := u.store.AddGuide(guide)
	if err != nil {
		u.log.Warnf("Failed to add guide: %+v", err)
		u.removeObject(ctx, guide.ObjectKey)
		return nil, err
	}
	return &created, nil
}

func (u *publicationUsecase) DeleteGuide(ctx context.Context, id string) error {
	removed, err := u.store.DeleteGuide(id)
	if err != nil {
		u.log.Warnf("Failed to delete guide: %+v", err)
		if errors.Is(err, store.ErrNotFound) {
			return ErrGuideNotFound
		}
		return err
	}

	u.removeObject(ctx, removed.ObjectKey)
	return nil
}

// removeObject is best effort: the guide list is authoritative
func (u *publicationUsecase) removeObject(ctx context.Context, key string) {
	if u.files == nil || key == "" {
		return
	}
	if err := u.files.Delete(ctx, key); err != nil {
		u.log.Warnf("Failed to delete guide file %s: %+v", key, err)
	}
}
