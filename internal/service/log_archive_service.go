package service

import (
	"context"

	"mediaccess/internal/domain/entity"
	"mediaccess/internal/domain/repository"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultArchivePageSize bounds archive reads when no limit is given
const DefaultArchivePageSize = 100

// LogArchiveService mirrors emitted system log entries into Postgres.
// The store's ring buffer stays the source of truth; the archive only
// keeps what the ring buffer has already forgotten.
type LogArchiveService interface {
	EventSink
	Recent(ctx context.Context, module entity.LogModule, limit int) ([]entity.SystemLogRecord, error)
}

type logArchiveService struct {
	db          *gorm.DB
	log         *logrus.Logger
	archiveRepo repository.SystemLogArchiveRepository
}

func NewLogArchiveService(db *gorm.DB, log *logrus.Logger, archiveRepo repository.SystemLogArchiveRepository) LogArchiveService {
	return &logArchiveService{
		db:          db,
		log:         log,
		archiveRepo: archiveRepo,
	}
}

func (s *logArchiveService) Name() string {
	return "log-archive"
}

// Handle archives log events and ignores the rest
func (s *logArchiveService) Handle(ctx context.Context, ev store.Event) error {
	if ev.Kind != store.EventLog || ev.Log == nil {
		return nil
	}

	record := entity.NewSystemLogRecord(*ev.Log, ev.Operation)
	if err := s.archiveRepo.Create(s.db.WithContext(ctx), record); err != nil {
		s.log.Warnf("Failed to archive system log: %+v", err)
		return err
	}

	return nil
}

// Recent returns archived entries newest first. An empty module means all modules.
func (s *logArchiveService) Recent(ctx context.Context, module entity.LogModule, limit int) ([]entity.SystemLogRecord, error) {
	if limit <= 0 {
		limit = DefaultArchivePageSize
	}

	db := s.db.WithContext(ctx)
	var (
		records []entity.SystemLogRecord
		err     error
	)
	if module == "" {
		records, err = s.archiveRepo.FindRecent(db, limit)
	} else {
		records, err = s.archiveRepo.FindByModule(db, module, limit)
	}
	if err != nil {
		s.log.Warnf("Failed to read log archive: %+v", err)
		return nil, err
	}

	return records, nil
}
