package repository

import (
	"mediaccess/internal/domain/entity"

	"gorm.io/gorm"
)

type SystemLogArchiveRepository interface {
	Create(db *gorm.DB, record *entity.SystemLogRecord) error
	FindRecent(db *gorm.DB, limit int) ([]entity.SystemLogRecord, error)
	FindByModule(db *gorm.DB, module entity.LogModule, limit int) ([]entity.SystemLogRecord, error)
}
