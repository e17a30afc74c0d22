package repository

import (
	"mediaccess/internal/domain/entity"
	domainRepo "mediaccess/internal/domain/repository"

	"gorm.io/gorm"
)

type systemLogArchiveRepository struct{}

func NewSystemLogArchiveRepository() domainRepo.SystemLogArchiveRepository {
	return &systemLogArchiveRepository{}
}

func (r *systemLogArchiveRepository) Create(db *gorm.DB, record *entity.SystemLogRecord) error {
	return db.Create(record).Error
}

// FindRecent returns the newest archived entries first
func (r *systemLogArchiveRepository) FindRecent(db *gorm.DB, limit int) ([]entity.SystemLogRecord, error) {
	var records []entity.SystemLogRecord
	err := db.Order("emitted_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *systemLogArchiveRepository) FindByModule(db *gorm.DB, module entity.LogModule, limit int) ([]entity.SystemLogRecord, error) {
	var records []entity.SystemLogRecord
	err := db.Where("module = ?", string(module)).
		Order("emitted_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
