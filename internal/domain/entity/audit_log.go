package entity

import "time"

// SystemLogRecord is the archived copy of a SystemLog entry.
// The in-memory ring buffer stays authoritative; this table only mirrors it.
type SystemLogRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryID    string    `gorm:"type:varchar(64);not null;index" json:"entry_id"`
	Module     string    `gorm:"type:varchar(16);not null;index" json:"module"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Status     string    `gorm:"type:varchar(8);not null" json:"status"`
	Operation  string    `gorm:"type:varchar(64)" json:"operation,omitempty"`
	EmittedAt  time.Time `gorm:"not null;index" json:"emitted_at"`
	ArchivedAt time.Time `gorm:"autoCreateTime" json:"archived_at"`
}

func (SystemLogRecord) TableName() string {
	return "system_log_archive"
}

// NewSystemLogRecord builds an archive row from a log entry
func NewSystemLogRecord(log SystemLog, operation string) *SystemLogRecord {
	return &SystemLogRecord{
		EntryID:   log.ID,
		Module:    string(log.Module),
		Message:   log.Message,
		Status:    string(log.Status),
		Operation: operation,
		EmittedAt: log.Timestamp,
	}
}
