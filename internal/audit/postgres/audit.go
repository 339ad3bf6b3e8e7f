package postgres

import (
	"github.com/spendwise/expense-tracker/internal/audit"
	"gorm.io/gorm"
)

// AuditRepository implements the audit.Repository interface using GORM
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(l *audit.Log) error {
	return r.db.Create(l).Error
}

func (r *AuditRepository) GetRecent(limit int) ([]*audit.Log, error) {
	var logs []*audit.Log
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
