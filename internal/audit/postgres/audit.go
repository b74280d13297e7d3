package postgres

import (
	"gorm.io/gorm"

	"github.com/brandingpioneers/hr-management/internal/audit"
)

// AuditRepository implements the audit.Repository interface using GORM
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.Repository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(e *audit.Entry) error {
	return r.db.Create(e).Error
}

func (r *AuditRepository) ListRecent(limit, offset int) ([]*audit.Entry, error) {
	var entries []*audit.Entry
	err := r.db.Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}
