package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	GetByFilter(ctx context.Context, filter AuditLogFilter) ([]AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new audit log entry
func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// GetByFilter returns the newest entries first
func (r *repository) GetByFilter(ctx context.Context, filter AuditLogFilter) ([]AuditLog, error) {
	logs := []AuditLog{}

	query := r.db.WithContext(ctx).Model(&AuditLog{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}

	err := query.Order("created_at DESC").Order("id DESC").
		Limit(filter.Limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
