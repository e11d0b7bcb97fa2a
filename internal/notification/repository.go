package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateLog(ctx context.Context, log *NotificationLog) error
	ListLogs(ctx context.Context, partyID uint, limit int) ([]NotificationLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLog(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListLogs(ctx context.Context, partyID uint, limit int) ([]NotificationLog, error) {
	logs := []NotificationLog{}
	err := r.db.WithContext(ctx).
		Where("party_id = ?", partyID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
