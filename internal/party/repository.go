package party

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🔍 Get the active party
func (r *Repository) GetActive(ctx context.Context) (*Party, error) {
	var p Party
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ===========================
// 🔍 Get party by ID
func (r *Repository) GetByID(ctx context.Context, id uint) (*Party, error) {
	var p Party
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ===========================
// 🔒 At most one party may be active. Partial unique index, supported by
// both PostgreSQL and SQLite; run after AutoMigrate.
func (r *Repository) EnsureSingleActiveIndex(ctx context.Context) error {
	return r.DB.WithContext(ctx).Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_parties_single_active ON parties (is_active) WHERE is_active",
	).Error
}

// ===========================
// 🎯 Create party
func (r *Repository) Create(ctx context.Context, p *Party) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// ===========================
// 🔢 Count RSVPs for a party
func (r *Repository) CountRSVPs(ctx context.Context, partyID uint) (int, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Table("rsvps").
		Where("party_id = ?", partyID).
		Count(&count).Error
	return int(count), err
}

// ===========================
// 🔢 Sum of guests attending ("yes" RSVPs with a positive guest count)
func (r *Repository) SumAttending(ctx context.Context, partyID uint) (int, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Table("rsvps").
		Select("COALESCE(SUM(number_of_guests), 0)").
		Where("party_id = ? AND attending = ? AND number_of_guests > 0", partyID, "yes").
		Scan(&total).Error
	return int(total), err
}
