package rsvp

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
// 🎯 Insert RSVP
func (r *Repository) Create(ctx context.Context, rsvp *RSVP) error {
	return r.DB.WithContext(ctx).Create(rsvp).Error
}

// ===========================
// 🔍 Lookup by confirmation code
func (r *Repository) GetByCode(ctx context.Context, code string) (*RSVP, error) {
	var rsvp RSVP
	err := r.DB.WithContext(ctx).
		Where("confirmation_code = ?", code).
		First(&rsvp).Error
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// ===========================
// 🔍 Lookup by (party, normalized email)
func (r *Repository) GetByPartyAndEmail(ctx context.Context, partyID uint, email string) (*RSVP, error) {
	var rsvp RSVP
	err := r.DB.WithContext(ctx).
		Where("party_id = ? AND email = ?", partyID, email).
		First(&rsvp).Error
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// ===========================
// 📃 All RSVPs of a party, newest first
func (r *Repository) ListByParty(ctx context.Context, partyID uint) ([]RSVP, error) {
	rsvps := []RSVP{}
	err := r.DB.WithContext(ctx).
		Where("party_id = ?", partyID).
		Order("submitted_at DESC").Order("id DESC").
		Find(&rsvps).Error
	return rsvps, err
}

// ===========================
// 📃 "yes" RSVPs of a party, newest first
func (r *Repository) ListAttending(ctx context.Context, partyID uint) ([]RSVP, error) {
	rsvps := []RSVP{}
	err := r.DB.WithContext(ctx).
		Where("party_id = ? AND attending = ?", partyID, AttendingYes).
		Order("submitted_at DESC").Order("id DESC").
		Find(&rsvps).Error
	return rsvps, err
}

// ===========================
// 🔄 Apply column updates
func (r *Repository) Update(ctx context.Context, rsvp *RSVP, updates map[string]interface{}) error {
	return r.DB.WithContext(ctx).Model(rsvp).Updates(updates).Error
}

// ===========================
// 🗑️ Delete one RSVP
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&RSVP{}, id)
	return res.RowsAffected, res.Error
}

// ===========================
// 🗑️ Delete every RSVP of a party in one statement
func (r *Repository) DeleteByParty(ctx context.Context, partyID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Where("party_id = ?", partyID).Delete(&RSVP{})
	return res.RowsAffected, res.Error
}
