package party

import (
	"time"

	"github.com/sharath018/party-rsvp-backend/config"
)

// ============================
// 🎉 GORM Party Model
type Party struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"type:varchar(200);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Date         time.Time `gorm:"column:date;not null" json:"date"`
	Time         string    `gorm:"column:time;type:varchar(20)" json:"time"`
	Address      string    `gorm:"type:varchar(500)" json:"address"`
	MaxGuests    int       `gorm:"column:max_guests;not null" json:"max_guests"`
	IsActive     bool      `gorm:"column:is_active;not null;index" json:"is_active"`
	RSVPDeadline time.Time `gorm:"column:rsvp_deadline;not null" json:"rsvp_deadline"`
	ContactEmail string    `gorm:"type:varchar(120)" json:"contact_email"`
	ContactPhone string    `gorm:"type:varchar(20)" json:"contact_phone"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Party) TableName() string {
	return "parties"
}

// IsRSVPOpen is true only while the party is active and now is strictly
// before the deadline. Both sides are compared in UTC.
func (p *Party) IsRSVPOpen(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	return now.UTC().Before(p.RSVPDeadline.UTC())
}

// ============================
// 🟢 Public view returned by the API
type Response struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"`
	Address      string    `json:"address"`
	MaxGuests    int       `json:"max_guests"`
	IsRSVPOpen   bool      `json:"is_rsvp_open"`
	RSVPDeadline time.Time `json:"rsvp_deadline"`
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
}

func (p *Party) Public(now time.Time) Response {
	return Response{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Date:         p.Date.UTC(),
		Time:         p.Time,
		Address:      p.Address,
		MaxGuests:    p.MaxGuests,
		IsRSVPOpen:   p.IsRSVPOpen(now),
		RSVPDeadline: p.RSVPDeadline.UTC(),
		ContactEmail: p.ContactEmail,
		ContactPhone: p.ContactPhone,
	}
}

// ============================
// 📊 Stats Response
type Stats struct {
	TotalRSVPs     int  `json:"total_rsvps"`
	TotalAttending int  `json:"total_attending"`
	MaxGuests      int  `json:"max_guests"`
	AvailableSpots int  `json:"available_spots"`
	IsRSVPOpen     bool `json:"is_rsvp_open"`
}

// AvailableSpots never goes below zero, even when the party is overbooked.
func AvailableSpots(maxGuests, attending int) int {
	if spots := maxGuests - attending; spots > 0 {
		return spots
	}
	return 0
}

// FromDefaults builds the party seeded when no active record exists.
func FromDefaults(d config.PartyDefaults) *Party {
	return &Party{
		Title:        d.Title,
		Description:  d.Description,
		Date:         d.Date.UTC(),
		Time:         d.Time,
		Address:      d.Address,
		MaxGuests:    d.MaxGuests,
		IsActive:     true,
		RSVPDeadline: d.RSVPDeadline.UTC(),
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
	}
}
