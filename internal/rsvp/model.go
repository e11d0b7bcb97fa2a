package rsvp

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sharath018/party-rsvp-backend/internal/apperror"
	"github.com/sharath018/party-rsvp-backend/internal/party"
)

// Attendance is the guest's answer.
type Attendance string

const (
	AttendingYes   Attendance = "yes"
	AttendingNo    Attendance = "no"
	AttendingMaybe Attendance = "maybe"
)

func (a Attendance) Valid() bool {
	switch a {
	case AttendingYes, AttendingNo, AttendingMaybe:
		return true
	}
	return false
}

// ============================
// 💌 GORM RSVP Model
type RSVP struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	PartyID             uint         `gorm:"not null;uniqueIndex:idx_rsvps_party_email,priority:1" json:"-"`
	Party               *party.Party `gorm:"foreignKey:PartyID;constraint:OnDelete:CASCADE" json:"-"`
	Name                string       `gorm:"type:varchar(100);not null" json:"name"`
	Email               string       `gorm:"type:varchar(120);not null;uniqueIndex:idx_rsvps_party_email,priority:2" json:"email"`
	Phone               string       `gorm:"type:varchar(20)" json:"phone"`
	Attending           Attendance   `gorm:"type:varchar(10);not null;index" json:"attending"`
	NumberOfGuests      int          `gorm:"not null;default:1" json:"number_of_guests"`
	DietaryRestrictions string       `gorm:"type:text" json:"dietary_restrictions"`
	Message             string       `gorm:"type:text" json:"message"`
	ConfirmationCode    string       `gorm:"type:varchar(20);not null;uniqueIndex" json:"confirmation_code"`
	SubmittedAt         time.Time    `gorm:"autoCreateTime;index" json:"submitted_at"`
}

func (RSVP) TableName() string {
	return "rsvps"
}

var validate = validator.New()

const (
	maxNameLen  = 100
	maxEmailLen = 120
	maxPhoneLen = 20
)

// ============================
// 🟡 Submit RSVP Request
// Pointers distinguish an absent key from a zero value.
type SubmitRequest struct {
	Name                *string `json:"name" binding:"required"`
	Email               *string `json:"email" binding:"required"`
	Attending           *string `json:"attending" binding:"required"`
	NumberOfGuests      *int    `json:"number_of_guests" binding:"required"`
	Phone               string  `json:"phone"`
	DietaryRestrictions string  `json:"dietary_restrictions"`
	Message             string  `json:"message"`
}

// toModel validates the request and returns the normalized record.
func (r *SubmitRequest) toModel() (*RSVP, error) {
	if r.Name == nil || r.Email == nil || r.Attending == nil || r.NumberOfGuests == nil {
		return nil, apperror.Validation("Missing required fields")
	}

	name := strings.TrimSpace(*r.Name)
	if name == "" {
		return nil, apperror.Validation("name must not be empty")
	}
	if len(name) > maxNameLen {
		return nil, apperror.Validation("name is too long")
	}

	email, err := NormalizeEmail(*r.Email)
	if err != nil {
		return nil, err
	}

	attending := Attendance(strings.ToLower(strings.TrimSpace(*r.Attending)))
	if !attending.Valid() {
		return nil, apperror.Validation("attending must be one of yes, no, maybe")
	}

	if *r.NumberOfGuests < 1 {
		return nil, apperror.Validation("number_of_guests must be a positive integer")
	}

	phone := strings.TrimSpace(r.Phone)
	if len(phone) > maxPhoneLen {
		return nil, apperror.Validation("phone is too long")
	}

	return &RSVP{
		Name:                name,
		Email:               email,
		Phone:               phone,
		Attending:           attending,
		NumberOfGuests:      *r.NumberOfGuests,
		DietaryRestrictions: strings.TrimSpace(r.DietaryRestrictions),
		Message:             strings.TrimSpace(r.Message),
	}, nil
}

// NormalizeEmail trims, lower-cases and syntax-checks an address so that
// duplicate detection is case-insensitive.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apperror.Validation("email must not be empty")
	}
	if len(email) > maxEmailLen {
		return "", apperror.Validation("email is too long")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", apperror.Validation("email is not a valid address")
	}
	return email, nil
}

// ============================
// 🟠 Update Guest Request (only name and phone are mutable)
type UpdateRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func (r *UpdateRequest) changes() (map[string]interface{}, error) {
	if r.Name == nil && r.Phone == nil {
		return nil, apperror.Validation("nothing to update: provide name and/or phone")
	}
	updates := map[string]interface{}{}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return nil, apperror.Validation("name must not be empty")
		}
		if len(name) > maxNameLen {
			return nil, apperror.Validation("name is too long")
		}
		updates["name"] = name
	}
	if r.Phone != nil {
		phone := strings.TrimSpace(*r.Phone)
		if len(phone) > maxPhoneLen {
			return nil, apperror.Validation("phone is too long")
		}
		updates["phone"] = phone
	}
	return updates, nil
}

// apply mirrors a successful update onto the loaded record.
func (r *UpdateRequest) apply(rsvp *RSVP) {
	if r.Name != nil {
		rsvp.Name = strings.TrimSpace(*r.Name)
	}
	if r.Phone != nil {
		rsvp.Phone = strings.TrimSpace(*r.Phone)
	}
}

// ============================
// 📦 Responses
type SubmitResponse struct {
	Message          string `json:"message"`
	ConfirmationCode string `json:"confirmation_code"`
}

type LookupResponse struct {
	RSVP  *RSVP          `json:"rsvp"`
	Party party.Response `json:"party"`
}
