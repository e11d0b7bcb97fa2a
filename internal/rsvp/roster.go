package rsvp

import (
	"context"

	"github.com/sharath018/party-rsvp-backend/internal/apperror"
	"github.com/sharath018/party-rsvp-backend/internal/notification"
)

// RosterSource feeds the notification worker with a party's "yes" roster.
type RosterSource struct {
	Repo    *Repository
	Parties PartyFinder
}

func NewRosterSource(repo *Repository, parties PartyFinder) *RosterSource {
	return &RosterSource{Repo: repo, Parties: parties}
}

func (r *RosterSource) Roster(ctx context.Context, partyID uint) (notification.PartyDetails, []notification.Attendee, error) {
	p, err := r.Parties.FindByID(ctx, partyID)
	if err != nil {
		return notification.PartyDetails{}, nil, err
	}
	rsvps, err := r.Repo.ListAttending(ctx, partyID)
	if err != nil {
		return notification.PartyDetails{}, nil, apperror.Persistence("load roster", err)
	}

	attendees := make([]notification.Attendee, 0, len(rsvps))
	for _, g := range rsvps {
		attendees = append(attendees, notification.Attendee{
			Name:                g.Name,
			Email:               g.Email,
			NumberOfGuests:      g.NumberOfGuests,
			DietaryRestrictions: g.DietaryRestrictions,
			Message:             g.Message,
			SubmittedAt:         g.SubmittedAt,
		})
	}

	details := notification.PartyDetails{
		Title:   p.Title,
		Date:    p.Date.UTC(),
		Time:    p.Time,
		Address: p.Address,
	}
	return details, attendees, nil
}
