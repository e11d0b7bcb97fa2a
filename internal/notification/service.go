package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/sharath018/party-rsvp-backend/internal/metrics"
)

var tracer = otel.GetTracerProvider().Tracer("github.com/sharath018/party-rsvp-backend/internal/notification")

// RosterSource loads the party details and its "yes" roster, newest first.
type RosterSource interface {
	Roster(ctx context.Context, partyID uint) (PartyDetails, []Attendee, error)
}

// Service renders and sends the "new RSVP" email. It implements Deliverer.
type Service struct {
	mailer    Mailer
	roster    RosterSource
	repo      Repository
	recipient string
	log       zerolog.Logger
}

func NewService(mailer Mailer, roster RosterSource, repo Repository, recipient string, logger zerolog.Logger) *Service {
	return &Service{
		mailer:    mailer,
		roster:    roster,
		repo:      repo,
		recipient: recipient,
		log:       logger.With().Str("component", "notification").Logger(),
	}
}

// Deliver sends one notification. Without NOTIFICATION_EMAIL it only logs.
func (s *Service) Deliver(ctx context.Context, job Job) error {
	ctx, span := tracer.Start(ctx, "Service.Deliver")
	defer span.End()

	if s.recipient == "" {
		s.log.Info().Uint("party_id", job.PartyID).Str("guest", job.GuestName).Msg("NOTIFICATION_EMAIL not set, skipping")
		s.record(ctx, job, "", StatusSkipped, nil)
		return nil
	}

	party, attendees, err := s.roster.Roster(ctx, job.PartyID)
	if err != nil {
		s.record(ctx, job, "", StatusFailed, err)
		return fmt.Errorf("load roster: %w", err)
	}

	msg, err := RenderNewRSVP(NewRosterData(party, job.GuestName, attendees))
	if err != nil {
		s.record(ctx, job, "", StatusFailed, err)
		return fmt.Errorf("render notification: %w", err)
	}
	msg.To = []string{s.recipient}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.record(ctx, job, msg.Subject, StatusFailed, err)
		return err
	}

	s.log.Info().
		Uint("party_id", job.PartyID).
		Str("guest", job.GuestName).
		Int("roster", len(attendees)).
		Str("transport", s.mailer.Name()).
		Msg("📧 RSVP notification sent")
	s.record(ctx, job, msg.Subject, StatusSent, nil)
	return nil
}

func (s *Service) record(ctx context.Context, job Job, subject, status string, cause error) {
	metrics.Notifications.WithLabelValues(status).Inc()
	if s.repo == nil {
		return
	}

	recipients := []string{}
	if s.recipient != "" {
		recipients = append(recipients, s.recipient)
	}
	raw, _ := json.Marshal(recipients)

	entry := &NotificationLog{
		PartyID:          job.PartyID,
		ConfirmationCode: job.ConfirmationCode,
		Channel:          s.mailer.Name(),
		Subject:          subject,
		Recipients:       raw,
		Status:           status,
	}
	if cause != nil {
		msg := cause.Error()
		entry.Error = &msg
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		s.log.Error().Err(err).Msg("failed to record notification log")
	}
}
