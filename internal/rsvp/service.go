package rsvp

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sharath018/party-rsvp-backend/database"
	"github.com/sharath018/party-rsvp-backend/internal/apperror"
	"github.com/sharath018/party-rsvp-backend/internal/auditlog"
	"github.com/sharath018/party-rsvp-backend/internal/livefeed"
	"github.com/sharath018/party-rsvp-backend/internal/metrics"
	"github.com/sharath018/party-rsvp-backend/internal/notification"
	"github.com/sharath018/party-rsvp-backend/internal/party"
)

const maxCodeAttempts = 5

var errCodeAttemptsExhausted = errors.New("could not allocate a unique confirmation code")

const duplicateMessage = "You have already submitted an RSVP"

// PartyFinder resolves parties for RSVP operations.
type PartyFinder interface {
	FindActive(ctx context.Context) (*party.Party, error)
	FindByID(ctx context.Context, id uint) (*party.Party, error)
}

// Service owns RSVP submission and guest management
type Service struct {
	Repo    *Repository
	Parties PartyFinder
	Queue   notification.Queue
	Audit   auditlog.Service
	Feed    livefeed.Publisher
	Now     func() time.Time
	NewCode func() (string, error)
	log     zerolog.Logger
}

func NewService(
	repo *Repository,
	parties PartyFinder,
	queue notification.Queue,
	audit auditlog.Service,
	feed livefeed.Publisher,
	logger zerolog.Logger,
) *Service {
	if feed == nil {
		feed = livefeed.NewPublisher(nil, logger)
	}
	return &Service{
		Repo:    repo,
		Parties: parties,
		Queue:   queue,
		Audit:   audit,
		Feed:    feed,
		Now:     func() time.Time { return time.Now().UTC() },
		NewCode: GenerateConfirmationCode,
		log:     logger.With().Str("component", "rsvp").Logger(),
	}
}

// ===========================
// 🎯 Submit RSVP for the active party
func (s *Service) Submit(ctx context.Context, req SubmitRequest, ip string) (*RSVP, error) {
	ctx, span := tracer.Start(ctx, "Service.Submit")
	defer span.End()

	rsvp, err := req.toModel()
	if err != nil {
		metrics.RSVPSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	p, err := s.Parties.FindActive(ctx)
	if err != nil {
		s.countSubmission(err)
		return nil, err
	}
	rsvp.PartyID = p.ID

	existing, err := s.Repo.GetByPartyAndEmail(ctx, p.ID, rsvp.Email)
	switch {
	case err == nil:
		return nil, s.duplicate(ctx, p.ID, existing, ip)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		metrics.RSVPSubmissions.WithLabelValues("error").Inc()
		return nil, apperror.Persistence("Failed to submit RSVP", err)
	}

	var conflict *RSVP
	err = s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
			code, err := s.NewCode()
			if err != nil {
				return err
			}
			rsvp.ID = 0
			rsvp.ConfirmationCode = code

			// Savepoint so a unique violation does not poison the outer tx on Postgres.
			err = tx.Transaction(func(sp *gorm.DB) error {
				return NewRepository(sp).Create(ctx, rsvp)
			})
			if err == nil {
				return nil
			}
			if !database.IsUniqueViolation(err) {
				return err
			}

			// Either a concurrent submission for the same email won, or the code collided.
			winner, lookupErr := repo.GetByPartyAndEmail(ctx, p.ID, rsvp.Email)
			if lookupErr == nil {
				conflict = winner
				return nil
			}
			if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				return lookupErr
			}
			s.log.Warn().Int("attempt", attempt).Msg("confirmation code collision, retrying")
		}
		return errCodeAttemptsExhausted
	})
	if err != nil {
		metrics.RSVPSubmissions.WithLabelValues("error").Inc()
		return nil, apperror.Persistence("Failed to submit RSVP", err)
	}
	if conflict != nil {
		return nil, s.duplicate(ctx, p.ID, conflict, ip)
	}

	metrics.RSVPSubmissions.WithLabelValues("created").Inc()
	s.log.Info().
		Uint("party_id", p.ID).
		Str("code", rsvp.ConfirmationCode).
		Str("attending", string(rsvp.Attending)).
		Int("guests", rsvp.NumberOfGuests).
		Msg("✅ RSVP submitted")

	s.audit(ctx, auditlog.Entry{
		PartyID:          &p.ID,
		ConfirmationCode: rsvp.ConfirmationCode,
		Action:           auditlog.ActionRSVPSubmitted,
		Details: map[string]interface{}{
			"name":             rsvp.Name,
			"email":            rsvp.Email,
			"attending":        rsvp.Attending,
			"number_of_guests": rsvp.NumberOfGuests,
		},
		IP: ip,
	})
	s.Feed.Publish(ctx, p.ID, livefeed.Event{
		Type:             livefeed.EventCreated,
		ConfirmationCode: rsvp.ConfirmationCode,
		Name:             rsvp.Name,
		Attending:        string(rsvp.Attending),
		NumberOfGuests:   rsvp.NumberOfGuests,
		At:               s.Now(),
	})

	if rsvp.Attending == AttendingYes {
		s.notify(ctx, p.ID, rsvp)
	}
	return rsvp, nil
}

func (s *Service) duplicate(ctx context.Context, partyID uint, existing *RSVP, ip string) error {
	metrics.RSVPSubmissions.WithLabelValues("duplicate").Inc()
	s.audit(ctx, auditlog.Entry{
		PartyID:          &partyID,
		ConfirmationCode: existing.ConfirmationCode,
		Action:           auditlog.ActionRSVPDuplicate,
		Details:          map[string]interface{}{"email": existing.Email},
		IP:               ip,
		Status:           auditlog.StatusFailure,
	})
	return &apperror.ConflictError{
		Message:          duplicateMessage,
		ConfirmationCode: existing.ConfirmationCode,
	}
}

func (s *Service) countSubmission(err error) {
	var notFound *apperror.NotFoundError
	if errors.As(err, &notFound) {
		metrics.RSVPSubmissions.WithLabelValues("no_party").Inc()
		return
	}
	metrics.RSVPSubmissions.WithLabelValues("error").Inc()
}

// notify never blocks on delivery; a failed enqueue is only logged.
func (s *Service) notify(ctx context.Context, partyID uint, rsvp *RSVP) {
	if s.Queue == nil {
		return
	}
	job := notification.Job{
		PartyID:          partyID,
		GuestName:        rsvp.Name,
		ConfirmationCode: rsvp.ConfirmationCode,
		EnqueuedAt:       s.Now(),
	}
	if err := s.Queue.Enqueue(context.WithoutCancel(ctx), job); err != nil {
		s.log.Error().Err(err).Str("code", rsvp.ConfirmationCode).Str("queue", s.Queue.Name()).Msg("failed to enqueue notification")
	}
}

func (s *Service) audit(ctx context.Context, entry auditlog.Entry) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.LogAction(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Warn().Err(err).Str("action", entry.Action).Msg("audit log write failed")
	}
}

// ===========================
// 🔍 RSVP and its party by confirmation code
func (s *Service) GetByCode(ctx context.Context, code string) (*RSVP, *party.Party, error) {
	ctx, span := tracer.Start(ctx, "Service.GetByCode")
	defer span.End()

	rsvp, err := s.findByCode(ctx, s.Repo, code)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.Parties.FindByID(ctx, rsvp.PartyID)
	if err != nil {
		return nil, nil, err
	}
	return rsvp, p, nil
}

func (s *Service) findByCode(ctx context.Context, repo *Repository, code string) (*RSVP, error) {
	code = NormalizeCode(code)
	if !ValidCode(code) {
		return nil, apperror.NotFound("RSVP")
	}
	rsvp, err := repo.GetByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("RSVP")
	}
	if err != nil {
		return nil, apperror.Persistence("load rsvp", err)
	}
	return rsvp, nil
}

// ===========================
// 📃 Guest list of the active party, newest first
func (s *Service) List(ctx context.Context) ([]RSVP, error) {
	ctx, span := tracer.Start(ctx, "Service.List")
	defer span.End()

	p, err := s.Parties.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	rsvps, err := s.Repo.ListByParty(ctx, p.ID)
	if err != nil {
		return nil, apperror.Persistence("list guests", err)
	}
	return rsvps, nil
}

// ===========================
// 🔄 Update name and/or phone
func (s *Service) Update(ctx context.Context, code string, req UpdateRequest, ip string) (*RSVP, error) {
	ctx, span := tracer.Start(ctx, "Service.Update")
	defer span.End()

	updates, err := req.changes()
	if err != nil {
		return nil, err
	}

	var updated *RSVP
	err = s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		rsvp, err := s.findByCode(ctx, repo, code)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, rsvp, updates); err != nil {
			return apperror.Persistence("Failed to update guest", err)
		}
		req.apply(rsvp)
		updated = rsvp
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.GuestMutations.WithLabelValues("update").Inc()
	s.audit(ctx, auditlog.Entry{
		PartyID:          &updated.PartyID,
		ConfirmationCode: updated.ConfirmationCode,
		Action:           auditlog.ActionGuestUpdated,
		Details:          updates,
		IP:               ip,
	})
	s.Feed.Publish(ctx, updated.PartyID, livefeed.Event{
		Type:             livefeed.EventUpdated,
		ConfirmationCode: updated.ConfirmationCode,
		Name:             updated.Name,
		Attending:        string(updated.Attending),
		NumberOfGuests:   updated.NumberOfGuests,
		At:               s.Now(),
	})
	return updated, nil
}

// ===========================
// 🗑️ Delete by code, returning the guest's name
func (s *Service) Delete(ctx context.Context, code string, ip string) (string, error) {
	ctx, span := tracer.Start(ctx, "Service.Delete")
	defer span.End()

	var deleted *RSVP
	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		rsvp, err := s.findByCode(ctx, repo, code)
		if err != nil {
			return err
		}
		n, err := repo.Delete(ctx, rsvp.ID)
		if err != nil {
			return apperror.Persistence("Failed to delete guest", err)
		}
		if n == 0 {
			return apperror.NotFound("RSVP")
		}
		deleted = rsvp
		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.GuestMutations.WithLabelValues("delete").Inc()
	s.audit(ctx, auditlog.Entry{
		PartyID:          &deleted.PartyID,
		ConfirmationCode: deleted.ConfirmationCode,
		Action:           auditlog.ActionGuestDeleted,
		Details:          map[string]interface{}{"name": deleted.Name, "email": deleted.Email},
		IP:               ip,
	})
	s.Feed.Publish(ctx, deleted.PartyID, livefeed.Event{
		Type:             livefeed.EventDeleted,
		ConfirmationCode: deleted.ConfirmationCode,
		Name:             deleted.Name,
		At:               s.Now(),
	})
	return deleted.Name, nil
}

// ===========================
// 🧹 Delete every RSVP of the active party
func (s *Service) Clear(ctx context.Context, ip string) (int64, error) {
	ctx, span := tracer.Start(ctx, "Service.Clear")
	defer span.End()

	p, err := s.Parties.FindActive(ctx)
	if err != nil {
		return 0, err
	}
	n, err := s.Repo.DeleteByParty(ctx, p.ID)
	if err != nil {
		return 0, apperror.Persistence("Failed to clear guests", err)
	}

	metrics.GuestMutations.WithLabelValues("clear").Inc()
	s.log.Warn().Uint("party_id", p.ID).Int64("deleted", n).Msg("guest list cleared")
	s.audit(ctx, auditlog.Entry{
		PartyID: &p.ID,
		Action:  auditlog.ActionGuestsCleared,
		Details: map[string]interface{}{"deleted_count": n},
		IP:      ip,
	})
	s.Feed.Publish(ctx, p.ID, livefeed.Event{
		Type:         livefeed.EventCleared,
		DeletedCount: n,
		At:           s.Now(),
	})
	return n, nil
}
