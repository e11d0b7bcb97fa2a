package party

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sharath018/party-rsvp-backend/config"
	"github.com/sharath018/party-rsvp-backend/database"
	"github.com/sharath018/party-rsvp-backend/internal/apperror"
)

// Service wraps business logic for the single active party
type Service struct {
	Repo     *Repository
	Defaults config.PartyDefaults
	Now      func() time.Time
	log      zerolog.Logger
}

func NewService(r *Repository, defaults config.PartyDefaults, logger zerolog.Logger) *Service {
	return &Service{
		Repo:     r,
		Defaults: defaults,
		Now:      func() time.Time { return time.Now().UTC() },
		log:      logger.With().Str("component", "party").Logger(),
	}
}

// ===========================
// 🌱 Ensure the default party exists. Safe to call any number of times; the
// bool reports whether a record was created by this call.
func (s *Service) EnsureDefault(ctx context.Context) (*Party, bool, error) {
	ctx, span := tracer.Start(ctx, "Service.EnsureDefault")
	defer span.End()

	var (
		result  *Party
		created bool
	)
	err := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		p, err := repo.GetActive(ctx)
		if err == nil {
			result = p
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		p = FromDefaults(s.Defaults)
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
		result, created = p, true
		return nil
	})
	if database.IsUniqueViolation(err) {
		// A concurrent caller seeded the party first.
		p, getErr := s.Repo.GetActive(ctx)
		if getErr == nil {
			return p, false, nil
		}
		err = getErr
	}
	if err != nil {
		return nil, false, apperror.Persistence("ensure default party", err)
	}
	if created {
		s.log.Info().Uint("party_id", result.ID).Str("title", result.Title).Msg("default party created")
	}
	return result, created, nil
}

// ===========================
// 🔍 Active party for GET /api/party, seeding the default when absent
func (s *Service) GetActive(ctx context.Context) (*Party, error) {
	p, _, err := s.EnsureDefault(ctx)
	return p, err
}

// ===========================
// 🔍 Active party or NotFound, used by every RSVP operation
func (s *Service) FindActive(ctx context.Context) (*Party, error) {
	p, err := s.Repo.GetActive(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Party")
	}
	if err != nil {
		return nil, apperror.Persistence("load active party", err)
	}
	return p, nil
}

// ===========================
// 📊 Attendance stats for the active party
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	ctx, span := tracer.Start(ctx, "Service.GetStats")
	defer span.End()

	p, err := s.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.Repo.CountRSVPs(ctx, p.ID)
	if err != nil {
		return nil, apperror.Persistence("count rsvps", err)
	}
	attending, err := s.Repo.SumAttending(ctx, p.ID)
	if err != nil {
		return nil, apperror.Persistence("sum attending guests", err)
	}

	return &Stats{
		TotalRSVPs:     total,
		TotalAttending: attending,
		MaxGuests:      p.MaxGuests,
		AvailableSpots: AvailableSpots(p.MaxGuests, attending),
		IsRSVPOpen:     p.IsRSVPOpen(s.Now()),
	}, nil
}

// ===========================
// 🔍 Party by ID, used by the notification worker
func (s *Service) FindByID(ctx context.Context, id uint) (*Party, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Party")
	}
	if err != nil {
		return nil, apperror.Persistence("load party", err)
	}
	return p, nil
}
