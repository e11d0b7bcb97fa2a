package reports

import (
	"context"
	"strings"
	"time"

	"github.com/sharath018/party-rsvp-backend/internal/apperror"
	"github.com/sharath018/party-rsvp-backend/internal/party"
	"github.com/sharath018/party-rsvp-backend/internal/rsvp"
)

// GuestSource lists the active party's guests.
type GuestSource interface {
	List(ctx context.Context) ([]rsvp.RSVP, error)
}

// PartyFinder resolves the active party.
type PartyFinder interface {
	FindActive(ctx context.Context) (*party.Party, error)
}

type Service struct {
	guests   GuestSource
	parties  PartyFinder
	exporter GuestExporter
	now      func() time.Time
}

func NewService(guests GuestSource, parties PartyFinder, exporter GuestExporter) *Service {
	return &Service{
		guests:   guests,
		parties:  parties,
		exporter: exporter,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ExportGuests builds the guest report and renders it.
func (s *Service) ExportGuests(ctx context.Context, format string) ([]byte, string, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format == "xlsx" {
		format = FormatExcel
	}
	switch format {
	case FormatCSV, FormatExcel, FormatPDF:
	default:
		return nil, "", "", apperror.Validation("format must be one of csv, excel, pdf")
	}

	p, err := s.parties.FindActive(ctx)
	if err != nil {
		return nil, "", "", err
	}
	guests, err := s.guests.List(ctx)
	if err != nil {
		return nil, "", "", err
	}

	report := GuestReport{
		PartyTitle:  p.Title,
		GeneratedAt: s.now(),
		Rows:        make([]GuestRow, 0, len(guests)),
	}
	for _, g := range guests {
		report.Rows = append(report.Rows, GuestRow{
			Name:                g.Name,
			Email:               g.Email,
			Phone:               g.Phone,
			Attending:           string(g.Attending),
			NumberOfGuests:      g.NumberOfGuests,
			DietaryRestrictions: g.DietaryRestrictions,
			Message:             g.Message,
			ConfirmationCode:    g.ConfirmationCode,
			SubmittedAt:         g.SubmittedAt,
		})
		if g.Attending == rsvp.AttendingYes && g.NumberOfGuests > 0 {
			report.TotalAttending += g.NumberOfGuests
		}
	}

	return s.exporter.Export(format, report)
}
