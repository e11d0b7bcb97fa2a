package auditlog

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

type Service interface {
	LogAction(ctx context.Context, entry Entry) error
	GetAuditLogs(ctx context.Context, filter AuditLogFilter) ([]AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LogAction creates a new audit log entry
func (s *service) LogAction(ctx context.Context, entry Entry) error {
	details := entry.Details
	if details == nil {
		details = make(map[string]interface{})
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	status := entry.Status
	if status == "" {
		status = StatusSuccess
	}

	return s.repo.Create(ctx, &AuditLog{
		PartyID:          entry.PartyID,
		ConfirmationCode: entry.ConfirmationCode,
		Action:           entry.Action,
		Details:          datatypes.JSON(detailsJSON),
		IPAddress:        entry.IP,
		Status:           status,
	})
}

// GetAuditLogs clamps the limit and normalizes the action filter
func (s *service) GetAuditLogs(ctx context.Context, filter AuditLogFilter) ([]AuditLog, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	filter.Action = strings.ToUpper(strings.TrimSpace(filter.Action))
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	return s.repo.GetByFilter(ctx, filter)
}
