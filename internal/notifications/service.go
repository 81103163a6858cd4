// Package notifications implements the read path over the notification
// receipt store. It has no dependency on the alert pipeline.
package notifications

import (
	"context"

	"raincheck/internal/types"
)

// EmailValidator validates a bare email parameter. core.Validator satisfies it.
type EmailValidator interface {
	ValidateEmail(email string) error
}

// QueryService returns a recipient's stored notification receipts.
type QueryService struct {
	store     types.NotificationStore
	validator EmailValidator
}

// NewQueryService creates a QueryService.
func NewQueryService(store types.NotificationStore, validator EmailValidator) *QueryService {
	return &QueryService{store: store, validator: validator}
}

// ListNotifications returns the recipient's history, newest first. An empty
// history is a successful empty slice. Store failures are surfaced to the
// caller, never masked as an empty result.
func (s *QueryService) ListNotifications(ctx context.Context, email string) ([]types.NotificationHistoryItem, error) {
	if err := s.validator.ValidateEmail(email); err != nil {
		return nil, err
	}

	records, err := s.store.QueryByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	items := make([]types.NotificationHistoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.HistoryItem())
	}
	return items, nil
}
