// Package types defines the shared domain model for the Raincheck service:
// alert requests, forecast snapshots, notification records, and the closed
// error taxonomy used across all layers.
package types

import "time"

// AlertRequest is the inbound payload for an alert evaluation. Both fields
// are required; Email must be a syntactically valid address.
type AlertRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Location string `json:"location" validate:"required"`
}

// ForecastResult is the canonical reduction of a provider forecast payload:
// the condition text and code for the operative day of the two-day window.
// Produced fresh per call; never persisted directly.
type ForecastResult struct {
	ConditionText string
	ConditionCode int
	DayIndex      int
}

// AlertDecision is the output of the severity evaluation. ConditionText and
// ConditionCode pass through from the forecast unchanged.
type AlertDecision struct {
	ShouldNotify  bool
	ConditionText string
	ConditionCode int
}

// AlertResult is the outcome of a completed alert evaluation. Notified is
// true only when a warning email actually left the system.
type AlertResult struct {
	ForecastCode        int    `json:"forecast_code"`
	ForecastDescription string `json:"forecast_description"`
	Notified            bool   `json:"notified"`
}

// NotificationRecord is the durable receipt of a dispatched warning. A record
// exists iff a notification was both decided and successfully dispatched;
// records are never mutated or deleted.
type NotificationRecord struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Location     string    `json:"location"`
	ForecastText string    `json:"forecast"`
	SentAt       time.Time `json:"sent_at"`
}

// NotificationHistoryItem is the read-path DTO for a stored notification.
type NotificationHistoryItem struct {
	Location string    `json:"location"`
	Forecast string    `json:"forecast"`
	SentAt   time.Time `json:"sent_at"`
}

// HistoryItem converts a stored record into its read-path representation.
func (r NotificationRecord) HistoryItem() NotificationHistoryItem {
	return NotificationHistoryItem{
		Location: r.Location,
		Forecast: r.ForecastText,
		SentAt:   r.SentAt,
	}
}

// ResponseMeta contains non-blocking metadata returned with API responses.
// Warnings convey secondary diagnostics that do not change the outcome,
// such as a failed audit write after a successful dispatch.
type ResponseMeta struct {
	Warnings []string `json:"warnings,omitempty"`
}
