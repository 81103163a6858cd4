package types

import "context"

// ForecastClient retrieves a short-range forecast for a free-form location
// and reduces the provider payload to a ForecastResult.
//
// Failures are classified: provider unreachable/erroring yields an AppError
// with ErrCodeUpstreamForecast; a successful response missing the expected
// structure yields ErrCodeUpstreamForecastMalformed. A single attempt is made
// per call.
type ForecastClient interface {
	Fetch(ctx context.Context, location string) (ForecastResult, error)
}

// NotificationDispatcher transmits a warning message to a single recipient.
// Sending an email is the system's only irreversible external effect; Send is
// attempted at most once per alert evaluation. Transport or auth failures
// yield ErrCodeUpstreamEmailProvider.
type NotificationDispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotificationStore is the append-only audit log of dispatched warnings.
type NotificationStore interface {
	// Append records a dispatched warning, assigning ID and SentAt at call
	// time. Failures yield ErrCodeInternalDB.
	Append(ctx context.Context, email, location, forecastText string) (NotificationRecord, error)

	// QueryByEmail returns the recipient's records ordered most-recent-first.
	// An empty history is a successful empty slice, not an error.
	QueryByEmail(ctx context.Context, email string) ([]NotificationRecord, error)
}
