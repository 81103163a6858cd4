package db

import (
	"context"

	"github.com/jonboulle/clockwork"

	"raincheck/internal/types"
)

// NotificationRepository provides data access for the notifications table.
// It implements types.NotificationStore.
//
// Appends are independent inserts with store-assigned ids, so concurrent
// requests cannot corrupt each other; ordering across requests is defined
// only by sent_at. Records are never updated or deleted.
type NotificationRepository struct {
	db    DBTX
	clock clockwork.Clock
}

// NewNotificationRepository creates a NotificationRepository backed by the
// given database connection (pool or transaction). The real clock assigns
// sent_at at insert time.
func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db, clock: clockwork.NewRealClock()}
}

// NewNotificationRepositoryWithClock creates a repository with an injected
// clock so tests can freeze sent_at.
func NewNotificationRepositoryWithClock(db DBTX, clock clockwork.Clock) *NotificationRepository {
	return &NotificationRepository{db: db, clock: clock}
}

// Append inserts a notification receipt. The database assigns the id; sent_at
// is taken from the repository clock at the moment of the call, not at
// decision time.
func (r *NotificationRepository) Append(ctx context.Context, email, location, forecastText string) (types.NotificationRecord, error) {
	record := types.NotificationRecord{
		Email:        email,
		Location:     location,
		ForecastText: forecastText,
		SentAt:       r.clock.Now().UTC(),
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO notifications (email, location, forecast, sent_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		record.Email,
		record.Location,
		record.ForecastText,
		record.SentAt,
	)
	if err := row.Scan(&record.ID); err != nil {
		return types.NotificationRecord{}, types.NewAppError(
			types.ErrCodeInternalDB,
			"failed to append notification",
			err,
		)
	}

	return record, nil
}

// QueryByEmail retrieves all notification receipts for a recipient, newest
// first. An email with no history yields an empty slice, not an error.
func (r *NotificationRepository) QueryByEmail(ctx context.Context, email string) ([]types.NotificationRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, location, forecast, sent_at
		 FROM notifications
		 WHERE email = $1
		 ORDER BY sent_at DESC`,
		email,
	)
	if err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalDB,
			"failed to query notifications",
			err,
		)
	}
	defer rows.Close()

	records := []types.NotificationRecord{}
	for rows.Next() {
		var rec types.NotificationRecord
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.Location, &rec.ForecastText, &rec.SentAt); err != nil {
			return nil, types.NewAppError(
				types.ErrCodeInternalDB,
				"failed to scan notification row",
				err,
			)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalDB,
			"error iterating notification rows",
			err,
		)
	}

	return records, nil
}

// Compile-time assertion that the repository satisfies NotificationStore.
var _ types.NotificationStore = (*NotificationRepository)(nil)
