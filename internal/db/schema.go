package db

import (
	"context"
	"fmt"
)

// notificationsSchema is the append-only receipt table for dispatched
// warnings. id is assigned on insert and never reused; rows are never
// updated or deleted.
const notificationsSchema = `
CREATE TABLE IF NOT EXISTS notifications (
	id       BIGSERIAL PRIMARY KEY,
	email    TEXT        NOT NULL,
	location TEXT        NOT NULL,
	forecast TEXT        NOT NULL,
	sent_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_email_sent_at
	ON notifications (email, sent_at DESC);
`

// EnsureSchema creates the notifications table and its lookup index if they
// do not exist. Called once at startup.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, notificationsSchema); err != nil {
		return fmt.Errorf("ensuring notifications schema: %w", err)
	}
	return nil
}
