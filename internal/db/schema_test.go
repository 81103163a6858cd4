package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema_Success(t *testing.T) {
	db := new(mockDBTX)
	ctx := context.Background()

	db.On("Exec", ctx, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "CREATE TABLE IF NOT EXISTS notifications") &&
			strings.Contains(sql, "idx_notifications_email_sent_at")
	}), mock.Anything).Return(pgconn.CommandTag{}, nil)

	require.NoError(t, EnsureSchema(ctx, db))
	db.AssertExpectations(t)
}

func TestEnsureSchema_ExecError(t *testing.T) {
	db := new(mockDBTX)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("permission denied"))

	err := EnsureSchema(ctx, db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ensuring notifications schema")
}
