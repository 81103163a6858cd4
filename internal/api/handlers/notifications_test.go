package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raincheck/internal/core"
	"raincheck/internal/types"
)

// mockNotificationService implements NotificationServiceInterface for testing.
type mockNotificationService struct {
	items []types.NotificationHistoryItem
	err   error

	calls []string
}

func (m *mockNotificationService) ListNotifications(ctx context.Context, email string) ([]types.NotificationHistoryItem, error) {
	m.calls = append(m.calls, email)
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func getNotifications(t *testing.T, handler *NotificationHandler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	handler.HandleListNotifications(rr, req)
	return rr
}

func TestNotificationHandler_List_Success(t *testing.T) {
	newest := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	older := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	svc := &mockNotificationService{
		items: []types.NotificationHistoryItem{
			{Location: "Bogota", Forecast: "Lluvia torrencial", SentAt: newest},
			{Location: "Lima", Forecast: "Lluvia ligera", SentAt: older},
		},
	}
	handler := NewNotificationHandler(svc, nil)

	rr := getNotifications(t, handler, "/v1/notifications?email=user%40example.com")
	assert.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, svc.calls, 1)
	assert.Equal(t, "user@example.com", svc.calls[0])

	var resp struct {
		Data notificationListResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Data.Notifications, 2)
	assert.Equal(t, "Bogota", resp.Data.Notifications[0].Location)
	assert.Equal(t, "Lluvia torrencial", resp.Data.Notifications[0].Forecast)
	assert.True(t, resp.Data.Notifications[0].SentAt.After(resp.Data.Notifications[1].SentAt))
}

func TestNotificationHandler_List_EmptyHistory(t *testing.T) {
	svc := &mockNotificationService{items: []types.NotificationHistoryItem{}}
	handler := NewNotificationHandler(svc, nil)

	rr := getNotifications(t, handler, "/v1/notifications?email=new%40example.com")
	assert.Equal(t, http.StatusOK, rr.Code)

	// An unknown address is an empty list, not an error or null.
	var resp struct {
		Data struct {
			Notifications json.RawMessage `json:"notifications"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.JSONEq(t, `[]`, string(resp.Data.Notifications))
}

func TestNotificationHandler_List_MissingEmail(t *testing.T) {
	svc := &mockNotificationService{
		err: types.NewAppError(types.ErrCodeValidationMissingField, "email parameter is required", nil),
	}
	handler := NewNotificationHandler(svc, nil)

	rr := getNotifications(t, handler, "/v1/notifications")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp core.APIErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "validation_missing_required_field", resp.Error.Code)
}

func TestNotificationHandler_List_InvalidEmail(t *testing.T) {
	svc := &mockNotificationService{
		err: types.NewAppError(types.ErrCodeValidationInvalidEmail, "invalid email address", nil),
	}
	handler := NewNotificationHandler(svc, nil)

	rr := getNotifications(t, handler, "/v1/notifications?email=not-an-email")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotificationHandler_List_StoreFailure(t *testing.T) {
	svc := &mockNotificationService{
		err: types.NewAppError(types.ErrCodeInternalDB, "query failed", nil),
	}
	handler := NewNotificationHandler(svc, nil)

	rr := getNotifications(t, handler, "/v1/notifications?email=user%40example.com")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp core.APIErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "internal_database_error", resp.Error.Code)
}
