package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raincheck/internal/types"
)

func TestJSON_WritesEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	JSON(rr, req, http.StatusOK, APIResponse{Data: map[string]string{"hello": "world"}})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data": {"hello": "world"}}`, rr.Body.String())
}

func TestJSON_OmitsEmptyMeta(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	JSON(rr, req, http.StatusOK, APIResponse{Data: "x"})
	assert.NotContains(t, rr.Body.String(), "meta")
}

func TestJSON_IncludesWarnings(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	JSON(rr, req, http.StatusOK, APIResponse{
		Data: "x",
		Meta: &types.ResponseMeta{Warnings: []string{"receipt write failed"}},
	})
	assert.JSONEq(t, `{"data": "x", "meta": {"warnings": ["receipt write failed"]}}`, rr.Body.String())
}

func TestError_AppError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(types.WithRequestID(req.Context(), "req-1"))

	Error(rr, req, types.NewAppError(types.ErrCodeUpstreamForecast, "provider unavailable", errors.New("secret detail")))

	assert.Equal(t, http.StatusBadGateway, rr.Code)

	var resp APIErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "upstream_forecast_unavailable", resp.Error.Code)
	assert.Equal(t, "provider unavailable", resp.Error.Message)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}

func TestError_NeverLeaksWrappedError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(rr, req, types.NewAppError(types.ErrCodeInternalDB, "insert failed", errors.New("password=hunter2")))
	assert.NotContains(t, rr.Body.String(), "hunter2")
}

func TestError_GenericError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(rr, req, errors.New("something broke"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp APIErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "internal_unexpected_error", resp.Error.Code)
	assert.NotContains(t, rr.Body.String(), "something broke")
}

func TestError_WrappedAppError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	inner := types.NewAppError(types.ErrCodeValidationInvalidEmail, "invalid email address", nil)
	Error(rr, req, errors.Join(errors.New("outer context"), inner))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDecodeJSON_Valid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email": "a@b.co", "location": "X"}`))
	rr := httptest.NewRecorder()

	var dst types.AlertRequest
	require.NoError(t, DecodeJSON(rr, req, &dst))
	assert.Equal(t, "a@b.co", dst.Email)
	assert.Equal(t, "X", dst.Location)
}

func TestDecodeJSON_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed", `{`},
		{"empty", ``},
		{"unknown field", `{"email": "a@b.co", "location": "X", "extra": 1}`},
		{"wrong type", `{"email": 42, "location": "X"}`},
		{"trailing value", `{"email": "a@b.co", "location": "X"}{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			var dst types.AlertRequest
			err := DecodeJSON(rr, req, &dst)
			require.Error(t, err)

			var appErr *types.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errCodeValidationInvalidJSON, appErr.Code)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
		})
	}
}

func TestDecodeJSON_OversizedBody(t *testing.T) {
	big := `{"email": "` + strings.Repeat("a", maxRequestBodySize+1) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	rr := httptest.NewRecorder()

	var dst types.AlertRequest
	err := DecodeJSON(rr, req, &dst)
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errCodeValidationInvalidJSON, appErr.Code)
}
