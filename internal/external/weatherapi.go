package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"raincheck/internal/types"
)

// weatherAPIBase is the default WeatherAPI base URL. Overridable in tests via
// WeatherClientConfig.BaseURL.
const weatherAPIBase = "https://api.weatherapi.com"

// forecastDays is the size of the forecast window requested from the
// provider. The operative forecast is the first day of that window.
const forecastDays = 2

// WeatherClientConfig holds the configuration for creating a WeatherClient.
type WeatherClientConfig struct {
	APIKey  string
	BaseURL string        // Override for testing; defaults to weatherAPIBase
	Timeout time.Duration // Bounded request timeout; defaults to 10s
	Logger  *slog.Logger
}

// WeatherClient implements types.ForecastClient against the WeatherAPI
// forecast.json endpoint. Requests go through BaseClient for circuit breaking
// and error mapping; a single attempt is made per call.
type WeatherClient struct {
	base    *BaseClient
	apiKey  string
	baseURL string
	logger  *slog.Logger
}

// NewWeatherClient creates a new WeatherClient with a bounded request timeout.
func NewWeatherClient(cfg WeatherClientConfig) *WeatherClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = weatherAPIBase
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := NewBaseClient(
		&http.Client{Timeout: timeout},
		"weatherapi",
		"Raincheck/1.0",
	)

	return &WeatherClient{
		base:    base,
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// forecastResponse mirrors the subset of the WeatherAPI forecast.json payload
// the service consumes. Pointer fields distinguish "absent" from zero values
// so malformed payloads are detected instead of silently producing code 0.
type forecastResponse struct {
	Forecast *struct {
		ForecastDay []struct {
			Day *struct {
				Condition *struct {
					Text string `json:"text"`
					Code *int   `json:"code"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Fetch retrieves the two-day forecast for location and reduces it to the
// operative day's condition. The request carries the fixed configuration
// days=2, aqi=no, alerts=no, lang=es.
//
// Error mapping:
//   - transport error, timeout, or non-2xx -> upstream_forecast_unavailable
//   - 2xx with missing forecast structure  -> upstream_forecast_malformed
func (c *WeatherClient) Fetch(ctx context.Context, location string) (types.ForecastResult, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", location)
	q.Set("days", fmt.Sprintf("%d", forecastDays))
	q.Set("aqi", "no")
	q.Set("alerts", "no")
	q.Set("lang", "es")

	reqURL := c.baseURL + "/v1/forecast.json?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.ForecastResult{}, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to create forecast request",
			err,
		)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return types.ForecastResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("forecast provider returned error status",
			"status", resp.StatusCode,
			"location", location,
		)
		return types.ForecastResult{}, types.NewAppError(
			types.ErrCodeUpstreamForecast,
			fmt.Sprintf("forecast provider returned status %d", resp.StatusCode),
			nil,
		)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return types.ForecastResult{}, types.NewAppError(
			types.ErrCodeUpstreamForecastMalformed,
			"forecast payload is not valid JSON",
			err,
		)
	}

	return c.reduce(payload, location)
}

// reduce extracts the operative day's condition from the provider payload.
func (c *WeatherClient) reduce(payload forecastResponse, location string) (types.ForecastResult, error) {
	malformed := func(reason string) (types.ForecastResult, error) {
		c.logger.Warn("forecast payload malformed",
			"reason", reason,
			"location", location,
		)
		return types.ForecastResult{}, types.NewAppError(
			types.ErrCodeUpstreamForecastMalformed,
			"forecast payload missing expected fields: "+reason,
			nil,
		)
	}

	if payload.Forecast == nil {
		return malformed("forecast")
	}
	if len(payload.Forecast.ForecastDay) == 0 {
		return malformed("forecast.forecastday")
	}

	day := payload.Forecast.ForecastDay[0].Day
	if day == nil {
		return malformed("forecast.forecastday[0].day")
	}
	if day.Condition == nil || day.Condition.Code == nil {
		return malformed("forecast.forecastday[0].day.condition")
	}

	return types.ForecastResult{
		ConditionText: day.Condition.Text,
		ConditionCode: *day.Condition.Code,
		DayIndex:      0,
	}, nil
}

// Compile-time assertion that WeatherClient satisfies ForecastClient.
var _ types.ForecastClient = (*WeatherClient)(nil)
