// Package config defines the global configuration structure for the Raincheck
// service. Configuration is loaded once at process start and is immutable
// thereafter; business logic never reads the process environment directly.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File (Lowest)
//
// Any missing required value or invalid format causes startup to fail
// immediately (fail fast).
package config

import (
	"time"

	"raincheck/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used throughout configuration to prevent accidental logging of credentials.
type SecretString = types.SecretString

// Config is the top-level configuration struct. It is populated once during
// process initialization and never modified. Sub-components receive only the
// specific config subsets they require.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Server   ServerConfig
	Database DatabaseConfig
	Weather  WeatherConfig
	SMTP     SMTPConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"29s"`
}

// DatabaseConfig holds database connection and pool tuning parameters.
type DatabaseConfig struct {
	URL SecretString `envconfig:"DATABASE_URL" validate:"required"`

	MaxConns          int           `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns          int           `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
}

// WeatherConfig holds the forecast provider credentials and request tuning.
type WeatherConfig struct {
	APIKey  SecretString  `envconfig:"WEATHER_API_KEY" validate:"required"`
	BaseURL string        `envconfig:"WEATHER_API_BASE_URL" default:"https://api.weatherapi.com" validate:"url"`
	Timeout time.Duration `envconfig:"WEATHER_API_TIMEOUT" default:"10s"`
}

// SMTPConfig holds the outbound mail transport credentials. The defaults
// match an authenticated Gmail submission over STARTTLS.
type SMTPConfig struct {
	Host       string       `envconfig:"EMAIL_HOST" default:"smtp.gmail.com" validate:"required"`
	Port       int          `envconfig:"EMAIL_PORT" default:"587"`
	Username   string       `envconfig:"EMAIL_USER" validate:"required"`
	Password   SecretString `envconfig:"EMAIL_PASS" validate:"required"`
	From       string       `envconfig:"EMAIL_FROM" validate:"omitempty,email"`
	Encryption string       `envconfig:"EMAIL_ENCRYPTION" default:"starttls" validate:"oneof=starttls ssl_tls none"`
}

// FromAddress returns the sender address, falling back to the SMTP username
// when EMAIL_FROM is not set (the common case for Gmail accounts).
func (c SMTPConfig) FromAddress() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}
