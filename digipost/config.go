package digipost

import (
	"log/slog"
	"net/http"
	"time"
)

// Digipost API environments.
const (
	ProductionURL = "https://api.digipost.no"
	TestURL       = "https://api.test.digipost.no"
	NHNURL        = "https://api.nhn.digipost.no"
)

// Client defaults.
const (
	DefaultConnectTimeout = 10 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultUserAgent      = "digipost-api-client-go/1.0.0"
)

// MediaType is the Digipost v8 XML media type used for Accept and
// Content-Type headers.
const MediaType = "application/vnd.digipost-v8+xml"

// multipartMediaType is the Content-Type prefix for multipart uploads.
const multipartMediaType = "multipart/vnd.digipost-v8+xml"

// Config configures a Client. Zero values are replaced with defaults by
// NewClient.
type Config struct {
	// APIURL is the base URL of the API. Defaults to ProductionURL.
	APIURL string

	// ConnectTimeout bounds dialing and the TLS handshake. It only applies
	// when Transport is nil.
	ConnectTimeout time.Duration

	// RequestTimeout bounds a whole request including reading the body.
	RequestTimeout time.Duration

	// Logger receives request logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Transport is the base transport. When nil, a clone of
	// http.DefaultTransport is used.
	Transport *http.Transport

	// HTTP2 configures the base transport with golang.org/x/net/http2,
	// which adds health-check pings on idle connections.
	HTTP2 bool

	// UserAgent overrides DefaultUserAgent.
	UserAgent string
}

// ProductionConfig returns the configuration for the production API.
func ProductionConfig() Config {
	return Config{
		APIURL:         ProductionURL,
		ConnectTimeout: DefaultConnectTimeout,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// TestConfig returns the configuration for the Digipost test environment.
func TestConfig() Config {
	cfg := ProductionConfig()
	cfg.APIURL = TestURL

	return cfg
}

// NHNConfig returns the configuration for the Norsk Helsenett API.
func NHNConfig() Config {
	cfg := ProductionConfig()
	cfg.APIURL = NHNURL

	return cfg
}

func (c Config) withDefaults() Config {
	if c.APIURL == "" {
		c.APIURL = ProductionURL
	}

	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	return c
}
