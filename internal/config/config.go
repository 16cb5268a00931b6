// Package config loads the YAML configuration of the digipost command.
//
// Environment variables are expanded (${VAR} or $VAR syntax) before
// parsing, so certificate passwords can be injected at runtime.
//
// # Example Configuration
//
//	environment: test
//	senderId: 123456
//
//	credential:
//	  pkcs12File: /etc/digipost/certificate.p12
//	  password: ${DIGIPOST_CERT_PASSWORD}
//
//	http:
//	  connectTimeout: 10s
//	  requestTimeout: 30s
//	  http2: true
//
//	log:
//	  level: debug
//	  format: json
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/digipost/credential"
	"github.com/vitalvas/digipost/digipost"
)

// Config is the root configuration structure
type Config struct {
	// Environment selects the API: production, test or nhn.
	Environment string `yaml:"environment"`

	// APIURL overrides the environment URL.
	APIURL string `yaml:"apiUrl"`

	SenderID   int64            `yaml:"senderId"`
	Credential CredentialConfig `yaml:"credential"`
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
}

// CredentialConfig points at either a PKCS#12 keystore or a PEM
// certificate and key pair.
type CredentialConfig struct {
	PKCS12File string `yaml:"pkcs12File"`
	Password   string `yaml:"password"`

	CertFile    string `yaml:"certFile"`
	KeyFile     string `yaml:"keyFile"`
	KeyPassword string `yaml:"keyPassword"`
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	HTTP2          bool          `yaml:"http2"`
	UserAgent      string        `yaml:"userAgent"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment variables in data, decodes it and validates
// the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.HTTP.ConnectTimeout == 0 {
		c.HTTP.ConnectTimeout = digipost.DefaultConnectTimeout
	}
	if c.HTTP.RequestTimeout == 0 {
		c.HTTP.RequestTimeout = digipost.DefaultRequestTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	switch c.Environment {
	case "production", "test", "nhn":
	default:
		return fmt.Errorf("environment must be 'production', 'test', or 'nhn', got '%s'", c.Environment)
	}

	if c.SenderID <= 0 {
		return errors.New("senderId must be a positive integer")
	}

	cred := c.Credential
	switch {
	case cred.PKCS12File != "" && (cred.CertFile != "" || cred.KeyFile != ""):
		return errors.New("credential: set either pkcs12File or certFile/keyFile, not both")
	case cred.PKCS12File == "" && (cred.CertFile == "" || cred.KeyFile == ""):
		return errors.New("credential: pkcs12File or both certFile and keyFile are required")
	}

	if c.HTTP.ConnectTimeout < 0 || c.HTTP.RequestTimeout < 0 {
		return errors.New("http timeouts must not be negative")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got '%s'", c.Log.Format)
	}

	return nil
}

// Sender returns the configured sender ID.
func (c *Config) Sender() (digipost.SenderID, error) {
	return digipost.NewSenderID(c.SenderID)
}

// LoadCredential loads the configured keystore or PEM pair.
func (c *Config) LoadCredential() (*credential.Credential, error) {
	if c.Credential.PKCS12File != "" {
		return credential.LoadPKCS12File(c.Credential.PKCS12File, c.Credential.Password)
	}

	return credential.LoadPEMFiles(c.Credential.CertFile, c.Credential.KeyFile, c.Credential.KeyPassword)
}

// ClientConfig returns the client configuration for the selected
// environment.
func (c *Config) ClientConfig(logger *slog.Logger) digipost.Config {
	var cfg digipost.Config

	switch c.Environment {
	case "test":
		cfg = digipost.TestConfig()
	case "nhn":
		cfg = digipost.NHNConfig()
	default:
		cfg = digipost.ProductionConfig()
	}

	if c.APIURL != "" {
		cfg.APIURL = c.APIURL
	}

	cfg.ConnectTimeout = c.HTTP.ConnectTimeout
	cfg.RequestTimeout = c.HTTP.RequestTimeout
	cfg.HTTP2 = c.HTTP.HTTP2
	cfg.UserAgent = c.HTTP.UserAgent
	cfg.Logger = logger

	return cfg
}

// NewLogger builds a logger writing to w with the configured level and
// format.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
