// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath     = "config.toml"
	DefaultHTTPAddr       = ":8000"
	DefaultJWTExpiresIn   = "30m"
	DefaultPGHost         = "127.0.0.1"
	DefaultPGPort         = 5432
	DefaultPGUser         = "postgres"
	DefaultPGDatabase     = "bookchat"
	DefaultPGSSLMode      = "disable"
	DefaultBooksBaseURL   = "https://www.googleapis.com/books/v1"
	DefaultBooksTimeout   = 10
	DefaultBooksLang      = "ru"
	DefaultOpenAIBaseURL  = "https://api.openai.com/v1"
	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultOpenAITimeout  = 30
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	Postgres PostgresConfig `toml:"postgres"`
	CORS     CORSConfig     `toml:"cors"`
	Books    BooksConfig    `toml:"books"`
	OpenAI   OpenAIConfig   `toml:"openai"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP server listen address.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AuthConfig holds JWT secret and token expiry (e.g. 30m).
type AuthConfig struct {
	JWTSecret    string `toml:"jwt_secret"`
	JWTExpiresIn string `toml:"jwt_expires_in"`
}

// ExpiresIn parses the token expiry, falling back to the default on bad input.
func (c AuthConfig) ExpiresIn() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.JWTExpiresIn))
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultJWTExpiresIn)
	}
	return d
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

// CORSConfig holds the allowed origins for browser clients.
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// BooksConfig holds the book search API credential and endpoint settings.
// An empty APIKey switches the client to its built-in sample catalog.
type BooksConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	LangRestrict   string `toml:"lang_restrict"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the HTTP timeout for book search calls.
func (c BooksConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultBooksTimeout * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OpenAIConfig holds the chat completion API credential and model settings.
// An empty APIKey disables the generic reply path entirely.
type OpenAIConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the HTTP timeout for completion calls.
func (c OpenAIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultOpenAITimeout * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the TOML config file at path and applies defaults for missing
// fields. A missing file is not an error; defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Auth: AuthConfig{
			JWTExpiresIn: DefaultJWTExpiresIn,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		Books: BooksConfig{
			BaseURL:        DefaultBooksBaseURL,
			LangRestrict:   DefaultBooksLang,
			TimeoutSeconds: DefaultBooksTimeout,
		},
		OpenAI: OpenAIConfig{
			BaseURL:        DefaultOpenAIBaseURL,
			Model:          DefaultOpenAIModel,
			TimeoutSeconds: DefaultOpenAITimeout,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
