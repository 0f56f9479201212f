// Package config loads and validates application configuration from
// environment variables (VOCAB_ prefix) and an optional config file.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Review  ReviewConfig  `mapstructure:"review"`
}

// ServerConfig contains all HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig locates the local SQLite database file.
type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// CatalogConfig locates the external level→words database. An empty path is
// valid: the application degrades to custom-word-only mode.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// ReviewConfig tunes the review session engine.
type ReviewConfig struct {
	// SessionCap bounds the queue length of an endless practice session.
	SessionCap int `mapstructure:"session_cap" validate:"required,gt=0"`
}
