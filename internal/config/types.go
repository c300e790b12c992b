// Package config loads the listkit demo server configuration.
// Decoupled from CLI concerns so other hosts can reuse it.
package config

// Config holds the demo server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8089".
	Addr string `koanf:"addr"`

	// SessionSecret signs the session cookie backing the search cache.
	SessionSecret string `koanf:"session_secret"`

	// SessionName is the session cookie name.
	SessionName string `koanf:"session_name"`

	// PageSize is the default list page size.
	PageSize int `koanf:"page_size"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `koanf:"log_level"`
}
