package config

// Default configuration values.
const (
	DefaultAddr        = ":8089"
	DefaultSessionName = "listkit"
	DefaultPageSize    = 10
	DefaultLogLevel    = "info"
)

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.SessionName == "" {
		c.SessionName = DefaultSessionName
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}
