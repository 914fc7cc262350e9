package session

import "time"

// Config holds lifecycle engine configuration.
type Config struct {
	// Timeout is the duration after which an issued session can no longer
	// authenticate a new login.
	Timeout time.Duration `env:"SESSION_TIMEOUT" envDefault:"15m"`

	// RestrictTokenReuse toggles single-use enforcement. When true a session
	// token authenticates exactly once; when false it may authenticate
	// repeatedly until its deadline, but remains time-bound.
	RestrictTokenReuse bool `env:"SESSION_RESTRICT_TOKEN_REUSE" envDefault:"true"`

	// TokenLength is the number of random bytes per session token.
	TokenLength int `env:"SESSION_TOKEN_LENGTH" envDefault:"32"`
}

// defaultConfig returns the default lifecycle configuration.
func defaultConfig() Config {
	return Config{
		Timeout:            15 * time.Minute,
		RestrictTokenReuse: true,
		TokenLength:        32,
	}
}

// Option is a functional option for configuring the lifecycle engine.
type Option func(*Config)

// WithTimeout sets the claim deadline for newly issued sessions.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithRestrictTokenReuse toggles single-use enforcement.
func WithRestrictTokenReuse(restrict bool) Option {
	return func(c *Config) {
		c.RestrictTokenReuse = restrict
	}
}

// WithTokenLength sets the number of random bytes per session token.
func WithTokenLength(n int) Option {
	return func(c *Config) {
		c.TokenLength = n
	}
}
