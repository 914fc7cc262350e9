// Package config loads typed configuration from environment variables,
// with optional .env file support for local development.
//
// Configuration structs declare their variables with `env` tags; parsing is
// delegated to caarlos0/env and each type is loaded once per process:
//
//	type SessionConfig struct {
//		Timeout            time.Duration `env:"SESSION_TIMEOUT" envDefault:"15m"`
//		RestrictTokenReuse bool          `env:"SESSION_RESTRICT_TOKEN_REUSE" envDefault:"true"`
//	}
//
//	var cfg SessionConfig
//	config.MustLoad(&cfg)
package config
