package magiclink

// Config holds magic-link delivery configuration.
type Config struct {
	// BaseURL is the public origin of the application, e.g.
	// "https://app.example.com".
	BaseURL string `env:"MAGICLINK_BASE_URL,required"`

	// ClaimPath is the path that redeems tokens.
	ClaimPath string `env:"MAGICLINK_CLAIM_PATH" envDefault:"/auth/claim"`

	// TokenParam is the query parameter carrying the token.
	TokenParam string `env:"MAGICLINK_TOKEN_PARAM" envDefault:"token"`

	// Subject of the sign-in email.
	Subject string `env:"MAGICLINK_SUBJECT" envDefault:"Your sign-in link"`

	// Tag labels outgoing messages for delivery analytics.
	Tag string `env:"MAGICLINK_TAG" envDefault:"magic-link"`
}

func (c Config) withDefaults() Config {
	if c.ClaimPath == "" {
		c.ClaimPath = "/auth/claim"
	}
	if c.TokenParam == "" {
		c.TokenParam = "token"
	}
	if c.Subject == "" {
		c.Subject = "Your sign-in link"
	}
	if c.Tag == "" {
		c.Tag = "magic-link"
	}
	return c
}
