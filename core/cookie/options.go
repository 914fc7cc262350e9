package cookie

import "net/http"

// Options are the cookie attributes applied when writing values.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

func defaultOptions() Options {
	return Options{
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Option overrides a cookie attribute.
type Option func(*Options)

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets the cookie lifetime in seconds.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

// WithSecure toggles the Secure attribute.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithHTTPOnly toggles the HttpOnly attribute.
func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HTTPOnly = httpOnly
	}
}

// WithSameSite sets the SameSite mode.
func WithSameSite(mode http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = mode
	}
}
