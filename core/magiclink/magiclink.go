package magiclink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/dmitrymomot/passwordless/core/email"
	"github.com/dmitrymomot/passwordless/core/session"
	"github.com/dmitrymomot/passwordless/pkg/logger"
)

// Service issues a session for an identity and delivers the claim link to
// the owner's email address. It is glue around the lifecycle engine: the
// session semantics (expiry, single-use) are enforced by session.Manager,
// delivery by the email sender.
type Service struct {
	manager *session.Manager
	sender  email.EmailSender
	cfg     Config
	tmpl    *template.Template
	log     *slog.Logger
}

// New creates a magic-link service.
func New(mgr *session.Manager, sender email.EmailSender, cfg Config, opts ...Option) (*Service, error) {
	if mgr == nil {
		return nil, ErrMissingManager
	}
	if sender == nil {
		return nil, ErrMissingSender
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: BaseURL: %v", ErrInvalidConfig, err)
	}
	cfg = cfg.withDefaults()

	s := &Service{
		manager: mgr,
		sender:  sender,
		cfg:     cfg,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.tmpl == nil {
		tmpl, err := template.New("magiclink").Parse(defaultTemplate)
		if err != nil {
			return nil, fmt.Errorf("%w: body template: %v", ErrInvalidConfig, err)
		}
		s.tmpl = tmpl
	}

	return s, nil
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a structured logger. Records are tagged with the
// component name; tokens are never logged.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log.With(logger.Component("magiclink"))
		}
	}
}

// WithTemplate sets a custom email body template. The template receives
// linkData with the claim URL and the link lifetime.
func WithTemplate(tmpl *template.Template) Option {
	return func(s *Service) {
		s.tmpl = tmpl
	}
}

// linkData is the template context for the email body.
type linkData struct {
	URL       string
	ExpiresIn string
}

// defaultTemplate is intentionally minimal; applications provide their own
// branded template via WithTemplate.
const defaultTemplate = `<p>Follow this link to sign in:</p>
<p><a href="{{.URL}}">{{.URL}}</a></p>
<p>The link expires in {{.ExpiresIn}} and can be used once.</p>`

// RequestLink issues a session for ref and emails the claim link to sendTo.
// The returned session is the freshly issued record; its ID never appears in
// logs.
func (s *Service) RequestLink(ctx context.Context, ref session.Ref, sendTo string, prov session.Provenance) (session.Session, error) {
	sess, err := s.manager.Issue(ctx, ref, prov)
	if err != nil {
		return session.Session{}, err
	}

	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, linkData{
		URL:       s.ClaimURL(sess.ID),
		ExpiresIn: s.manager.Timeout().String(),
	}); err != nil {
		return session.Session{}, errors.Join(ErrRenderBody, err)
	}

	if err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   sendTo,
		Subject:  s.cfg.Subject,
		BodyHTML: body.String(),
		Tag:      s.cfg.Tag,
	}); err != nil {
		s.log.ErrorContext(ctx, "magic link delivery failed",
			slog.String("authenticatable", ref.String()),
			logger.Error(err))
		return session.Session{}, err
	}

	s.log.InfoContext(ctx, "magic link sent",
		slog.String("authenticatable", ref.String()),
		slog.Time("expires_at", sess.ExpiresAt))
	return sess, nil
}

// ClaimURL builds the absolute URL that redeems the given session token.
func (s *Service) ClaimURL(id string) string {
	base := strings.TrimSuffix(s.cfg.BaseURL, "/")
	path := "/" + strings.TrimPrefix(s.cfg.ClaimPath, "/")
	return base + path + "?" + s.cfg.TokenParam + "=" + url.QueryEscape(id)
}
