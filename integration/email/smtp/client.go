package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/passwordless/core/email"
)

// Client implements email.EmailSender over plain SMTP. It supports direct
// TLS, STARTTLS upgrade, and unencrypted connections, and is safe for
// concurrent use.
type Client struct {
	config Config
	auth   smtp.Auth
}

// New creates an SMTP-backed email sender. All configuration fields are
// required so misconfiguration surfaces at startup.
func New(cfg Config) (email.EmailSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", email.ErrInvalidConfig)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", email.ErrInvalidConfig)
	}
	if cfg.TLSMode != "starttls" && cfg.TLSMode != "tls" && cfg.TLSMode != "plain" {
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", email.ErrInvalidConfig)
	}
	if !isValidEmail(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if !isValidEmail(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", email.ErrInvalidConfig)
	}

	return &Client{
		config: cfg,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}, nil
}

// MustNewClient creates an SMTP client that panics on invalid config.
func MustNewClient(cfg Config) email.EmailSender {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements email.EmailSender over an SMTP transaction in the
// mode selected by Config.TLSMode.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	message := c.buildMessage(params)
	serverAddr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	var err error
	switch c.config.TLSMode {
	case "tls":
		err = c.sendWithTLS(serverAddr, params.SendTo, message)
	case "starttls":
		err = c.sendWithSTARTTLS(serverAddr, params.SendTo, message)
	case "plain":
		err = c.sendPlain(serverAddr, params.SendTo, message)
	}
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}
	return nil
}

// buildMessage assembles the MIME message with an HTML body.
func (c *Client) buildMessage(params email.SendEmailParams) []byte {
	var msg strings.Builder
	writeHeader := func(key, value string) {
		msg.WriteString(key)
		msg.WriteString(": ")
		msg.WriteString(value)
		msg.WriteString("\r\n")
	}

	writeHeader("From", c.config.SenderEmail)
	writeHeader("To", params.SendTo)
	writeHeader("Reply-To", c.config.SupportEmail)
	writeHeader("Subject", params.Subject)
	writeHeader("Date", time.Now().Format(time.RFC1123Z))
	writeHeader("Message-ID", fmt.Sprintf("<%d.%s@%s>",
		time.Now().UnixNano(),
		strings.ReplaceAll(params.Tag, " ", "_"),
		c.config.Host,
	))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `text/html; charset="UTF-8"`)

	msg.WriteString("\r\n")
	msg.WriteString(params.BodyHTML)

	return []byte(msg.String())
}

func (c *Client) sendWithTLS(serverAddr, rcpt string, message []byte) error {
	conn, err := tls.Dial("tcp", serverAddr, &tls.Config{ServerName: c.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect with TLS: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return c.transact(client, rcpt, message)
}

func (c *Client) sendWithSTARTTLS(serverAddr, rcpt string, message []byte) error {
	client, err := smtp.Dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.StartTLS(&tls.Config{ServerName: c.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return c.transact(client, rcpt, message)
}

func (c *Client) sendPlain(serverAddr, rcpt string, message []byte) error {
	client, err := smtp.Dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = client.Close() }()

	return c.transact(client, rcpt, message)
}

// transact runs AUTH, MAIL, RCPT, DATA, QUIT on an open client.
func (c *Client) transact(client *smtp.Client, rcpt string, message []byte) error {
	if err := client.Auth(c.auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.Mail(c.config.SenderEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(rcpt); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Some servers drop the connection right after DATA; the message is
	// already accepted at that point, so Quit errors are ignored.
	_ = client.Quit()
	return nil
}

// emailRegex is a pragmatic address check; full RFC validation is the
// receiving server's job.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(addr string) bool {
	return emailRegex.MatchString(addr)
}
