package email

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements EmailSender for local development: instead of
// delivering, it writes each message as an HTML file to a directory so the
// magic link can be opened from disk.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender writing to dir.
// The directory is created on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

// SendEmail writes the message body to a timestamped HTML file.
func (d *DevSender) SendEmail(_ context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrFailedToSendEmail, err)
	}

	name := fmt.Sprintf("%s_%s_%s.html",
		time.Now().Format("20060102_150405.000"),
		sanitizeFilename(params.SendTo),
		sanitizeFilename(params.Subject),
	)

	if err := os.WriteFile(filepath.Join(d.dir, name), []byte(params.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: write file: %v", ErrFailedToSendEmail, err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename turns an arbitrary string into a filesystem-safe name.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeChars.ReplaceAllString(s, "")
	if len(s) > 64 {
		s = s[:64]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
