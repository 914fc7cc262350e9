package email_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passwordless/core/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Sign in",
		BodyHTML: "<a href=\"https://example.com\">link</a>",
	}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*email.SendEmailParams){
		"missing recipient": func(p *email.SendEmailParams) { p.SendTo = "" },
		"invalid recipient": func(p *email.SendEmailParams) { p.SendTo = "not-an-email" },
		"missing subject":   func(p *email.SendEmailParams) { p.Subject = "" },
		"missing body":      func(p *email.SendEmailParams) { p.BodyHTML = "" },
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := valid
			mutate(&p)
			require.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
		})
	}
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(filepath.Join(dir, "outbox"))

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Sign in to Example",
		BodyHTML: "<p>magic link</p>",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "outbox"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, "outbox", entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "<p>magic link</p>", string(content))
	assert.Contains(t, entries[0].Name(), "userexample.com")

	t.Run("rejects invalid params", func(t *testing.T) {
		t.Parallel()
		err := sender.SendEmail(context.Background(), email.SendEmailParams{})
		require.ErrorIs(t, err, email.ErrInvalidParams)
	})
}
