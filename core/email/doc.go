// Package email defines the email delivery contract used to send magic-link
// messages, plus a development sender that writes messages to disk instead
// of delivering them.
//
// Production senders live in integration/email (Postmark, SMTP); everything
// in core depends only on the EmailSender interface:
//
//	type EmailSender interface {
//		SendEmail(ctx context.Context, params SendEmailParams) error
//	}
package email
