// internal/domain/channel/sender.go
package channel

import "context"

// ChatSender delivers a text message to a WhatsApp recipient.
// The sender argument selects the sending number/instance; empty means the
// client's configured default. The returned detail is a human-readable
// description of the delivery outcome. Implementations must return errors
// whose message is safe to surface in a run summary.
type ChatSender interface {
	SendText(ctx context.Context, recipient, message, sender string) (detail string, err error)
}

// EmailSender delivers a multipart reminder email. text may be empty when no
// plain-text alternative is available.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html, text string) (detail string, err error)
}
