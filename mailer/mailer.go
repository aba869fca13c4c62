// Package mailer delivers rendered account notifications. Delivery is
// best effort: the account flows commit regardless of the outcome and
// callers only log failures.
package mailer

import "context"

// Message is a fully rendered notification ready for delivery.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender attempts delivery of one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Logger matches the logging surface the senders need.
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Dev is a Sender that logs the message instead of delivering it.
type Dev struct {
	Logger Logger
}

func NewDev(logger Logger) *Dev {
	return &Dev{Logger: logger}
}

func (d *Dev) Send(ctx context.Context, msg Message) error {
	if d.Logger != nil {
		d.Logger.Info("dev mailer delivery",
			"to", msg.To,
			"subject", msg.Subject,
			"text", msg.Text,
		)
	}
	return nil
}
