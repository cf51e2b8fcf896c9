// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import "context"

// SendEmailInput holds the data required to send one email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult holds provider metadata about a sent email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for the outbound email provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}
