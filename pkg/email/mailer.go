package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo      string       `json:"send_to"`               // Email address of the recipient
	Subject     string       `json:"subject"`               // Subject of the email
	BodyHTML    string       `json:"body_html"`             // HTML body of the email
	Tag         string       `json:"tag,omitempty"`         // Optional
	Attachments []Attachment `json:"attachments,omitempty"` // Optional
}

// Attachment is a file sent along with the email.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// emailRegex is intentionally loose: it rejects obvious garbage and leaves
// deliverability to the provider.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks that the recipient, subject and body are present and that
// every attachment carries data.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	for i, a := range p.Attachments {
		if strings.TrimSpace(a.Name) == "" || len(a.Data) == 0 {
			return fmt.Errorf("%w: attachment %d must have a name and data", ErrInvalidParams, i)
		}
	}
	return nil
}
