package export

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/dmitrymomot/qrshare/pkg/email"
	"github.com/dmitrymomot/qrshare/pkg/email/templates"
	"github.com/dmitrymomot/qrshare/pkg/file"
)

// Share targets registered by the service.
const (
	TargetLink  = "link"
	TargetEmail = "email"
)

// LinkSharer publishes the image to storage and returns its public URL.
// Objects are content addressed, so sharing the same image twice yields the
// same link.
type LinkSharer struct {
	storage file.Storage
	dir     string
}

func NewLinkSharer(storage file.Storage, dir string) *LinkSharer {
	return &LinkSharer{storage: storage, dir: dir}
}

func (s *LinkSharer) Share(ctx context.Context, p SharePayload) (ShareReceipt, error) {
	key := path.Join(s.dir, file.Hash(p.Data)+path.Ext(p.Filename))
	if !s.storage.Exists(ctx, key) {
		if _, err := s.storage.Save(ctx, file.Object{
			Name:        p.Filename,
			ContentType: p.ContentType,
			Data:        p.Data,
		}, key); err != nil {
			return ShareReceipt{}, err
		}
	}
	return ShareReceipt{URL: s.storage.URL(key)}, nil
}

// EmailSharer sends the image as an attachment.
type EmailSharer struct {
	sender  email.EmailSender
	subject string
}

// NewEmailSharer creates an email sharer. subject is used when the share has
// no title.
func NewEmailSharer(sender email.EmailSender, subject string) *EmailSharer {
	if subject == "" {
		subject = "Your QR code"
	}
	return &EmailSharer{sender: sender, subject: subject}
}

func (s *EmailSharer) Share(ctx context.Context, p SharePayload) (ShareReceipt, error) {
	if strings.TrimSpace(p.Recipient) == "" {
		return ShareReceipt{}, ErrRecipientRequired
	}

	body, err := templates.Render(ctx, templates.Shared(p.Title, p.Text, p.Filename))
	if err != nil {
		return ShareReceipt{}, fmt.Errorf("render share email: %w", err)
	}

	subject := s.subject
	if p.Title != "" {
		subject = p.Title
	}

	err = s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   p.Recipient,
		Subject:  subject,
		BodyHTML: body,
		Tag:      "qr-share",
		Attachments: []email.Attachment{{
			Name:        p.Filename,
			ContentType: p.ContentType,
			Data:        p.Data,
		}},
	})
	if err != nil {
		return ShareReceipt{}, err
	}
	return ShareReceipt{}, nil
}
