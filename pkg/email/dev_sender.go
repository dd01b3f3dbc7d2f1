package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes every message to dir instead of delivering it: the HTML
// body, a JSON envelope and each attachment share a timestamped prefix.
type DevSender struct {
	dir string
	now func() time.Time
}

func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type envelope struct {
	Timestamp   time.Time `json:"timestamp"`
	SendTo      string    `json:"send_to"`
	Subject     string    `json:"subject"`
	Tag         string    `json:"tag,omitempty"`
	Attachments []string  `json:"attachments,omitempty"`
}

func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	now := d.now().UTC()
	label := params.Tag
	if label == "" {
		label = params.Subject
	}
	prefix := now.Format("20060102T150405.000000000") + "_" + slug(label)

	env := envelope{Timestamp: now, SendTo: params.SendTo, Subject: params.Subject, Tag: params.Tag}
	files := map[string][]byte{prefix + ".html": []byte(params.BodyHTML)}
	for _, a := range params.Attachments {
		name := prefix + "_" + slug(a.Name)
		env.Attachments = append(env.Attachments, name)
		files[name] = a.Data
	}
	meta, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	files[prefix+".json"] = meta

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
		}
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

func slug(s string) string {
	s = unsafeChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
	s = strings.Trim(s, "_.")
	if len(s) > 64 {
		s = s[:64]
	}
	if s == "" {
		return "email"
	}
	return s
}
