package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/pkg/email"
)

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("writes body envelope and attachments", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "mail")
		params := validParams()
		params.Tag = "QR Share"

		require.NoError(t, email.NewDevSender(dir).SendEmail(context.Background(), params))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		byExt := map[string]string{}
		for _, e := range entries {
			byExt[filepath.Ext(e.Name())] = filepath.Join(dir, e.Name())
			assert.Contains(t, e.Name(), "_qr_share", "Files are named after the tag")
		}

		body, err := os.ReadFile(byExt[".html"])
		require.NoError(t, err)
		assert.Equal(t, params.BodyHTML, string(body))

		png, err := os.ReadFile(byExt[".png"])
		require.NoError(t, err)
		assert.Equal(t, params.Attachments[0].Data, png)

		raw, err := os.ReadFile(byExt[".json"])
		require.NoError(t, err)
		var env struct {
			SendTo      string   `json:"send_to"`
			Subject     string   `json:"subject"`
			Tag         string   `json:"tag"`
			Attachments []string `json:"attachments"`
		}
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, "someone@example.com", env.SendTo)
		assert.Equal(t, "QR Share", env.Tag)
		require.Len(t, env.Attachments, 1)
		assert.True(t, strings.HasSuffix(env.Attachments[0], "_qr-code.png"))
	})

	t.Run("falls back to subject", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		params := validParams()
		params.Attachments = nil

		require.NoError(t, email.NewDevSender(dir).SendEmail(context.Background(), params))

		matches, err := filepath.Glob(filepath.Join(dir, "*_your_qr_code.html"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("rejects invalid params before touching disk", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "never")
		params := validParams()
		params.SendTo = ""

		err := email.NewDevSender(dir).SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrInvalidParams)
		assert.NoDirExists(t, dir)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		t.Parallel()
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))

		err := email.NewDevSender(filepath.Join(blocker, "mail")).SendEmail(context.Background(), validParams())
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	})
}
