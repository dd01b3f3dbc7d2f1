package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/qrshare/handler"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		err := handler.NewValidationError()
		assert.True(t, err.IsEmpty())
		assert.Equal(t, "Validation failed", err.Error())
	})

	t.Run("fields are sorted and keep every message", func(t *testing.T) {
		t.Parallel()
		err := handler.NewValidationError()
		err.Add("size", "out of range")
		err.Add("payload", "required")
		err.Add("foreground", "invalid color")
		err.Add("size", "not a number")

		assert.Equal(t, "validation error: foreground: invalid color, payload: required, size: out of range", err.Error())
		assert.True(t, err.Has("size"))
		assert.False(t, err.Has("level"))
		assert.Equal(t, "out of range", err.Get("size"))
		assert.Equal(t, []string{"out of range", "not a number"}, err["size"])
	})
}
