package binder_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/pkg/binder"
)

type listQuery struct {
	Limit  int    `query:"limit"`
	Since  *int64 `query:"since"`
	Format string `query:"format,omitempty"`
	Inline bool
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("binds parameters", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/notifications?limit=5&since=1700000000&format=svg&inline=yes", nil)

		var got listQuery
		require.NoError(t, binder.Query()(req, &got))
		assert.Equal(t, 5, got.Limit)
		require.NotNil(t, got.Since)
		assert.Equal(t, int64(1700000000), *got.Since)
		assert.Equal(t, "svg", got.Format)
		assert.True(t, got.Inline, "Untagged fields should bind by lowercased name")
	})

	t.Run("missing parameters keep zero values", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)

		got := listQuery{Limit: 10}
		require.NoError(t, binder.Query()(req, &got))
		assert.Equal(t, 10, got.Limit)
		assert.Nil(t, got.Since)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/notifications?limit=ten", nil)

		var got listQuery
		err := binder.Query()(req, &got)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
		assert.Contains(t, err.Error(), "Limit")
	})
}
