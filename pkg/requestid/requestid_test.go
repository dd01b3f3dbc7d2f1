package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrshare/pkg/requestid"
)

func serve(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()
	h := requestid.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/export/png", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return ctxID, w.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("keeps valid ids", func(t *testing.T) {
		t.Parallel()
		for _, id := range []string{"abc123", "edge_proxy-42", "550e8400-e29b-41d4-a716-446655440000"} {
			ctxID, headerID := serve(t, id)
			assert.Equal(t, id, ctxID)
			assert.Equal(t, id, headerID)
		}
	})

	t.Run("replaces missing or unsafe ids", func(t *testing.T) {
		t.Parallel()
		for _, id := range []string{"", "a b", "x<script>", "a/b", strings.Repeat("a", 129)} {
			ctxID, headerID := serve(t, id)
			require.NotEqual(t, id, ctxID)
			assert.Equal(t, ctxID, headerID)
			_, err := uuid.Parse(ctxID)
			assert.NoError(t, err)
		}
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()
	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "r-1"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "r-1", attr.Value.String())
}
