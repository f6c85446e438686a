package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenguard/pkg/errors"
	"tokenguard/pkg/logger"
)

func newTwitterSource(t *testing.T, handler http.HandlerFunc) *TwitterSource {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewTwitterSource(TwitterConfig{
		BearerToken: "test-token",
		BaseURL:     srv.URL,
	}, logger.Get())
}

func TestTwitterCountMentions(t *testing.T) {
	source := newTwitterSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets/search/recent", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "0xabc", r.URL.Query().Get("query"))
		assert.Equal(t, "10", r.URL.Query().Get("max_results"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"id": "1"}, {"id": "2"}, {"id": "3"}], "meta": {"result_count": 3}}`))
	})

	count, err := source.CountMentions(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTwitterCountMentions_CapsResult(t *testing.T) {
	source := newTwitterSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// The API minimum page size returns more than the display cap.
		_, _ = w.Write([]byte(`{"data": [{"id":"1"},{"id":"2"},{"id":"3"},{"id":"4"},{"id":"5"},{"id":"6"},{"id":"7"}]}`))
	})

	count, err := source.CountMentions(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, ResultCap, count)
}

func TestTwitterCountMentions_NoResults(t *testing.T) {
	source := newTwitterSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meta": {"result_count": 0}}`))
	})

	count, err := source.CountMentions(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTwitterCountMentions_UpstreamError(t *testing.T) {
	source := newTwitterSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := source.CountMentions(context.Background(), "0xabc")
	assert.ErrorIs(t, err, errors.ErrUpstream)
}

func TestTwitterCountMentions_MissingToken(t *testing.T) {
	source := NewTwitterSource(TwitterConfig{}, logger.Get())

	_, err := source.CountMentions(context.Background(), "0xabc")
	assert.ErrorIs(t, err, errors.ErrMissingCredentials)
}

func TestTwitterPlatform(t *testing.T) {
	assert.Equal(t, "Twitter", NewTwitterSource(TwitterConfig{BearerToken: "x"}, logger.Get()).Platform())
}
