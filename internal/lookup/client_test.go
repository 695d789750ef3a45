package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/companies", r.URL.Path)
		assert.Equal(t, "대일건설", r.URL.Query().Get("name"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"found":true,"record":{"시평":"5,000,000,000","지역":"경기"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithAPIKey("secret"))
	record, found, err := c.Lookup(context.Background(), "대일건설")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "경기", record["지역"])
}

func TestLookupNotFound(t *testing.T) {
	t.Run("404 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, found, err := NewClient(srv.URL).Lookup(context.Background(), "없는회사")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("found false", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"found":false}`))
		}))
		defer srv.Close()

		_, found, err := NewClient(srv.URL).Lookup(context.Background(), "없는회사")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := NewClient(srv.URL).Lookup(context.Background(), "대일건설")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLookupContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Limiter wait observes the canceled context before any request is made.
	c := NewClient("http://127.0.0.1:0", WithRateLimit(0.001, 1))
	_, _, err := c.Lookup(ctx, "대일건설")
	assert.Error(t, err)
}
