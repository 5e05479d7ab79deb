package openelevation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/upstream"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(upstream.New("open-elevation", 5*time.Second, 100, nil))
	c.baseURL = srv.URL
	return c
}

func TestClient_Elevation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "27.988100,86.925000", r.URL.Query().Get("locations"))
		_, _ = w.Write([]byte(`{"results":[{"latitude":27.9881,"longitude":86.925,"elevation":8729}]}`))
	})

	v, err := c.Elevation(context.Background(), domain.Coordinates{Lat: 27.9881, Lon: 86.925})
	require.NoError(t, err)
	assert.Equal(t, 8729.0, v)
	assert.Equal(t, "open-elevation", c.Name())
}

func TestClient_EmptyResults(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	_, err := c.Elevation(context.Background(), domain.Coordinates{})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_ServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Elevation(context.Background(), domain.Coordinates{})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
