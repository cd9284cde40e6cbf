package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/venues/{venueID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/plans", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	for _, path := range []string{"/venues/a", "/venues/b", "/plans"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/venues/{venueID}", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/plans", "GET", "200")))
}

func TestObserveViewAndHandler(t *testing.T) {
	m := New(nil)
	m.ObserveView("venue_detail", time.Now(), nil)
	m.ObserveView("venue_detail", time.Now(), errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.viewDuration))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "courtside_view_assembly_duration_seconds")
}

func TestSetPoolConns(t *testing.T) {
	m := New(nil)
	m.SetPoolConns(10, 7, 3)

	assert.Equal(t, 10.0, testutil.ToFloat64(m.poolConns.WithLabelValues("total")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.poolConns.WithLabelValues("idle")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.poolConns.WithLabelValues("acquired")))
}
