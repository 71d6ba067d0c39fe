package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMiddleware)
	r.Get("/dogs/{dog_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/dogs/{dog_id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dogs/abc", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/dogs/{dog_id}", "418"))
	assert.Equal(t, before+1, after)
}

func TestHTTPMiddlewareLabelsUnknownPaths(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMiddleware)
	r.Get("/dogs", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))

	for _, path := range []string{"/nope/1", "/nope/2", "/random"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))
	assert.Equal(t, before+3, after)
	assert.Zero(t, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/nope/1", "404")))
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(swipesTotal.WithLabelValues("right"))
	IncSwipe("right")
	assert.Equal(t, before+1, testutil.ToFloat64(swipesTotal.WithLabelValues("right")))

	m := testutil.ToFloat64(matchesCreatedTotal)
	IncMatchCreated()
	assert.Equal(t, m+1, testutil.ToFloat64(matchesCreatedTotal))

	ws := testutil.ToFloat64(wsActiveConnections)
	IncWSActive()
	DecWSActive()
	assert.Equal(t, ws, testutil.ToFloat64(wsActiveConnections))
}
