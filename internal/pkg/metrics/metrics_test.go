package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New("issue_hub")
	require.NotNil(t, m.Registry)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/projects", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/projects", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/project", "403").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/projects", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/project", "403")))
}

func TestHandler(t *testing.T) {
	m := New("issue_hub")
	m.HTTPRequestDuration.WithLabelValues("POST", "/api/v1/issue").Observe(0.02)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "issue_hub_http_request_duration_seconds")
}
