package farfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.NewRegistry())
}

func newStatusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
}

func TestMetricsCollectorRecordRequest(t *testing.T) {
	collector := newTestCollector()

	collector.RecordRequest("GET", "example.com/people", 200, 50*time.Millisecond)
	collector.RecordRequest("GET", "example.com/people", 200, 70*time.Millisecond)

	count := testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "200", "example.com/people"))
	assert.Equal(t, 2.0, count)
}

func TestMetricsCollectorInFlight(t *testing.T) {
	collector := newTestCollector()

	collector.RecordRequestStart("GET", "example.com/")
	collector.RecordRequestStart("GET", "example.com/")
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.requestsInFlight.WithLabelValues("GET", "example.com/")))

	collector.RecordRequestEnd("GET", "example.com/")
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requestsInFlight.WithLabelValues("GET", "example.com/")))
}

func TestMetricsCollectorErrors(t *testing.T) {
	collector := newTestCollector()

	collector.RecordError(ErrorTypeServer, "GET", "example.com/")
	collector.RecordErrorHandlerInvocation("GET", "example.com/")

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.errorsTotal.WithLabelValues(ErrorTypeServer, "GET", "example.com/")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.errorHandlerInvocations.WithLabelValues("GET", "example.com/")))
}

func TestClientRecordsMetrics(t *testing.T) {
	server := newStatusServer(t, http.StatusOK)
	defer server.Close()

	collector := newTestCollector()
	client := New(WithBaseURL(server.URL), WithMetricsCollector(collector))

	_, err := client.Get(context.Background(), "/people", nil)
	require.NoError(t, err)

	endpoint := endpointFromURL(server.URL + "/people")
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("GET", "200", endpoint)))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.requestsInFlight.WithLabelValues("GET", endpoint)))
}

func TestClientRecordsErrorMetrics(t *testing.T) {
	server := newStatusServer(t, http.StatusInternalServerError)
	defer server.Close()

	collector := newTestCollector()
	client := New(WithBaseURL(server.URL), WithMetricsCollector(collector))

	_, err := client.Get(context.Background(), "/people", nil)
	require.Error(t, err)

	endpoint := endpointFromURL(server.URL + "/people")
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.errorsTotal.WithLabelValues(ErrorTypeServer, "GET", endpoint)))
}

func TestEndpointFromURL(t *testing.T) {
	assert.Equal(t, "example.com/people", endpointFromURL("https://example.com/people?page=1"))
	assert.Equal(t, "example.com/", endpointFromURL("https://example.com"))
	assert.Equal(t, "unknown", endpointFromURL("not a url"))
}
