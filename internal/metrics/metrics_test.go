package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	m := New()
	m.RecordRequest("GET /v1/types", 200, 5*time.Millisecond)
	m.RecordRequest("GET /v1/types", 200, 5*time.Millisecond)
	m.RecordRequest("GET /v1/types", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET /v1/types", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET /v1/types", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestRecordDocumentAndValidation(t *testing.T) {
	m := New()
	m.RecordDocument("Product")
	m.RecordValidationFailure("Product", "required")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentsGenerated.WithLabelValues("Product")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("Product", "required")))
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordDocument("Event")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.DocumentsGenerated.WithLabelValues("Event")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DocumentsGenerated.WithLabelValues("Event")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordDocument("Recipe")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `ldmark_documents_generated_total{type="Recipe"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
