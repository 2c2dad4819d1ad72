package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ldmark/internal/metrics"
	"github.com/mesh-intelligence/ldmark/pkg/schema"
	"github.com/mesh-intelligence/ldmark/pkg/types"
)

type mockStore struct {
	mu       sync.Mutex
	entities map[string]*types.Entity
	getErr   error
}

func newMockStore() *mockStore {
	return &mockStore{entities: make(map[string]*types.Entity)}
}

func (m *mockStore) GetEntity(_ context.Context, id string) (*types.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	e, ok := m.entities[id]
	if !ok {
		return nil, types.ErrEntityNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *mockStore) PutEntity(_ context.Context, e *types.Entity) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[e.ID] = e
	return e.ID, nil
}

func (m *mockStore) DeleteEntity(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entities[id]; !ok {
		return types.ErrEntityNotFound
	}
	delete(m.entities, id)
	return nil
}

func (m *mockStore) ListEntities(_ context.Context, _ types.EntityFilter) ([]*types.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*types.Entity{}
	for _, e := range m.entities {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockStore) SetMeta(_ context.Context, id, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entities[id]
	if !ok {
		return types.ErrEntityNotFound
	}
	e.SetMeta(key, value)
	return nil
}

type testEnv struct {
	store   *mockStore
	metrics *metrics.Metrics
	handler http.Handler
}

func newTestEnv(t *testing.T, token string) *testEnv {
	t.Helper()
	store := newMockStore()
	store.entities["widget"] = &types.Entity{
		ID:         "widget",
		Title:      "Widget",
		RawContent: "A widget.",
		Permalink:  "https://x/w",
		SchemaType: schema.TypeProduct,
		Meta:       map[string]string{schema.MetaProductPrice: "19.99"},
	}
	store.entities["untyped"] = &types.Entity{ID: "untyped", Title: "Untyped"}

	m := metrics.New()
	srv := New(schema.NewDefaultRegistry(), store, WithMetrics(m))
	return &testEnv{store: store, metrics: m, handler: srv.Handler(token)}
}

func (env *testEnv) do(t *testing.T, method, target string, body io.Reader, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodGet, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestListTypes(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodGet, "/v1/types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := schema.ParseDocument(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Product", "Service", "Organization", "LocalBusiness", "Person",
		"Event", "Article", "Recipe", "FAQPage",
	}, doc.Keys())
	assert.Equal(t, "Product", doc.GetString("Product"))
}

func TestGetProperties(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/v1/types/Product/properties", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := schema.ParseDocument(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "description", "url", "image"}, doc.Keys()[:4])

	name, ok := doc.Get("name")
	require.True(t, ok)
	nameDoc := name.(*types.Document)
	assert.Equal(t, "text", nameDoc.GetString("type"))
	required, _ := nameDoc.Get("required")
	assert.Equal(t, true, required)

	rec = env.do(t, http.MethodGet, "/v1/types/Spaceship/properties", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "type not found", decodeBody(t, rec)["error"])
}

func TestGetDocument(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/v1/entities/widget/document", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/ld+json", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		`{"@context":"https://schema.org","@type":"Product","name":"Widget","description":"A widget.",`+
			`"url":"https://x/w","offers":{"@type":"Offer","price":"19.99","priceCurrency":"EUR"}}`,
		rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.DocumentsGenerated.WithLabelValues("Product")))

	rec = env.do(t, http.MethodGet, "/v1/entities/widget/document?type=Service&pretty=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\n  \"@type\": \"Service\"")
}

func TestGetDocumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		status  int
		message string
	}{
		{"unknown entity", "/v1/entities/missing/document", http.StatusNotFound, "entity not found"},
		{"unknown type", "/v1/entities/widget/document?type=Spaceship", http.StatusNotFound, "type not found"},
		{"no associated schema", "/v1/entities/untyped/document", http.StatusNotFound, "entity has no associated schema"},
		{"script unknown entity", "/v1/entities/missing/script", http.StatusNotFound, "entity not found"},
	}
	env := newTestEnv(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeBody(t, rec)["error"])
		})
	}
}

func TestGetDocumentStoreFailure(t *testing.T) {
	env := newTestEnv(t, "")
	env.store.getErr = errors.New("disk on fire")

	rec := env.do(t, http.MethodGet, "/v1/entities/widget/document", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to load entity", decodeBody(t, rec)["error"])
}

func TestGetScript(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodGet, "/v1/entities/untyped/script?type=Article", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<script type="application/ld+json">{"@context"`))
	assert.True(t, strings.HasSuffix(body, "</script>"))
	assert.Contains(t, body, `"headline":"Untyped"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		body     string
		status   int
		wantPath string
	}{
		{
			name:   "valid",
			typ:    "Product",
			body:   `{"@type":"Product","name":"Widget","offers":{"price":"1","priceCurrency":"EUR"}}`,
			status: http.StatusOK,
		},
		{
			name:     "missing name",
			typ:      "Product",
			body:     `{"@type":"Product","offers":{"price":"1","priceCurrency":"EUR"}}`,
			status:   http.StatusUnprocessableEntity,
			wantPath: "name",
		},
		{
			name:     "missing nested price",
			typ:      "Product",
			body:     `{"@type":"Product","name":"Widget","offers":{"priceCurrency":"EUR"}}`,
			status:   http.StatusUnprocessableEntity,
			wantPath: "offers.price",
		},
	}
	env := newTestEnv(t, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/v1/types/"+tt.typ+"/validate", strings.NewReader(tt.body))
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decodeBody(t, rec)
			if tt.wantPath == "" {
				assert.Equal(t, true, body["valid"])
				assert.NotContains(t, body, "error")
				return
			}
			assert.Equal(t, false, body["valid"])
			verr := body["error"].(map[string]any)
			assert.Equal(t, tt.wantPath, verr["path"])
			assert.Equal(t, "required", verr["code"])
			assert.Equal(t, "missing required property: "+tt.wantPath, verr["message"])
		})
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.ValidationFailures.WithLabelValues("Product", "required")))
}

func TestValidateBadRequests(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/v1/types/Product/validate", strings.NewReader(`{"name":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", decodeBody(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/v1/types/Product/validate",
		strings.NewReader(`{"name":"W","offers":{"price":"1","priceCurrency":"EUR"}} not json at all`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", decodeBody(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/v1/types/Product/validate",
		strings.NewReader(`{"name":"W","offers":{"price":"1","priceCurrency":"EUR"}}{"x":1}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/types/Product/validate", strings.NewReader(`[1]`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "document must be a JSON object", decodeBody(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/v1/types/Spaceship/validate", strings.NewReader(`{}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	big := bytes.Repeat([]byte(" "), maxBodyBytes+1)
	rec = env.do(t, http.MethodPost, "/v1/types/Product/validate", bytes.NewReader(big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/types/Product/validate", iotest.ErrReader(errors.New("connection reset")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "reading request body failed", decodeBody(t, rec)["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodDelete, "/v1/types", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	env := newTestEnv(t, "s3cret")

	tests := []struct {
		name    string
		target  string
		headers []string
		status  int
	}{
		{"health exempt", "/v1/health", nil, http.StatusOK},
		{"metrics exempt", "/metrics", nil, http.StatusOK},
		{"missing header", "/v1/types", nil, http.StatusUnauthorized},
		{"wrong scheme", "/v1/types", []string{"Authorization", "Basic s3cret"}, http.StatusUnauthorized},
		{"wrong token", "/v1/types", []string{"Authorization", "Bearer nope"}, http.StatusUnauthorized},
		{"valid token", "/v1/types", []string{"Authorization", "Bearer s3cret"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.target, nil, tt.headers...)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequestMetrics(t *testing.T) {
	env := newTestEnv(t, "")
	env.do(t, http.MethodGet, "/v1/types", nil)
	env.do(t, http.MethodGet, "/v1/entities/missing/document", nil)
	env.do(t, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RequestsTotal.WithLabelValues("GET /v1/types", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RequestsTotal.WithLabelValues("GET /v1/entities/{id}/document", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RequestsTotal.WithLabelValues("unmatched", "404")))

	rec := env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ldmark_http_requests_total")
}

func TestRequestMetricsLabelRejectedRequestsByRoute(t *testing.T) {
	env := newTestEnv(t, "s3cret")
	env.do(t, http.MethodGet, "/v1/entities/widget/document", nil)
	env.do(t, http.MethodGet, "/v1/types", nil, "Authorization", "Bearer nope")

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RequestsTotal.WithLabelValues("GET /v1/entities/{id}/document", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RequestsTotal.WithLabelValues("GET /v1/types", "401")))
	assert.Equal(t, 0.0, testutil.ToFloat64(env.metrics.RequestsTotal.WithLabelValues("unmatched", "401")))
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := New(schema.NewDefaultRegistry(), newMockStore())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0", "") }()
	cancel()
	assert.NoError(t, <-done)
}
