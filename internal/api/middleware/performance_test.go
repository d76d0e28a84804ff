package middleware_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinklake/shuttle/internal/api/middleware"
)

var bodyHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(`{"entries":[]}`))
})

func TestETag_NotModified(t *testing.T) {
	handler := middleware.ETag(bodyHandler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/faqs", nil))
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest("GET", "/api/faqs", nil)
	req.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Zero(t, w.Body.Len())
}

func TestETag_SkipsStreams(t *testing.T) {
	handler := middleware.ETag(bodyHandler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/stream/rides/1", nil))

	assert.Empty(t, w.Header().Get("ETag"))
}

func TestCompression(t *testing.T) {
	handler := middleware.Compression(bodyHandler)

	req := httptest.NewRequest("GET", "/api/faqs", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, `{"entries":[]}`, string(body))
}

func TestCacheControl(t *testing.T) {
	handler := middleware.CacheControl(bodyHandler)

	for path, want := range map[string]string{
		"/api/faqs":           "public, max-age=600, must-revalidate",
		"/api/rides/track":    "private, no-cache, must-revalidate",
		"/api/stream/rides/1": "no-cache",
	} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, want, w.Header().Get("Cache-Control"), path)
	}
}
