package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Agent", r.Header.Get("User-Agent"))
		w.Header().Set("X-Accept", r.Header.Get("Accept"))
		w.Write([]byte("hello"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/song.mp3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "10")
		if r.Method == http.MethodHead {
			return
		}
		w.Write([]byte("0123456789"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Fetch(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient("test-agent", 5*time.Second)

	resp, err := client.Fetch(context.Background(), srv.URL+"/ok", map[string]string{"Accept": "application/json"})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "hello", string(resp.Body))
	assert.Equal(t, "test-agent", resp.Header.Get("X-Agent"))
	assert.Equal(t, "application/json", resp.Header.Get("X-Accept"))
}

func TestClient_FetchKeepsErrorStatus(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient("test-agent", 5*time.Second)

	resp, err := client.Fetch(context.Background(), srv.URL+"/missing", nil)
	require.NoError(t, err)

	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "Not Found")
}

func TestClient_GetStatusError(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient("test-agent", 5*time.Second)

	_, err := client.Get(context.Background(), srv.URL+"/missing")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestClient_GetFileSize(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient("test-agent", 5*time.Second)

	size, err := client.GetFileSize(context.Background(), srv.URL+"/song.mp3")
	require.NoError(t, err)
	assert.EqualValues(t, 10, size)
}

func TestClient_DownloadFile(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient("test-agent", 5*time.Second)
	dest := filepath.Join(t.TempDir(), "song.mp3")

	var lastWritten, lastTotal int64
	err := client.DownloadFile(context.Background(), srv.URL+"/song.mp3", dest, func(written, total int64) {
		lastWritten, lastTotal = written, total
	})
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))
	assert.EqualValues(t, 10, lastWritten)
	assert.EqualValues(t, 10, lastTotal)
}

func TestClient_DownloadFileStatusError(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient("test-agent", 5*time.Second)
	dest := filepath.Join(t.TempDir(), "missing.mp3")

	err := client.DownloadFile(context.Background(), srv.URL+"/missing", dest, nil)
	require.Error(t, err)
	assert.NoFileExists(t, dest)
}
