package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mithrel/docsmith/internal/metrics"
	"github.com/mithrel/docsmith/pkg/api"
)

type captured struct {
	path   string
	method string
	ctype  string
	reqID  string
	body   generateRequest
}

// newService records each request on the returned channel.
func newService(t *testing.T, status int, reply string, calls *int32) (*httptest.Server, <-chan captured) {
	t.Helper()
	seen := make(chan captured, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		got := captured{
			path:   r.URL.Path,
			method: r.Method,
			ctype:  r.Header.Get("Content-Type"),
			reqID:  r.Header.Get("X-Request-ID"),
		}
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		seen <- got
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestDispatchEndpoints(t *testing.T) {
	cases := []struct {
		kind api.Kind
		path string
	}{
		{api.KindDocumentation, "/generate-docs-from-url"},
		{api.KindDockerfile, "/generate-dockerfile"},
		{api.KindCompose, "/generate-docker-compose"},
		{api.Kind("mystery"), "/generate-docs-from-url"},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			var calls int32
			srv, seen := newService(t, http.StatusOK, `"ok"`, &calls)

			c := New(srv.URL + "/")
			out, err := c.Dispatch(context.Background(), "https://github.com/a/b", tc.kind)
			require.NoError(t, err)
			assert.Equal(t, "ok", out)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
			got := <-seen
			assert.Equal(t, tc.path, got.path)
			assert.Equal(t, http.MethodPost, got.method)
			assert.Equal(t, "application/json", got.ctype)
			assert.NotEmpty(t, got.reqID)
			assert.Equal(t, "https://github.com/a/b", got.body.URL)
			assert.Equal(t, string(tc.kind), got.body.Type)
		})
	}
}

func TestDispatchBodyDecoding(t *testing.T) {
	cases := map[string]string{
		`"# Title\n\nBody"`: "# Title\n\nBody",
		"plain text body":   "plain text body",
		`{"content":"x"}`:   `{"content":"x"}`,
		`"unterminated`:     `"unterminated`,
		"":                  "",
	}
	for reply, want := range cases {
		var calls int32
		srv, _ := newService(t, http.StatusOK, reply, &calls)
		out, err := New(srv.URL).Dispatch(context.Background(), "https://github.com/a/b", api.KindDocumentation)
		require.NoError(t, err)
		assert.Equal(t, want, out, "reply %q", reply)
	}
}

func TestDispatchNonSuccessIsGenerationError(t *testing.T) {
	var calls int32
	srv, _ := newService(t, http.StatusInternalServerError, `{"detail":"Dockerfile generation failed: boom"}`, &calls)

	m := metrics.New()
	c := New(srv.URL, WithMetrics(m))
	_, err := c.Dispatch(context.Background(), "https://github.com/a/b", api.KindDockerfile)
	require.Error(t, err)

	var gerr *api.GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, api.KindDockerfile, gerr.Kind)
	assert.Equal(t, http.StatusInternalServerError, gerr.Status)
	assert.Contains(t, err.Error(), "Dockerfile generation failed: boom")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("dockerfile", "error")))
}

func TestDispatchTransportErrorIsGenerationError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base).Dispatch(context.Background(), "https://github.com/a/b", api.KindCompose)
	var gerr *api.GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, api.KindCompose, gerr.Kind)
	assert.Equal(t, 0, gerr.Status)
}

func TestDispatchNoDeduplication(t *testing.T) {
	var calls int32
	srv, _ := newService(t, http.StatusOK, "x", &calls)
	c := New(srv.URL)
	for i := 0; i < 3; i++ {
		_, err := c.Dispatch(context.Background(), "https://github.com/a/b", api.KindDocumentation)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDispatchLogs(t *testing.T) {
	var calls int32
	srv, seen := newService(t, http.StatusOK, "x", &calls)

	core, logs := observer.New(zapcore.InfoLevel)
	c := New(srv.URL, WithLogger(zap.New(core)))
	_, err := c.Dispatch(context.Background(), "https://github.com/a/b", api.KindDockerfile)
	require.NoError(t, err)

	entries := logs.FilterMessage("generation finished").All()
	require.Len(t, entries, 1)
	got := <-seen
	fields := entries[0].ContextMap()
	assert.Equal(t, "dockerfile", fields["kind"])
	assert.Equal(t, got.reqID, fields["request_id"])
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"message":"Pong!"}`))
	}))
	defer srv.Close()

	msg, err := New(srv.URL).Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pong!", msg)
}

func TestNewDefaultsBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
	assert.Equal(t, "http://x", New("http://x///").BaseURL())
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{}
	c := New("http://x", WithHTTPClient(shared), WithTimeout(90*time.Second))
	assert.Equal(t, 90*time.Second, c.httpClient.Timeout)
	assert.Zero(t, shared.Timeout)
	assert.NotSame(t, shared, c.httpClient)

	// option order does not matter
	c = New("http://x", WithTimeout(time.Second), WithHTTPClient(shared))
	assert.Equal(t, time.Second, c.httpClient.Timeout)
	assert.Zero(t, shared.Timeout)

	c = New("http://x", WithHTTPClient(shared))
	assert.Same(t, shared, c.httpClient)
}
