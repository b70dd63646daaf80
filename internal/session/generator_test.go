package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/docsmith/internal/metrics"
	"github.com/mithrel/docsmith/pkg/api"
)

type fakeDispatcher struct {
	mu      sync.Mutex
	calls   []api.GenerationRequest
	reply   string
	err     error
	release chan struct{}
	entered chan struct{}
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, url string, kind api.Kind) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, api.GenerationRequest{URL: url, Kind: kind})
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.reply, f.err
}

func TestGenerateHappyPath(t *testing.T) {
	d := &fakeDispatcher{reply: "```markdown\n# Title\\n\\nBody\n```"}
	g := NewGenerator(d, nil, nil)

	res, err := g.Generate(context.Background(), "http://www.github.com/octocat/Hello-World/", api.KindDocumentation)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/octocat/Hello-World", res.URL)
	assert.Equal(t, "# Title\nBody", res.Text)
	assert.Equal(t, d.reply, res.Raw)
	assert.False(t, res.CompletedAt.IsZero())
	require.Len(t, d.calls, 1)
	assert.Equal(t, api.GenerationRequest{URL: "https://github.com/octocat/Hello-World", Kind: api.KindDocumentation}, d.calls[0])
	assert.False(t, g.Busy())
}

func TestGenerateInvalidInputSkipsDispatch(t *testing.T) {
	d := &fakeDispatcher{}
	m := metrics.New()
	g := NewGenerator(d, nil, m)

	_, err := g.Generate(context.Background(), "gitlab.com/a/b", api.KindDocumentation)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrInvalidURL))
	assert.Empty(t, d.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidInput))
}

func TestRejectCountsInvalidInput(t *testing.T) {
	m := metrics.New()
	g := NewGenerator(&fakeDispatcher{}, nil, m)

	s := Reduce(New(api.KindDocumentation, api.ViewPreview), InputChanged{Text: "gitlab.com/a/b"})
	s, req := Begin(s)
	require.Nil(t, req)
	require.Error(t, s.Err)
	g.Reject(s.Input, s.Err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvalidInput))
}

func TestGeneratePropagatesGenerationError(t *testing.T) {
	d := &fakeDispatcher{err: &api.GenerationError{Kind: api.KindDockerfile, Status: 500}}
	g := NewGenerator(d, nil, nil)

	_, err := g.Generate(context.Background(), "github.com/a/b", api.KindDockerfile)
	var gerr *api.GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.False(t, g.Busy(), "slot is released on failure")
}

func TestRunRejectsConcurrentRequest(t *testing.T) {
	d := &fakeDispatcher{reply: "ok", release: make(chan struct{}), entered: make(chan struct{}, 1)}
	g := NewGenerator(d, nil, nil)
	req := api.GenerationRequest{URL: "https://github.com/a/b", Kind: api.KindDocumentation}

	done := make(chan error, 1)
	go func() {
		_, err := g.Run(context.Background(), req)
		done <- err
	}()
	<-d.entered
	assert.True(t, g.Busy())

	_, err := g.Run(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusy)

	close(d.release)
	require.NoError(t, <-done)
	assert.False(t, g.Busy())

	_, err = g.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, d.calls, 2)
}

func TestSlot(t *testing.T) {
	var s Slot
	require.NoError(t, s.Acquire())
	assert.ErrorIs(t, s.Acquire(), ErrBusy)
	s.Release()
	assert.NoError(t, s.Acquire())
}
