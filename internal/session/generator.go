package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mithrel/docsmith/internal/cleanup"
	"github.com/mithrel/docsmith/internal/metrics"
	"github.com/mithrel/docsmith/internal/repourl"
	"github.com/mithrel/docsmith/pkg/api"
)

// Dispatcher sends one request to the remote service.
type Dispatcher interface {
	Dispatch(ctx context.Context, url string, kind api.Kind) (string, error)
}

// Generator runs dispatch and formatting behind a single in-flight slot.
type Generator struct {
	dispatcher Dispatcher
	slot       Slot
	log        *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewGenerator(d Dispatcher, log *zap.Logger, m *metrics.Metrics) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{dispatcher: d, log: log, metrics: m, now: time.Now}
}

// Busy reports whether a request is outstanding.
func (g *Generator) Busy() bool { return g.slot.Busy() }

// Generate normalizes input and runs the request. Invalid input never reaches
// the dispatcher.
func (g *Generator) Generate(ctx context.Context, input string, kind api.Kind) (api.GenerationResult, error) {
	url, err := repourl.Normalize(input)
	if err != nil {
		g.Reject(input, err)
		return api.GenerationResult{}, err
	}
	return g.Run(ctx, api.GenerationRequest{URL: url, Kind: kind})
}

// Reject records input that failed URL validation. Callers that normalize on
// their own, like the TUI via Begin, report rejections here.
func (g *Generator) Reject(input string, err error) {
	g.metrics.IncInvalidInput()
	g.log.Debug("rejected input", zap.String("input", input), zap.Error(err))
}

// Run dispatches an already normalized request and formats the response.
// It fails with ErrBusy if another request holds the slot.
func (g *Generator) Run(ctx context.Context, req api.GenerationRequest) (api.GenerationResult, error) {
	if err := g.slot.Acquire(); err != nil {
		return api.GenerationResult{}, err
	}
	defer g.slot.Release()

	raw, err := g.dispatcher.Dispatch(ctx, req.URL, req.Kind)
	if err != nil {
		return api.GenerationResult{}, err
	}
	return api.GenerationResult{
		URL:         req.URL,
		Kind:        req.Kind,
		Raw:         raw,
		Text:        cleanup.Format(raw, req.Kind),
		CompletedAt: g.now().UTC(),
	}, nil
}
