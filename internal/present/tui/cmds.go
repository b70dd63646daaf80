package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mithrel/docsmith/internal/clip"
	"github.com/mithrel/docsmith/pkg/api"
)

// Generator runs one normalized request to completion and records input
// rejected before dispatch.
type Generator interface {
	Run(ctx context.Context, req api.GenerationRequest) (api.GenerationResult, error)
	Reject(input string, err error)
}

// generatedMsg conveys the outcome of a generation back to Update.
type generatedMsg struct {
	req api.GenerationRequest
	res api.GenerationResult
	err error
	dur time.Duration
}

// copiedMsg conveys the outcome of a clipboard copy.
type copiedMsg struct {
	err error
}

// generateCmd runs req on gen off the UI goroutine.
func generateCmd(ctx context.Context, gen Generator, req api.GenerationRequest) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		res, err := gen.Run(ctx, req)
		return generatedMsg{req: req, res: res, err: err, dur: time.Since(start)}
	}
}

func copyCmd(c clip.Copier, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: c.Copy(text)}
	}
}
