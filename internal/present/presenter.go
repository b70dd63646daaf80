package present

import (
	"context"
	"io"

	"github.com/mithrel/docsmith/internal/present/format"
	"github.com/mithrel/docsmith/internal/render"
	"github.com/mithrel/docsmith/pkg/api"
)

type Mode int

const (
	ModePreview Mode = iota
	ModeRaw
	ModeJSON
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Style      string
	WordWrap   int
}

// ParseMode parses "preview", "raw" or "json".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "preview":
		return ModePreview, true
	case "raw":
		return ModeRaw, true
	case "json":
		return ModeJSON, true
	default:
		return ModePreview, false
	}
}

// ModeForView maps a result view onto an output mode.
func ModeForView(v api.ViewMode) Mode {
	if v == api.ViewRaw {
		return ModeRaw
	}
	return ModePreview
}

func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeJSON:
		return "json"
	default:
		return "preview"
	}
}

// RenderResult writes a generation result according to options.
func RenderResult(ctx context.Context, w io.Writer, res api.GenerationResult, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSONResult(w, res, opts.JSONIndent)
	case ModeRaw:
		return format.WriteRaw(w, res, opts.Headers)
	default:
		r, err := render.New(opts.Style, opts.WordWrap)
		if err != nil {
			return err
		}
		return format.WritePreview(w, res, r)
	}
}
