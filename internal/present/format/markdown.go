package format

import (
	"io"

	"github.com/mithrel/docsmith/internal/render"
	"github.com/mithrel/docsmith/pkg/api"
)

// WritePreview renders the formatted text as Markdown through r.
func WritePreview(w io.Writer, res api.GenerationResult, r *render.Renderer) error {
	out, err := r.Render(res.Text)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
