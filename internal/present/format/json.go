package format

import (
	"encoding/json"
	"io"
	"time"

	"github.com/mithrel/docsmith/pkg/api"
)

type jsonResult struct {
	URL         string    `json:"url"`
	Kind        api.Kind  `json:"kind"`
	Endpoint    string    `json:"endpoint"`
	Text        string    `json:"text"`
	Raw         string    `json:"raw,omitempty"`
	Digest      string    `json:"digest"`
	CompletedAt time.Time `json:"completed_at"`
}

// WriteJSONResult writes res as a single JSON object. The raw body is only
// included when it differs from the formatted text.
func WriteJSONResult(w io.Writer, res api.GenerationResult, indent bool) error {
	out := jsonResult{
		URL:         res.URL,
		Kind:        res.Kind,
		Endpoint:    res.Kind.Endpoint(),
		Text:        res.Text,
		Digest:      res.Digest(),
		CompletedAt: res.CompletedAt,
	}
	if res.Raw != res.Text {
		out.Raw = res.Raw
	}
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
