package api

import "time"

// Kind is the output the remote service is asked to generate.
type Kind string

const (
	KindDocumentation Kind = "documentation"
	KindDockerfile    Kind = "dockerfile"
	KindCompose       Kind = "docker-compose"
)

// Kinds lists the supported kinds in selector order.
func Kinds() []Kind {
	return []Kind{KindDocumentation, KindDockerfile, KindCompose}
}

// KindNames returns Kinds as plain strings (flag completion, fuzzy matching).
func KindNames() []string {
	ks := Kinds()
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = string(k)
	}
	return out
}

// ParseKind accepts the exact kind names.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindDocumentation, KindDockerfile, KindCompose:
		return Kind(s), true
	default:
		return KindDocumentation, false
	}
}

// Endpoint maps the kind to its remote operation. Unknown kinds fall back to
// the documentation operation.
func (k Kind) Endpoint() string {
	switch k {
	case KindDockerfile:
		return "generate-dockerfile"
	case KindCompose:
		return "generate-docker-compose"
	default:
		return "generate-docs-from-url"
	}
}

// Next returns the kind after k in selector order, wrapping around.
func (k Kind) Next() Kind {
	ks := Kinds()
	for i, c := range ks {
		if c == k {
			return ks[(i+1)%len(ks)]
		}
	}
	return ks[0]
}

// GenerationRequest is built once per submission and never mutated.
type GenerationRequest struct {
	URL  string `json:"url"`
	Kind Kind   `json:"type"`
}

// GenerationResult is what a successful submission leaves behind.
type GenerationResult struct {
	URL         string    `json:"url"`
	Kind        Kind      `json:"kind"`
	Raw         string    `json:"raw"`
	Text        string    `json:"text"`
	CompletedAt time.Time `json:"completed_at"`
}

// ViewMode selects how a loaded result is shown.
type ViewMode string

const (
	ViewPreview ViewMode = "preview"
	ViewRaw     ViewMode = "raw"
)

// ParseViewMode parses "preview" or "raw".
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewPreview, ViewRaw:
		return ViewMode(s), true
	default:
		return ViewPreview, false
	}
}

// Toggle flips between preview and raw.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewRaw {
		return ViewPreview
	}
	return ViewRaw
}
