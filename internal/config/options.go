package config

import (
	"github.com/mithrel/docsmith/internal/dispatch"
	"github.com/mithrel/docsmith/internal/render"
)

// DefaultBaseURL is the hosted generation service.
const DefaultBaseURL = dispatch.DefaultBaseURL

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "service.base_url", Default: DefaultBaseURL, Comment: "Base URL of the generation service"},
		{Key: "service.timeout", Default: "0s", Comment: "Per-request timeout such as 90s; 0s waits indefinitely"},

		{Key: "generate.kind", Default: "documentation", Comment: "Default kind: documentation, dockerfile or docker-compose"},

		{Key: "output.view", Default: "preview", Comment: "How results are shown: preview (rendered) or raw"},
		{Key: "output.pager", Default: true, Comment: "Pipe long output through $PAGER when stdout is a terminal"},

		{Key: "render.style", Default: "dark", Comment: "Glamour style used for previews"},
		{Key: "render.word_wrap", Default: render.DefaultWordWrap, Comment: "Preview word-wrap width in columns"},

		{Key: "log.level", Default: "warn", Comment: "Log level: debug, info, warn or error"},
		{Key: "log.format", Default: "console", Comment: "Log encoding: console or json"},

		{Key: "metrics.addr", Default: "", Comment: "Serve Prometheus metrics on this address (e.g. :9090); empty disables"},
	}
}
