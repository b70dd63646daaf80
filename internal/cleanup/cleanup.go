// Package cleanup strips generator artefacts from a service response so it
// can be displayed. Every rule is a pure string transform; rules that find
// nothing to change are no-ops, so malformed input degrades instead of failing.
package cleanup

import (
	"regexp"
	"strings"

	"github.com/mithrel/docsmith/pkg/api"
)

// Rule is one step of the pipeline.
type Rule struct {
	Name  string
	Apply func(string) string
}

var (
	openMarkdown   = regexp.MustCompile("(?mi)^```(?:markdown|md)[ \t]*\n")
	openDockerfile = regexp.MustCompile("(?mi)^```(?:dockerfile|docker)[ \t]*\n")
	openCompose    = regexp.MustCompile("(?mi)^```(?:yaml|yml)[ \t]*\n")

	// a closer that ends the text takes its preceding newline with it
	trailingFence = regexp.MustCompile("\n?```[ \t]*$")
	blankRuns     = regexp.MustCompile("\n{2,}")
)

// openerFor picks the opening fence pattern for the kind's language tag.
func openerFor(kind api.Kind) *regexp.Regexp {
	switch kind {
	case api.KindDockerfile:
		return openDockerfile
	case api.KindCompose:
		return openCompose
	default:
		return openMarkdown
	}
}

// Rules returns the ordered pipeline for kind. Order matters: later rules see
// the output of earlier ones.
func Rules(kind api.Kind) []Rule {
	opener := openerFor(kind)
	return []Rule{
		{Name: "strip-open-fence", Apply: func(s string) string {
			return opener.ReplaceAllString(s, "")
		}},
		{Name: "strip-close-fence", Apply: stripCloseFence},
		{Name: "unescape-newlines", Apply: func(s string) string {
			return strings.ReplaceAll(s, `\n`, "\n")
		}},
		{Name: "collapse-blank-lines", Apply: func(s string) string {
			return blankRuns.ReplaceAllString(s, "\n")
		}},
	}
}

func stripCloseFence(s string) string {
	s = trailingFence.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "```\n", "")
}

// Format runs every rule for kind over raw. Format("", k) is "".
func Format(raw string, kind api.Kind) string {
	if raw == "" {
		return ""
	}
	out := raw
	for _, r := range Rules(kind) {
		out = r.Apply(out)
	}
	return out
}
