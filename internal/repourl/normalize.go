// Package repourl canonicalises user-entered GitHub repository URLs.
package repourl

import (
	"net/url"
	"strings"

	"github.com/mithrel/docsmith/pkg/api"
)

const canonicalPrefix = "https://github.com/"

// Repo is the owner/name pair of a normalized URL.
type Repo struct {
	Owner string
	Name  string
}

// URL returns the canonical https://github.com/{owner}/{repo} form.
func (r Repo) URL() string {
	return canonicalPrefix + r.Owner + "/" + r.Name
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// Normalize validates input and reduces it to https://github.com/{owner}/{repo}.
// Query strings, fragments, branch refs and deeper paths are dropped.
func Normalize(input string) (string, error) {
	r, err := Parse(input)
	if err != nil {
		return "", err
	}
	return r.URL(), nil
}

// Parse is Normalize returning the owner/repo pair instead of the URL.
func Parse(input string) (Repo, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimSuffix(s, "/")
	if s == "" {
		return Repo{}, invalid(input, "empty input")
	}

	if !hasScheme(s) {
		s = "https://" + s
	}
	s = stripWWW(s)

	u, err := url.Parse(s)
	if err != nil {
		return Repo{}, invalid(input, "unparseable URL")
	}

	host := strings.ToLower(u.Hostname())
	if host != "github.com" && !strings.HasSuffix(host, ".github.com") {
		return Repo{}, invalid(input, "not a GitHub host")
	}

	// Segments keep their percent-encoding so an escaped "/" stays inside
	// its segment and the canonical URL remains a valid URL.
	segs := splitPath(u.EscapedPath())
	if len(segs) < 2 {
		return Repo{}, invalid(input, "missing owner/repo")
	}
	return Repo{Owner: segs[0], Name: segs[1]}, nil
}

func hasScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// stripWWW drops a leading "www." label right after the scheme.
func stripWWW(s string) string {
	idx := strings.Index(s, "://")
	if idx < 0 {
		return s
	}
	rest := s[idx+3:]
	if len(rest) >= 4 && strings.EqualFold(rest[:4], "www.") {
		return s[:idx+3] + rest[4:]
	}
	return s
}

func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func invalid(input, reason string) error {
	return &api.InvalidURLError{Input: input, Reason: reason}
}
