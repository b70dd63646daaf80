package tui

import (
	"fmt"
	"time"

	"github.com/mithrel/docsmith/pkg/api"
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// prevKind steps backwards through the kind cycle.
func prevKind(k api.Kind) api.Kind {
	ks := api.Kinds()
	for i, c := range ks {
		if c == k {
			return ks[(i+len(ks)-1)%len(ks)]
		}
	}
	return ks[0]
}

func kindLabel(k api.Kind) string {
	switch k {
	case api.KindDockerfile:
		return "Dockerfile"
	case api.KindCompose:
		return "Docker Compose"
	default:
		return "Documentation"
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}
