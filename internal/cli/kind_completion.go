package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/docsmith/internal/util"
	"github.com/mithrel/docsmith/pkg/api"
)

func registerKindCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("kind", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return util.ScoreCompletions(toComplete, api.KindNames(), 0), cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveKind maps user input onto a kind: exact names first, then the best
// fuzzy match. Anything else falls back to documentation with a warning.
func resolveKind(errOut io.Writer, s string) api.Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	if k, ok := api.ParseKind(s); ok {
		return k
	}
	if m, ok := util.BestMatch(s, api.KindNames()); ok {
		k, _ := api.ParseKind(m)
		return k
	}
	_, _ = fmt.Fprintf(errOut, "warning: unknown kind %q, using %s\n", s, api.KindDocumentation)
	return api.KindDocumentation
}
