package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := skipApp(&cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
	})

	cmd.AddCommand(skipApp(&cobra.Command{
		Use:       "generate <bash|zsh|fish>",
		Short:     "Generate completions for a shell",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return fmt.Errorf("unsupported shell %q (want bash, zsh or fish)", args[0])
			}
		},
	}))

	return cmd
}
