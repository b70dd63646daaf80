package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mithrel/docsmith/pkg/api"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List what can be generated and the endpoint each kind uses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "KIND\tENDPOINT\tDEFAULT")
			for _, k := range api.Kinds() {
				def := ""
				if k == app.Cfg.Kind {
					def = "*"
				}
				_, _ = fmt.Fprintf(tw, "%s\t/%s\t%s\n", k, k.Endpoint(), def)
			}
			return tw.Flush()
		},
	}
}
