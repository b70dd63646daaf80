package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the generation service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			start := time.Now()
			msg, err := app.Client.Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("ping %s: %w", app.Client.BaseURL(), err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", app.Client.BaseURL(), msg, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}
