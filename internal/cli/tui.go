package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/docsmith/internal/present/tui"
)

func newTUICmd() *cobra.Command {
	var kindFlag string
	cmd := &cobra.Command{
		Use:   "tui [github-url]",
		Short: "Open the interactive generator",
		Long:  "Open the interactive generator. A URL argument is submitted right away.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			ctx := cmd.Context()

			kind := app.Cfg.Kind
			if kindFlag != "" {
				kind = resolveKind(cmd.ErrOrStderr(), kindFlag)
			}

			stop := startMetrics(ctx, app)
			defer stop()

			opts := tui.Options{
				Generator: app.Generator,
				Copier:    app.Clipboard,
				Kind:      kind,
				View:      app.Cfg.View,
				Style:     app.Cfg.Style,
				WordWrap:  app.Cfg.WordWrap,
				BaseURL:   app.Client.BaseURL(),
			}
			if len(args) == 1 {
				opts.Input = args[0]
				opts.AutoSubmit = true
			}
			return tui.Run(ctx, opts)
		},
	}
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "initial kind: documentation|dockerfile|docker-compose")
	registerKindCompletion(cmd)
	return cmd
}
