package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/docsmith/internal/present"
	"github.com/mithrel/docsmith/pkg/api"
)

func newGenerateCmd() *cobra.Command {
	var kindFlag string
	var outputMode string
	var headers bool
	var copyText bool
	cmd := &cobra.Command{
		Use:   "generate <github-url>",
		Short: "Generate documentation, a Dockerfile or a Compose file for a repository",
		Example: `  docsmith generate github.com/owner/repo
  docsmith generate https://github.com/owner/repo --kind dockerfile --output raw
  docsmith generate github.com/owner/repo --kind compose --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			ctx := cmd.Context()

			kind := app.Cfg.Kind
			if kindFlag != "" {
				kind = resolveKind(cmd.ErrOrStderr(), kindFlag)
			}
			if outputMode == "" {
				outputMode = string(app.Cfg.View)
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}

			stop := startMetrics(ctx, app)
			defer stop()

			start := time.Now()
			res, err := app.Generator.Generate(ctx, args[0], kind)
			if err != nil {
				var ierr *api.InvalidURLError
				if errors.As(err, &ierr) {
					return fmt.Errorf("please enter a valid GitHub repository URL: %w", err)
				}
				app.Log.Warn("generation failed", zap.String("kind", string(kind)), zap.Error(err))
				return err
			}
			app.Log.Info("generated",
				zap.String("kind", string(res.Kind)),
				zap.String("url", res.URL),
				zap.Int("bytes", len(res.Text)),
				zap.Duration("took", time.Since(start)),
			)

			if copyText {
				if err := app.Clipboard.Copy(res.Text); err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: copy failed: %v\n", err)
				} else {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Content copied!")
				}
			}

			opts := present.Options{
				Mode:       mode,
				JSONIndent: false, // pretty-print via external tools like jq
				Headers:    headers,
				Style:      app.Cfg.Style,
				WordWrap:   app.Cfg.WordWrap,
			}
			return renderResult(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), res, opts, app.Cfg.Pager)
		},
	}
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "what to generate: documentation|dockerfile|docker-compose (default from generate.kind)")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "", "output mode: preview|raw|json (default from output.view)")
	cmd.Flags().BoolVar(&headers, "headers", false, "print a metadata row before raw output")
	cmd.Flags().BoolVar(&copyText, "copy", false, "copy the formatted text to the clipboard")
	cmd.Flags().Bool("no-pager", false, "never pipe output through $PAGER (sets output.pager=false)")
	registerKindCompletion(cmd)
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"preview", "raw", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
