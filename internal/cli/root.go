package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/docsmith/internal/config"
	"github.com/mithrel/docsmith/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// skipAppAnnotation marks commands that must run without a wired App, such
// as config generation which has to work while the config is broken.
const skipAppAnnotation = "docsmith/skip-app"

// buildApp is swapped in tests to inject fakes.
var buildApp = wire.BuildApp

// Execute is the entrypoint: it builds the root cobra.Command
// and calls its Execute() method to run the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "docsmith",
		Short:         "docSmith: documentation, Dockerfiles and Compose files from a GitHub repository",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipAppAnnotation] == "true" {
				return nil
			}
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if err := applyFlagBindings(cmd, v, flagBindings); err != nil {
				return err
			}
			app, err := buildApp(cmd.Context(), v)
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), appKey, app)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app, ok := cmd.Context().Value(appKey).(*wire.App); ok {
				app.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml)")
	cmd.PersistentFlags().String("base-url", "", "generation service base URL (overrides service.base_url)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error (overrides log.level)")
	cmd.PersistentFlags().Duration("timeout", 0, "client-side request timeout, e.g. 90s (overrides service.timeout)")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newTUICmd())
	cmd.AddCommand(newPingCmd())
	cmd.AddCommand(newKindsCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newConfigCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getApp(cmd *cobra.Command) *wire.App {
	v := cmd.Context().Value(appKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: app not initialized")
		os.Exit(1)
	}
	return v.(*wire.App)
}

func skipApp(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[skipAppAnnotation] = "true"
	return cmd
}
