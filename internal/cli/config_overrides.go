package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/docsmith/internal/config"
)

// flagBinding routes a command-line flag onto a config key. Negated bool
// flags like --no-pager store the inverse.
type flagBinding struct {
	flag   string
	key    string
	negate bool
}

var flagBindings = []flagBinding{
	{flag: "base-url", key: "service.base_url"},
	{flag: "timeout", key: "service.timeout"},
	{flag: "log-level", key: "log.level"},
	{flag: "no-pager", key: "output.pager", negate: true},
}

// applyFlagBindings copies the bound flags the user actually set into v, so
// they win over file and environment values. Flags absent from cmd are
// skipped; a binding to an unknown key is an error.
func applyFlagBindings(cmd *cobra.Command, v *viper.Viper, bindings []flagBinding) error {
	known := make(map[string]bool)
	for _, opt := range config.GetConfigOptions() {
		known[opt.Key] = true
	}
	for _, b := range bindings {
		if !known[b.key] {
			return fmt.Errorf("flag --%s is bound to unknown config key %q", b.flag, b.key)
		}
		f := cmd.Flags().Lookup(b.flag)
		if f == nil || !f.Changed {
			continue
		}
		switch f.Value.Type() {
		case "bool":
			val, err := cmd.Flags().GetBool(b.flag)
			if err != nil {
				return err
			}
			v.Set(b.key, val != b.negate)
		case "duration":
			val, err := cmd.Flags().GetDuration(b.flag)
			if err != nil {
				return err
			}
			v.Set(b.key, val.String())
		default:
			v.Set(b.key, f.Value.String())
		}
	}
	return nil
}
