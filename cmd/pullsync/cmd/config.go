package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/pullsync/config"
)

var saveLocal bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change pullsync settings",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every setting with its value and source",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := newConfigResolver()
		resolved := resolver.Resolve()

		out := cmd.OutOrStdout()
		for _, name := range config.KeyNames() {
			value, src := resolved.GetWithSource(name)
			if value == "" {
				fmt.Fprintf(out, "%-22s (unset)\n", name)
				continue
			}
			fmt.Fprintf(out, "%-22s %-30s [%s]\n", name, displayValue(name, value), src)
		}

		if p := resolver.GlobalPath(); p != "" {
			fmt.Fprintf(out, "\nglobal: %s\n", p)
		}
		if p := resolver.LocalPath(); p != "" {
			fmt.Fprintf(out, "local:  %s\n", p)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := config.LookupKey(args[0]); !ok {
			return fmt.Errorf("%w: %s", config.ErrUnknownKey, args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), newConfigResolver().Resolve().Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting to the global (or --local) config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.StoreFor(newConfigResolver())

		key, value := args[0], args[1]
		if saveLocal {
			if err := store.SaveLocal(key, value); err != nil {
				return err
			}
			info("saved %s to %s", key, store.LocalPath)
			return nil
		}

		if err := store.SaveGlobal(key, value); err != nil {
			return err
		}
		info("saved %s to %s", key, store.GlobalPath)
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting from the global config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := config.LookupKey(args[0]); !ok {
			return fmt.Errorf("%w: %s", config.ErrUnknownKey, args[0])
		}
		resolver := newConfigResolver()
		if err := config.StoreFor(resolver).DeleteGlobal(args[0]); err != nil {
			return err
		}

		// Removing the global value may expose another layer.
		if value, src := resolver.Resolve().GetWithSource(args[0]); src != config.SourceDefault && value != "" {
			where := string(src)
			if src.Persisted() {
				where = resolver.LocalPath()
			}
			info("%s is still set by %s", args[0], where)
		}
		return nil
	},
}

func init() {
	configSetCmd.Flags().BoolVar(&saveLocal, "local", false, "write to .pullsync.yaml in the git root")

	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

// displayValue masks secret settings.
func displayValue(name, value string) string {
	if k, ok := config.LookupKey(name); ok && k.Secret {
		return maskSecret(value)
	}
	return value
}
