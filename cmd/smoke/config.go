package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maltedev/home-page-e2e/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the harness configuration read from the environment",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tVALUE\tPURPOSE")
	for _, f := range config.Schema {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Key, f.Kind, displayValue(cfg, f), f.Purpose)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return cfg.Validate()
}

func displayValue(cfg *config.Config, f config.Field) string {
	value, ok := cfg.Lookup(f.Key)
	switch {
	case !ok:
		return "<unset>"
	case f.Key == config.KeyEmailServiceKey && value != "":
		return "********"
	default:
		return value
	}
}
