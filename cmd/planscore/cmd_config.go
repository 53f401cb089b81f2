package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"planscore/internal/config"
)

var configPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate a configuration file and print the effective values",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&configPath, "file", "", "path to aggregation config YAML (default: print built-in)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		fmt.Fprintf(cmd.OutOrStdout(), "# %s: valid\n", configPath)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "# built-in defaults")
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
