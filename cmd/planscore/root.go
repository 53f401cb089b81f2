package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planscore/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "planscore",
	Short: "Verifiable hierarchical aggregation for plan evaluation scores",
	Long: "Planscore folds 300 rubric question scores through four aggregation\n" +
		"tiers into one composite judgment, with dispersion-adaptive penalties,\n" +
		"hermeticity enforcement and a cryptographically verifiable audit trail.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.ParseLevel(flagLogLevel), flagLogFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format (text|json)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
