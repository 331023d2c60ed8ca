// Package cmd provides the operator commands for customdelivery.
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	verbose        bool
	commandTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "customdelivery",
	Short: "Manage tiered custom-delivery rates",
	Long: `customdelivery manages per-area shipping slices and resolves delivery
charges against them.

Examples:
  customdelivery migrate
  customdelivery config set --method by_weight
  customdelivery slice save --area 7 --weight-max 5 --price 10
  customdelivery quote --area 7 --weight 4.2
  customdelivery health --detail`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			_ = os.Setenv("LOG_LEVEL", "debug")
		}
	},
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&commandTimeout, "timeout", 30*time.Second, "timeout for a single command")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(areaCmd)
}
