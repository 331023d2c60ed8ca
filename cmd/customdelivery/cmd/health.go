package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var healthDetail bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report whether the module is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			if healthDetail {
				report, err := svc.Health.Report(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			}

			status, err := svc.Health.IsConfigured(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		})
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthDetail, "detail", false, "list associated areas that have no slices")
}
