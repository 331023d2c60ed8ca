package cmd

import (
	"context"

	moduleconfigdomain "github.com/smallbiznis/customdelivery/internal/moduleconfig/domain"
	"github.com/spf13/cobra"
)

var configReq moduleconfigdomain.SaveRequest

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the module configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective module configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			cfg, err := svc.Configs.Get(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cfg)
		})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the module configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			cfg, err := svc.Configs.Save(ctx, configReq)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), cfg)
		})
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	configSetCmd.Flags().StringVar(&configReq.Method, "method", "", "by_weight, by_price or by_weight_and_price [REQUIRED]")
	configSetCmd.Flags().StringVar(&configReq.TrackingURL, "url", "", "tracking url, %ID% is replaced by the tracking number")
	configSetCmd.Flags().Int64Var(&configReq.TaxRuleID, "tax", 0, "default tax rule id")
	_ = configSetCmd.MarkFlagRequired("method")
}
