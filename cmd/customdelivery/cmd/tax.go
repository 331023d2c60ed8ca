package cmd

import (
	"context"

	taxdomain "github.com/smallbiznis/customdelivery/internal/tax/domain"
	"github.com/spf13/cobra"
)

var (
	taxReq  taxdomain.CreateRequest
	taxMode string
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Manage tax rules applied to delivery charges",
}

var taxCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a tax rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		taxReq.TaxMode = taxdomain.TaxMode(taxMode)
		return withApp(cmd, func(ctx context.Context, svc services) error {
			rule, err := svc.Taxes.Create(ctx, taxReq)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rule)
		})
	},
}

var taxGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a tax rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			rule, err := svc.Taxes.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rule)
		})
	},
}

var taxDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a tax rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			rule, err := svc.Taxes.Disable(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rule)
		})
	},
}

func init() {
	taxCmd.AddCommand(taxCreateCmd)
	taxCmd.AddCommand(taxGetCmd)
	taxCmd.AddCommand(taxDisableCmd)

	taxCreateCmd.Flags().StringVar(&taxReq.Code, "code", "", "unique rule code [REQUIRED]")
	taxCreateCmd.Flags().StringVar(&taxReq.Name, "name", "", "display name [REQUIRED]")
	taxCreateCmd.Flags().StringVar(&taxMode, "mode", string(taxdomain.TaxModeExclusive), "exclusive or inclusive")
	taxCreateCmd.Flags().StringVar(&taxReq.Rate, "rate", "", "rate as a fraction, e.g. 0.11 [REQUIRED]")
	_ = taxCreateCmd.MarkFlagRequired("code")
	_ = taxCreateCmd.MarkFlagRequired("name")
	_ = taxCreateCmd.MarkFlagRequired("rate")
}
