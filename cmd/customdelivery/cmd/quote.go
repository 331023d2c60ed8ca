package cmd

import (
	"context"
	"strings"

	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	"github.com/spf13/cobra"
)

var (
	quoteArea   int64
	quoteWeight float64
	quotePrice  float64
	quoteMethod string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Resolve the delivery charge for an order",
	Long: `Resolve the delivery charge for an order shipped to an area.

The configured pricing method is used unless --method is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			method := slicedomain.Method(strings.TrimSpace(quoteMethod))
			if method == "" {
				cfg, err := svc.Configs.Get(ctx)
				if err != nil {
					return err
				}
				method = cfg.Method
			}

			charge, err := svc.Rates.Resolve(ctx, quoteArea, method, quoteWeight, quotePrice)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), charge)
		})
	},
}

func init() {
	quoteCmd.Flags().Int64Var(&quoteArea, "area", 0, "destination area id [REQUIRED]")
	quoteCmd.Flags().Float64Var(&quoteWeight, "weight", 0, "order weight")
	quoteCmd.Flags().Float64Var(&quotePrice, "price", 0, "order value")
	quoteCmd.Flags().StringVar(&quoteMethod, "method", "", "by_weight or by_price (default: configured method)")
	_ = quoteCmd.MarkFlagRequired("area")
}
