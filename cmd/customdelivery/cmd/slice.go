package cmd

import (
	"context"
	"errors"
	"fmt"

	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	"github.com/spf13/cobra"
)

var (
	sliceReq  slicedomain.SaveRequest
	sliceArea int64
)

var sliceCmd = &cobra.Command{
	Use:   "slice",
	Short: "Manage delivery slices",
}

var sliceSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create a slice, or update one with --id",
	Long: `Create a slice, or update one in place with --id.

Numbers accept either "." or "," as the decimal separator. Only the bound
used by the configured pricing method is required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			view, err := svc.Slices.Save(ctx, sliceReq)
			if err != nil {
				var verrs slicedomain.ValidationErrors
				if errors.As(err, &verrs) {
					for _, fe := range verrs {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Err)
					}
					return fmt.Errorf("slice not saved: %d invalid field(s)", len(verrs))
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		})
	},
}

var sliceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a slice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			if err := svc.Slices.Delete(ctx, args[0]); err != nil {
				if errors.Is(err, slicedomain.ErrNotFound) {
					return fmt.Errorf("the slice has not been deleted: %w", err)
				}
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		})
	},
}

var sliceGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one slice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			view, err := svc.Slices.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		})
	},
}

var sliceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an area's slices in tier order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			views, err := svc.Slices.List(ctx, sliceArea)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), views)
		})
	},
}

func init() {
	sliceCmd.AddCommand(sliceSaveCmd)
	sliceCmd.AddCommand(sliceDeleteCmd)
	sliceCmd.AddCommand(sliceGetCmd)
	sliceCmd.AddCommand(sliceListCmd)

	sliceSaveCmd.Flags().StringVar(&sliceReq.ID, "id", "", "slice id to update")
	sliceSaveCmd.Flags().StringVar(&sliceReq.AreaID, "area", "", "area id [REQUIRED]")
	sliceSaveCmd.Flags().StringVar(&sliceReq.WeightMax, "weight-max", "", "inclusive weight ceiling")
	sliceSaveCmd.Flags().StringVar(&sliceReq.PriceMax, "price-max", "", "inclusive order value ceiling")
	sliceSaveCmd.Flags().StringVar(&sliceReq.Price, "price", "", "delivery charge [REQUIRED]")
	sliceSaveCmd.Flags().StringVar(&sliceReq.TaxRuleID, "tax-rule", "", "tax rule id, 0 to clear")

	sliceListCmd.Flags().Int64Var(&sliceArea, "area", 0, "area id [REQUIRED]")
	_ = sliceListCmd.MarkFlagRequired("area")
}
