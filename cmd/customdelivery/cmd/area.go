package cmd

import (
	"context"
	"errors"

	areadomain "github.com/smallbiznis/customdelivery/internal/area/domain"
	"github.com/spf13/cobra"
)

var (
	linkArea   int64
	linkModule int64
)

var areaCmd = &cobra.Command{
	Use:   "area",
	Short: "Inspect area associations",
	Long: `Area associations are owned by the host platform. link exists for
seeding development databases.`,
}

var areaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List areas associated with this module",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, svc services) error {
			moduleID, err := svc.Cfg.RequireModuleID()
			if err != nil {
				return err
			}
			ids, err := svc.Areas.ListAreaIDs(ctx, svc.DB, moduleID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ids)
		})
	},
}

var areaLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Associate an area with a delivery module",
	RunE: func(cmd *cobra.Command, args []string) error {
		if linkArea <= 0 {
			return errors.New("--area must be a positive id")
		}
		return withApp(cmd, func(ctx context.Context, svc services) error {
			moduleID := linkModule
			if moduleID == 0 {
				var err error
				if moduleID, err = svc.Cfg.RequireModuleID(); err != nil {
					return err
				}
			}
			assoc := &areadomain.AreaDeliveryModule{
				ID:               svc.GenID.Generate().Int64(),
				AreaID:           linkArea,
				DeliveryModuleID: moduleID,
			}
			if err := svc.Areas.Insert(ctx, svc.DB, assoc); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), assoc)
		})
	},
}

func init() {
	areaCmd.AddCommand(areaListCmd)
	areaCmd.AddCommand(areaLinkCmd)

	areaLinkCmd.Flags().Int64Var(&linkArea, "area", 0, "area id [REQUIRED]")
	areaLinkCmd.Flags().Int64Var(&linkModule, "module", 0, "delivery module id (default: MODULE_ID)")
	_ = areaLinkCmd.MarkFlagRequired("area")
}
