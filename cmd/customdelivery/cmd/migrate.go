package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The migration module applies the schema while the app starts.
		return withApp(cmd, func(ctx context.Context, svc services) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", svc.DB.Dialector.Name())
			return err
		})
	},
}
