package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bwmarrin/snowflake"
	"github.com/goccy/go-json"
	"github.com/smallbiznis/customdelivery/internal/area"
	areadomain "github.com/smallbiznis/customdelivery/internal/area/domain"
	"github.com/smallbiznis/customdelivery/internal/cache"
	"github.com/smallbiznis/customdelivery/internal/clock"
	"github.com/smallbiznis/customdelivery/internal/config"
	"github.com/smallbiznis/customdelivery/internal/healthcheck"
	healthdomain "github.com/smallbiznis/customdelivery/internal/healthcheck/domain"
	"github.com/smallbiznis/customdelivery/internal/logger"
	"github.com/smallbiznis/customdelivery/internal/migration"
	"github.com/smallbiznis/customdelivery/internal/moduleconfig"
	moduleconfigdomain "github.com/smallbiznis/customdelivery/internal/moduleconfig/domain"
	"github.com/smallbiznis/customdelivery/internal/observability"
	"github.com/smallbiznis/customdelivery/internal/observability/correlation"
	"github.com/smallbiznis/customdelivery/internal/rate"
	ratedomain "github.com/smallbiznis/customdelivery/internal/rate/domain"
	"github.com/smallbiznis/customdelivery/internal/slice"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	"github.com/smallbiznis/customdelivery/internal/tax"
	taxdomain "github.com/smallbiznis/customdelivery/internal/tax/domain"
	"github.com/smallbiznis/customdelivery/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// services is everything a command may drive.
type services struct {
	fx.In

	Cfg     config.Config
	DB      *gorm.DB
	GenID   *snowflake.Node
	Slices  slicedomain.Service
	Configs moduleconfigdomain.Service
	Rates   ratedomain.Resolver
	Health  healthdomain.Checker
	Taxes   taxdomain.Service
	Areas   areadomain.Repository
}

func modules() fx.Option {
	return fx.Options(
		// Core Infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		cache.Module,
		migration.Module,

		// Functional Domains
		moduleconfig.Module,
		slice.Module,
		tax.Module,
		area.Module,
		rate.Module,
		healthcheck.Module,
	)
}

// withApp starts the application graph, runs fn and stops the graph again.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, svc services) error) error {
	var svc services
	app := fx.New(
		modules(),
		fx.NopLogger,
		fx.Invoke(func(s services) { svc = s }),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	ctx, _ = correlation.Ensure(ctx)

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	return fn(ctx, svc)
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
