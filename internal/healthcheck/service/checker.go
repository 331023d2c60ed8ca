package service

import (
	"context"
	"fmt"

	areadomain "github.com/smallbiznis/customdelivery/internal/area/domain"
	"github.com/smallbiznis/customdelivery/internal/config"
	healthdomain "github.com/smallbiznis/customdelivery/internal/healthcheck/domain"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Cfg    config.Config
	Slices slicedomain.Repository
	Areas  areadomain.Repository
}

type Checker struct {
	db         *gorm.DB
	log        *zap.Logger
	moduleCode string
	cfg        config.Config
	slices     slicedomain.Repository
	areas      areadomain.Repository
}

func New(p Params) healthdomain.Checker {
	return &Checker{
		db:         p.DB,
		log:        p.Log.Named("healthcheck.service"),
		moduleCode: p.Cfg.ModuleCode,
		cfg:        p.Cfg,
		slices:     p.Slices,
		areas:      p.Areas,
	}
}

// IsConfigured reports the module complete once any slice and any area
// association exist. Areas without slices are not detected here.
func (c *Checker) IsConfigured(ctx context.Context) (healthdomain.Status, error) {
	slices, areas, err := c.counts(ctx)
	if err != nil {
		return healthdomain.Status{}, err
	}
	return c.status(slices, areas), nil
}

func (c *Checker) Report(ctx context.Context) (healthdomain.Report, error) {
	slices, areas, err := c.counts(ctx)
	if err != nil {
		return healthdomain.Report{}, err
	}

	moduleID, _ := c.cfg.RequireModuleID()
	ids, err := c.areas.ListAreaIDs(ctx, c.db, moduleID)
	if err != nil {
		return healthdomain.Report{}, fmt.Errorf("list module areas: %w", err)
	}

	uncovered := make([]int64, 0)
	for _, areaID := range ids {
		items, err := c.slices.ListByArea(ctx, c.db, areaID)
		if err != nil {
			return healthdomain.Report{}, fmt.Errorf("list slices for area %d: %w", areaID, err)
		}
		if len(items) == 0 {
			uncovered = append(uncovered, areaID)
		}
	}

	return healthdomain.Report{
		Status:         c.status(slices, areas),
		Slices:         slices,
		Areas:          areas,
		UncoveredAreas: uncovered,
	}, nil
}

func (c *Checker) OnModuleConfig(ctx context.Context, event *healthdomain.ModuleConfigEvent) error {
	if event == nil || event.Subject != healthdomain.SubjectHealthStatus {
		return healthdomain.ErrUnexpectedSubject
	}

	status, err := c.IsConfigured(ctx)
	if err != nil {
		return err
	}
	if event.Arguments == nil {
		event.Arguments = make(map[string]any)
	}
	event.Arguments[healthdomain.ArgumentKey] = status

	c.log.Debug("health status answered",
		zap.String("module", status.Module),
		zap.Bool("completed", status.Completed),
	)
	return nil
}

func (c *Checker) counts(ctx context.Context) (int64, int64, error) {
	moduleID, err := c.cfg.RequireModuleID()
	if err != nil {
		return 0, 0, err
	}
	slices, err := c.slices.Count(ctx, c.db)
	if err != nil {
		return 0, 0, fmt.Errorf("count slices: %w", err)
	}
	areas, err := c.areas.CountByModule(ctx, c.db, moduleID)
	if err != nil {
		return 0, 0, fmt.Errorf("count area associations: %w", err)
	}
	return slices, areas, nil
}

func (c *Checker) status(slices, areas int64) healthdomain.Status {
	return healthdomain.Status{
		Module:    c.moduleCode,
		Completed: slices > 0 && areas > 0,
	}
}
