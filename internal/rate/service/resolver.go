package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/customdelivery/internal/cache"
	moduleconfigdomain "github.com/smallbiznis/customdelivery/internal/moduleconfig/domain"
	"github.com/smallbiznis/customdelivery/internal/observability/correlation"
	"github.com/smallbiznis/customdelivery/internal/observability/metrics"
	"github.com/smallbiznis/customdelivery/internal/observability/tracing"
	ratedomain "github.com/smallbiznis/customdelivery/internal/rate/domain"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	taxdomain "github.com/smallbiznis/customdelivery/internal/tax/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    slicedomain.Repository
	Config  moduleconfigdomain.Service
	Tax     taxdomain.Calculator
	Cache   cache.SliceTableCache `optional:"true"`
	Metrics *metrics.Metrics      `optional:"true"`
}

type Resolver struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    slicedomain.Repository
	config  moduleconfigdomain.Service
	tax     taxdomain.Calculator
	cache   cache.SliceTableCache
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func New(p Params) ratedomain.Resolver {
	tables := p.Cache
	if tables == nil {
		tables = cache.NewNoop()
	}
	return &Resolver{
		db:      p.DB,
		log:     p.Log.Named("rate.resolver"),
		repo:    p.Repo,
		config:  p.Config,
		tax:     p.Tax,
		cache:   tables,
		metrics: p.Metrics,
		tracer:  otel.Tracer("customdelivery/rate"),
	}
}

func (r *Resolver) Resolve(ctx context.Context, areaID int64, method slicedomain.Method, weight, price float64) (*ratedomain.Charge, error) {
	ctx, span := r.tracer.Start(ctx, "rate.resolve", trace.WithAttributes(
		attribute.String("rate.method", string(method)),
	))
	defer span.End()

	charge, err := r.resolve(ctx, areaID, method, weight, price)
	tracing.RecordError(span, err)
	return charge, err
}

func (r *Resolver) resolve(ctx context.Context, areaID int64, method slicedomain.Method, weight, price float64) (*ratedomain.Charge, error) {
	var metric float64
	switch method {
	case slicedomain.MethodByWeight:
		metric = weight
	case slicedomain.MethodByPrice:
		metric = price
	case slicedomain.MethodByWeightAndPrice:
		r.metrics.RecordRateResolution(ctx, string(method), metrics.OutcomeUnsupported)
		return nil, ratedomain.ErrUnsupportedMethod
	default:
		return nil, slicedomain.ErrInvalidMethod
	}
	if math.IsNaN(metric) || math.IsInf(metric, 0) || metric < 0 {
		return nil, ratedomain.ErrInvalidMetric
	}

	slices, err := r.loadTable(ctx, areaID)
	if err != nil {
		r.metrics.RecordRateResolution(ctx, string(method), metrics.OutcomeError)
		return nil, err
	}

	table := slicedomain.NewTable(areaID, method, slices)
	match, ok := table.Lookup(decimal.NewFromFloat(metric))
	if !ok {
		r.metrics.RecordRateResolution(ctx, string(method), metrics.OutcomeNoRate)
		r.log.Debug("no slice covers order",
			zap.String("operation_id", correlation.OperationID(ctx)),
			zap.Int64("area_id", areaID),
			zap.String("method", string(method)),
			zap.Float64("metric", metric),
			zap.String("max", table.Max().String()),
		)
		return nil, ratedomain.ErrNoApplicableRate
	}

	charge := &ratedomain.Charge{
		SliceID: match.ID,
		AreaID:  areaID,
		Method:  method,
		Amount:  match.Price,
		Tax:     decimal.Zero,
		Total:   match.Price,
	}

	ruleID, err := r.taxRuleFor(ctx, match)
	if err != nil {
		r.metrics.RecordRateResolution(ctx, string(method), metrics.OutcomeError)
		return nil, err
	}
	if ruleID > 0 {
		taxed, err := r.tax.Compute(ctx, ruleID, match.Price)
		if err != nil {
			r.metrics.RecordRateResolution(ctx, string(method), metrics.OutcomeError)
			return nil, fmt.Errorf("compute shipping tax: %w", err)
		}
		charge.TaxRuleID = &ruleID
		charge.Tax = taxed.Tax
		charge.Total = taxed.Total
	}

	r.metrics.RecordRateResolution(ctx, string(method), metrics.OutcomeMatched)
	return charge, nil
}

// loadTable reads the table version before the rows, so an entry cached by a
// read that raced a write is tagged with the older version and never served.
func (r *Resolver) loadTable(ctx context.Context, areaID int64) ([]slicedomain.Slice, error) {
	version, err := r.repo.Version(ctx, r.db, areaID)
	if err != nil {
		return nil, fmt.Errorf("load slice table version: %w", err)
	}
	if cached, ok := r.cache.Get(ctx, areaID); ok && cached.Version == version {
		return cached.Slices, nil
	}

	slices, err := r.repo.ListByArea(ctx, r.db, areaID)
	if err != nil {
		return nil, fmt.Errorf("load slice table: %w", err)
	}
	r.cache.Set(ctx, areaID, cache.Table{Version: version, Slices: slices})
	return slices, nil
}

// A slice's own rule wins over the module default.
func (r *Resolver) taxRuleFor(ctx context.Context, s slicedomain.Slice) (int64, error) {
	if s.TaxRuleID != nil && *s.TaxRuleID > 0 {
		return *s.TaxRuleID, nil
	}
	cfg, err := r.config.Get(ctx)
	if err != nil {
		return 0, err
	}
	ruleID, _ := cfg.DefaultTaxRuleID()
	return ruleID, nil
}
