package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/customdelivery/internal/clock"
	"github.com/smallbiznis/customdelivery/internal/config"
	moduleconfigdomain "github.com/smallbiznis/customdelivery/internal/moduleconfig/domain"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultsSource supplies the configuration used before the first save.
type DefaultsSource interface {
	Get() config.DeliveryConfig
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Repo     moduleconfigdomain.Repository
	Defaults DefaultsSource
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     moduleconfigdomain.Repository
	defaults DefaultsSource
}

func New(p Params) moduleconfigdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("moduleconfig.service"),
		clock:    p.Clock,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) Get(ctx context.Context) (moduleconfigdomain.Config, error) {
	stored, err := s.repo.Find(ctx, s.db)
	if err != nil {
		return moduleconfigdomain.Config{}, fmt.Errorf("load module config: %w", err)
	}
	if stored != nil {
		return *stored, nil
	}
	return s.fromDefaults(), nil
}

func (s *Service) Save(ctx context.Context, req moduleconfigdomain.SaveRequest) (moduleconfigdomain.Config, error) {
	method := slicedomain.Method(strings.ToLower(strings.TrimSpace(req.Method)))
	if !method.Valid() {
		return moduleconfigdomain.Config{}, moduleconfigdomain.ErrInvalidMethod
	}
	if req.TaxRuleID < 0 {
		return moduleconfigdomain.Config{}, moduleconfigdomain.ErrInvalidTaxRule
	}

	cfg := moduleconfigdomain.Config{
		TrackingURL: strings.TrimSpace(req.TrackingURL),
		Method:      method,
		UpdatedAt:   s.clock.Now(),
	}
	if req.TaxRuleID > 0 {
		taxRuleID := req.TaxRuleID
		cfg.TaxRuleID = &taxRuleID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Upsert(ctx, tx, &cfg)
	})
	if err != nil {
		return moduleconfigdomain.Config{}, fmt.Errorf("save module config: %w", err)
	}

	s.log.Info("module config saved",
		zap.String("method", string(cfg.Method)),
		zap.Bool("has_default_tax", cfg.TaxRuleID != nil),
	)
	return cfg, nil
}

func (s *Service) fromDefaults() moduleconfigdomain.Config {
	cfg := moduleconfigdomain.Config{Method: slicedomain.MethodByWeight}
	if s.defaults == nil {
		return cfg
	}

	defaults := s.defaults.Get()
	if method := slicedomain.Method(strings.TrimSpace(defaults.Method)); method.Valid() {
		cfg.Method = method
	}
	cfg.TrackingURL = strings.TrimSpace(defaults.TrackingURL)
	if defaults.TaxRuleID > 0 {
		taxRuleID := defaults.TaxRuleID
		cfg.TaxRuleID = &taxRuleID
	}
	return cfg
}
