package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/customdelivery/internal/clock"
	taxdomain "github.com/smallbiznis/customdelivery/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  taxdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  taxdomain.Repository
}

func NewService(p serviceParams) taxdomain.Service {
	return &Service{
		log:   p.Log.Named("tax.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req taxdomain.CreateRequest) (*taxdomain.Response, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(req.Rate))
	if err != nil {
		return nil, taxdomain.ErrInvalidTaxRate
	}

	now := s.clock.Now()
	record := &taxdomain.TaxRule{
		ID:        s.genID.Generate(),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:      strings.TrimSpace(req.Name),
		TaxMode:   normalizeTaxMode(req.TaxMode),
		Rate:      rate,
		IsEnabled: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("tax rule created", zap.String("code", record.Code), zap.String("rate", record.Rate.String()))
	resp := toResponse(record)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*taxdomain.Response, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*taxdomain.Response, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	item.IsEnabled = false
	item.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) find(ctx context.Context, id string) (*taxdomain.TaxRule, error) {
	ruleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || ruleID == 0 {
		return nil, taxdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, taxdomain.ErrNotFound
	}
	return item, nil
}

func toResponse(rule *taxdomain.TaxRule) taxdomain.Response {
	return taxdomain.Response{
		ID:        rule.ID.String(),
		Code:      rule.Code,
		Name:      rule.Name,
		TaxMode:   rule.TaxMode,
		Rate:      rule.Rate.String(),
		IsEnabled: rule.IsEnabled,
		CreatedAt: rule.CreatedAt,
		UpdatedAt: rule.UpdatedAt,
	}
}

func normalizeTaxMode(value taxdomain.TaxMode) taxdomain.TaxMode {
	return taxdomain.TaxMode(strings.ToLower(strings.TrimSpace(string(value))))
}
