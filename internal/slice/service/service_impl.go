package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/customdelivery/internal/cache"
	"github.com/smallbiznis/customdelivery/internal/clock"
	moduleconfigdomain "github.com/smallbiznis/customdelivery/internal/moduleconfig/domain"
	"github.com/smallbiznis/customdelivery/internal/observability/correlation"
	"github.com/smallbiznis/customdelivery/internal/observability/metrics"
	"github.com/smallbiznis/customdelivery/internal/observability/tracing"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
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
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    slicedomain.Repository
	Config  moduleconfigdomain.Service
	Cache   cache.SliceTableCache `optional:"true"`
	Metrics *metrics.Metrics      `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    slicedomain.Repository
	config  moduleconfigdomain.Service
	cache   cache.SliceTableCache
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func New(p Params) slicedomain.Service {
	tables := p.Cache
	if tables == nil {
		tables = cache.NewNoop()
	}
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("slice.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		config:  p.Config,
		cache:   tables,
		metrics: p.Metrics,
		tracer:  otel.Tracer("customdelivery/slice"),
	}
}

func (s *Service) Save(ctx context.Context, req slicedomain.SaveRequest) (slicedomain.SliceView, error) {
	ctx, span := s.tracer.Start(ctx, "slice.save", trace.WithAttributes(
		attribute.Bool("slice.update", strings.TrimSpace(req.ID) != "" && strings.TrimSpace(req.ID) != "0"),
	))
	defer span.End()

	view, err := s.save(ctx, req)
	tracing.RecordError(span, err)
	return view, err
}

func (s *Service) save(ctx context.Context, req slicedomain.SaveRequest) (slicedomain.SliceView, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}

	draft, verrs := slicedomain.ValidateSave(cfg.Method, req)

	var sliceID snowflake.ID
	if raw := strings.TrimSpace(req.ID); raw != "" && raw != "0" {
		sliceID, err = parseID(raw)
		if err != nil || sliceID == 0 {
			sliceID = 0
			verrs.Add(slicedomain.FieldID, slicedomain.ErrNotFound)
		}
	}

	var (
		saved     slicedomain.Slice
		staleArea int64
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		now := s.clock.Now()

		if sliceID != 0 {
			existing, err := s.repo.FindByID(ctx, tx, sliceID)
			if err != nil {
				return err
			}
			if existing == nil {
				verrs.Add(slicedomain.FieldID, slicedomain.ErrNotFound)
			} else {
				saved = *existing
				staleArea = existing.AreaID
			}
		}
		if saved.ID == 0 {
			saved = slicedomain.Slice{ID: s.genID.Generate(), CreatedAt: now}
		}
		draft.Apply(cfg.Method, &saved)
		saved.UpdatedAt = now

		var before []slicedomain.Slice
		if draft.AreaID != 0 {
			before, err = s.repo.ListByArea(ctx, tx, draft.AreaID)
			if err != nil {
				return err
			}
			for _, field := range slicedomain.Conflicts(cfg.Method, saved, before) {
				if !hasField(verrs, field) {
					verrs.Add(field, slicedomain.ErrDuplicateBound)
				}
			}
		}

		if len(verrs) > 0 {
			return verrs
		}

		write := s.repo.Insert
		if staleArea != 0 {
			write = s.repo.Update
		}
		if err := write(ctx, tx, &saved); err != nil {
			return err
		}
		if err := s.checkTable(ctx, tx, cfg.Method, saved.AreaID, before); err != nil {
			return err
		}
		return s.bumpVersions(ctx, tx, saved.AreaID, staleArea)
	})
	if err != nil {
		var verr slicedomain.ValidationErrors
		switch {
		case errors.As(err, &verr):
			outcome := metrics.OutcomeRejected
			if verr.Is(slicedomain.ErrNotFound) {
				outcome = metrics.OutcomeNotFound
			}
			s.metrics.RecordSliceWrite(ctx, "save", outcome)
			s.log.Debug("slice rejected",
				zap.String("operation_id", correlation.OperationID(ctx)),
				zap.Strings("fields", verr.Fields()),
			)
			return nil, verr
		default:
			s.metrics.RecordSliceWrite(ctx, "save", metrics.OutcomeError)
			return nil, fmt.Errorf("save slice: %w", err)
		}
	}

	s.cache.Invalidate(ctx, saved.AreaID)
	if staleArea != 0 && staleArea != saved.AreaID {
		s.cache.Invalidate(ctx, staleArea)
	}
	s.metrics.RecordSliceWrite(ctx, "save", metrics.OutcomeSaved)
	s.log.Info("slice saved",
		zap.String("operation_id", correlation.OperationID(ctx)),
		zap.String("slice_id", saved.ID.String()),
		zap.Int64("area_id", saved.AreaID),
		zap.String("method", string(cfg.Method)),
		zap.Bool("update", staleArea != 0),
	)

	return saved.View(), nil
}

// checkTable re-reads the written area inside the transaction. A write that
// turns a valid table into a broken one, for instance by racing past the
// conflict check, is rolled back.
func (s *Service) checkTable(ctx context.Context, tx *gorm.DB, method slicedomain.Method, areaID int64, before []slicedomain.Slice) error {
	field, ok := slicedomain.BoundField(method)
	if !ok {
		return nil
	}
	if slicedomain.NewTable(areaID, method, before).Validate() != nil {
		return nil
	}
	current, err := s.repo.ListByArea(ctx, tx, areaID)
	if err != nil {
		return err
	}
	if err := slicedomain.NewTable(areaID, method, current).Validate(); err != nil {
		return slicedomain.ValidationErrors{{Field: field, Err: err}}
	}
	return nil
}

func (s *Service) bumpVersions(ctx context.Context, tx *gorm.DB, areaIDs ...int64) error {
	seen := make(map[int64]bool, len(areaIDs))
	for _, areaID := range areaIDs {
		if areaID == 0 || seen[areaID] {
			continue
		}
		seen[areaID] = true
		if err := s.repo.BumpVersion(ctx, tx, areaID); err != nil {
			return fmt.Errorf("bump table version: %w", err)
		}
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "slice.delete")
	defer span.End()

	err := s.remove(ctx, id)
	tracing.RecordError(span, err)
	return err
}

func (s *Service) remove(ctx context.Context, id string) error {
	sliceID, err := parseID(id)
	if err != nil || sliceID == 0 {
		s.metrics.RecordSliceWrite(ctx, "delete", metrics.OutcomeNotFound)
		return slicedomain.ErrNotFound
	}

	var areaID int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByID(ctx, tx, sliceID)
		if err != nil {
			return err
		}
		if existing == nil {
			return slicedomain.ErrNotFound
		}
		areaID = existing.AreaID

		affected, err := s.repo.Delete(ctx, tx, sliceID)
		if err != nil {
			return err
		}
		if affected != 1 {
			return slicedomain.ErrNotFound
		}
		return s.bumpVersions(ctx, tx, areaID)
	})
	if err != nil {
		if errors.Is(err, slicedomain.ErrNotFound) {
			s.metrics.RecordSliceWrite(ctx, "delete", metrics.OutcomeNotFound)
			return err
		}
		s.metrics.RecordSliceWrite(ctx, "delete", metrics.OutcomeError)
		return fmt.Errorf("delete slice: %w", err)
	}

	s.cache.Invalidate(ctx, areaID)
	s.metrics.RecordSliceWrite(ctx, "delete", metrics.OutcomeDeleted)
	s.log.Info("slice deleted",
		zap.String("operation_id", correlation.OperationID(ctx)),
		zap.String("slice_id", sliceID.String()),
		zap.Int64("area_id", areaID),
	)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (slicedomain.SliceView, error) {
	sliceID, err := parseID(id)
	if err != nil || sliceID == 0 {
		return nil, slicedomain.ErrNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, sliceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, slicedomain.ErrNotFound
	}
	return item.View(), nil
}

// List returns the area's slices ordered by the configured method's bound.
// Slices without that bound come last, in creation order.
func (s *Service) List(ctx context.Context, areaID int64) ([]slicedomain.SliceView, error) {
	if areaID <= 0 {
		return nil, slicedomain.ErrInvalidArea
	}

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByArea(ctx, s.db, areaID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, okA := items[i].UpperBound(cfg.Method)
		b, okB := items[j].UpperBound(cfg.Method)
		if okA != okB {
			return okA
		}
		return okA && a.LessThan(b)
	})

	views := make([]slicedomain.SliceView, 0, len(items))
	for i := range items {
		views = append(views, items[i].View())
	}
	return views, nil
}

func hasField(errs slicedomain.ValidationErrors, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
