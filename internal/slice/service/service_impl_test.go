package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/customdelivery/internal/cache"
	"github.com/smallbiznis/customdelivery/internal/clock"
	"github.com/smallbiznis/customdelivery/internal/dbtest"
	moduleconfigdomain "github.com/smallbiznis/customdelivery/internal/moduleconfig/domain"
	"github.com/smallbiznis/customdelivery/internal/observability/metrics"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	"github.com/smallbiznis/customdelivery/internal/slice/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubConfig struct {
	cfg moduleconfigdomain.Config
}

func (s *stubConfig) Get(context.Context) (moduleconfigdomain.Config, error) {
	return s.cfg, nil
}

func (s *stubConfig) Save(_ context.Context, req moduleconfigdomain.SaveRequest) (moduleconfigdomain.Config, error) {
	s.cfg.Method = slicedomain.Method(req.Method)
	return s.cfg, nil
}

type fixture struct {
	svc    slicedomain.Service
	db     *gorm.DB
	config *stubConfig
	tables cache.SliceTableCache
}

func setup(t *testing.T, method slicedomain.Method) fixture {
	t.Helper()

	db := dbtest.Open(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := &stubConfig{cfg: moduleconfigdomain.Config{ID: moduleconfigdomain.SingletonID, Method: method}}
	tables := cache.NewMemory(time.Minute)
	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		Repo:    repository.Provide(),
		Config:  cfg,
		Cache:   tables,
		Metrics: metrics.NewNoop(),
	})
	return fixture{svc: svc, db: db, config: cfg, tables: tables}
}

func countSlices(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	n, err := repository.Provide().Count(context.Background(), db)
	require.NoError(t, err)
	return n
}

func TestSaveCreatesSlice(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	view, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10,5", TaxRuleID: "3"})
	require.NoError(t, err)

	assert.NotEmpty(t, view["Id"])
	assert.Equal(t, int64(7), view["AreaId"])
	assert.Equal(t, "5", view["WeightMax"])
	assert.Nil(t, view["PriceMax"])
	assert.Equal(t, "10.5", view["Price"])
	assert.Equal(t, int64(3), view["TaxRuleId"])

	got, err := f.svc.Get(ctx, view["Id"].(string))
	require.NoError(t, err)
	assert.Equal(t, "5", got["WeightMax"])
	assert.Equal(t, "10.5", got["Price"])
}

func TestSaveReportsAllFieldErrors(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)

	_, err := f.svc.Save(context.Background(), slicedomain.SaveRequest{AreaID: "0", WeightMax: "5", Price: "abc"})
	require.Error(t, err)

	var verrs slicedomain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.ErrorIs(t, err, slicedomain.ErrInvalidArea)
	assert.ErrorIs(t, err, slicedomain.ErrInvalidPrice)
	assert.Zero(t, countSlices(t, f.db))
}

func TestSaveRejectsDuplicateBound(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	_, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10"})
	require.NoError(t, err)

	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5,0", Price: "12"})
	require.Error(t, err)
	assert.ErrorIs(t, err, slicedomain.ErrDuplicateBound)

	var verrs slicedomain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{slicedomain.FieldWeightMax}, verrs.Fields())

	// Same bound in another area is a separate table.
	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "8", WeightMax: "5", Price: "12"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), countSlices(t, f.db))
}

func TestSaveRejectsBoundTheColumnWouldRound(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	_, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10"})
	require.NoError(t, err)

	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5.0000001", Price: "12"})
	assert.ErrorIs(t, err, slicedomain.ErrInvalidNumber)
	assert.Equal(t, int64(1), countSlices(t, f.db))
}

func TestSaveUpdatesInPlace(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	created, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10"})
	require.NoError(t, err)
	id := created["Id"].(string)

	// Re-saving the same bound on the same slice is not a duplicate.
	updated, err := f.svc.Save(ctx, slicedomain.SaveRequest{ID: id, AreaID: "7", WeightMax: "5", Price: "11"})
	require.NoError(t, err)
	assert.Equal(t, id, updated["Id"])
	assert.Equal(t, "11", updated["Price"])
	assert.Equal(t, int64(1), countSlices(t, f.db))

	// Switching to by_price keeps the stored weight bound.
	f.config.cfg.Method = slicedomain.MethodByPrice
	updated, err = f.svc.Save(ctx, slicedomain.SaveRequest{ID: id, AreaID: "7", PriceMax: "100", Price: "11"})
	require.NoError(t, err)
	assert.Equal(t, "5", updated["WeightMax"])
	assert.Equal(t, "100", updated["PriceMax"])
}

func TestSaveUnknownIDIsNotFound(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	_, err := f.svc.Save(ctx, slicedomain.SaveRequest{ID: "123456", AreaID: "7", WeightMax: "5", Price: "10"})
	assert.ErrorIs(t, err, slicedomain.ErrNotFound)

	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{ID: "not-an-id", AreaID: "7", WeightMax: "5", Price: "10"})
	assert.ErrorIs(t, err, slicedomain.ErrNotFound)
	assert.Zero(t, countSlices(t, f.db))
}

func TestSaveUnknownIDKeepsFieldErrors(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	for _, id := range []string{"123456", "not-an-id"} {
		_, err := f.svc.Save(ctx, slicedomain.SaveRequest{ID: id, AreaID: "0", WeightMax: "5", Price: "abc"})

		var verrs slicedomain.ValidationErrors
		require.ErrorAs(t, err, &verrs, "id %q", id)
		assert.ElementsMatch(t,
			[]string{slicedomain.FieldID, slicedomain.FieldArea, slicedomain.FieldPrice},
			verrs.Fields(), "id %q", id)
		assert.ErrorIs(t, err, slicedomain.ErrNotFound)
		assert.ErrorIs(t, err, slicedomain.ErrInvalidArea)
	}
	assert.Zero(t, countSlices(t, f.db))
}

func TestSaveCombinedMethod(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeightAndPrice)
	ctx := context.Background()

	_, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10"})
	assert.ErrorIs(t, err, slicedomain.ErrInvalidNumber)

	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", PriceMax: "50", Price: "10"})
	require.NoError(t, err)

	// One matching bound alone is not the same tier.
	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", PriceMax: "80", Price: "12"})
	require.NoError(t, err)

	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", PriceMax: "50", Price: "14"})
	assert.ErrorIs(t, err, slicedomain.ErrDuplicateBound)
	assert.Equal(t, int64(2), countSlices(t, f.db))
}

func TestSaveInvalidatesCachedTable(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	f.tables.Set(ctx, 7, cache.Table{Slices: []slicedomain.Slice{{ID: 1, AreaID: 7}}})

	_, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10"})
	require.NoError(t, err)

	_, ok := f.tables.Get(ctx, 7)
	assert.False(t, ok)
}

func TestWritesBumpTableVersion(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()
	repo := repository.Provide()

	version := func(areaID int64) int64 {
		t.Helper()
		v, err := repo.Version(ctx, f.db, areaID)
		require.NoError(t, err)
		return v
	}

	created, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), version(7))

	// Moving a slice changes both tables.
	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{ID: created["Id"].(string), AreaID: "8", WeightMax: "5", Price: "10"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), version(7))
	assert.Equal(t, int64(1), version(8))

	// Rejected writes leave it alone.
	_, err = f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "8", WeightMax: "5", Price: "12"})
	require.Error(t, err)
	assert.Equal(t, int64(1), version(8))

	require.NoError(t, f.svc.Delete(ctx, created["Id"].(string)))
	assert.Equal(t, int64(2), version(8))
}

// blindRepo hides the area's rows from the first table read, as if a
// concurrent writer committed right after it.
type blindRepo struct {
	slicedomain.Repository
	reads int
}

func (r *blindRepo) ListByArea(ctx context.Context, db *gorm.DB, areaID int64) ([]slicedomain.Slice, error) {
	r.reads++
	if r.reads == 1 {
		return nil, nil
	}
	return r.Repository.ListByArea(ctx, db, areaID)
}

func TestSaveRollsBackWriteThatBreaksTable(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	_, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10"})
	require.NoError(t, err)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	racing := New(Params{
		DB:     f.db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
		Repo:   &blindRepo{Repository: repository.Provide()},
		Config: f.config,
	})

	_, err = racing.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "12"})
	require.Error(t, err)
	assert.ErrorIs(t, err, slicedomain.ErrDuplicateBound)

	var verrs slicedomain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{slicedomain.FieldWeightMax}, verrs.Fields())
	assert.Equal(t, int64(1), countSlices(t, f.db))
}

func TestDelete(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	created, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: "5", Price: "10"})
	require.NoError(t, err)

	for _, id := range []string{"0", "", "abc", "987654321"} {
		assert.ErrorIs(t, f.svc.Delete(ctx, id), slicedomain.ErrNotFound, "id %q", id)
	}
	assert.Equal(t, int64(1), countSlices(t, f.db))

	require.NoError(t, f.svc.Delete(ctx, created["Id"].(string)))
	assert.Zero(t, countSlices(t, f.db))

	assert.ErrorIs(t, f.svc.Delete(ctx, created["Id"].(string)), slicedomain.ErrNotFound)
	_, err = f.svc.Get(ctx, created["Id"].(string))
	assert.ErrorIs(t, err, slicedomain.ErrNotFound)
}

func TestListOrdersByMethodBound(t *testing.T) {
	f := setup(t, slicedomain.MethodByWeight)
	ctx := context.Background()

	for _, bound := range []string{"10", "2.5", "5"} {
		_, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "7", WeightMax: bound, Price: "1"})
		require.NoError(t, err)
	}
	_, err := f.svc.Save(ctx, slicedomain.SaveRequest{AreaID: "9", WeightMax: "1", Price: "1"})
	require.NoError(t, err)

	views, err := f.svc.List(ctx, 7)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "2.5", views[0]["WeightMax"])
	assert.Equal(t, "5", views[1]["WeightMax"])
	assert.Equal(t, "10", views[2]["WeightMax"])

	_, err = f.svc.List(ctx, 0)
	assert.ErrorIs(t, err, slicedomain.ErrInvalidArea)
}
