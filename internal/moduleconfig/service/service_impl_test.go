package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/customdelivery/internal/clock"
	"github.com/smallbiznis/customdelivery/internal/config"
	"github.com/smallbiznis/customdelivery/internal/dbtest"
	moduleconfigdomain "github.com/smallbiznis/customdelivery/internal/moduleconfig/domain"
	"github.com/smallbiznis/customdelivery/internal/moduleconfig/repository"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T, defaults DefaultsSource) moduleconfigdomain.Service {
	t.Helper()
	return New(Params{
		DB:       dbtest.Open(t),
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		Repo:     repository.Provide(),
		Defaults: defaults,
	})
}

func TestGetFallsBackToDefaults(t *testing.T) {
	svc := newService(t, nil)
	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, slicedomain.MethodByWeight, cfg.Method)
	assert.Nil(t, cfg.TaxRuleID)

	holder := config.NewStaticDeliveryConfigHolder(config.DeliveryConfig{
		Method:      "by_price",
		TrackingURL: "https://track.example.com/%ID%",
		TaxRuleID:   5,
	})
	svc = newService(t, holder)
	cfg, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, slicedomain.MethodByPrice, cfg.Method)
	require.NotNil(t, cfg.TaxRuleID)
	assert.Equal(t, int64(5), *cfg.TaxRuleID)
	assert.Equal(t, "https://track.example.com/AB12", cfg.TrackingLink("AB12"))
}

func TestSaveOverridesDefaults(t *testing.T) {
	svc := newService(t, config.NewStaticDeliveryConfigHolder(config.DefaultDeliveryConfig()))
	ctx := context.Background()

	saved, err := svc.Save(ctx, moduleconfigdomain.SaveRequest{Method: " BY_PRICE ", TaxRuleID: 9, TrackingURL: "https://t/%ID%"})
	require.NoError(t, err)
	assert.Equal(t, slicedomain.MethodByPrice, saved.Method)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, moduleconfigdomain.SingletonID, got.ID)
	assert.Equal(t, slicedomain.MethodByPrice, got.Method)
	require.NotNil(t, got.TaxRuleID)
	assert.Equal(t, int64(9), *got.TaxRuleID)

	// Second save updates the singleton row.
	_, err = svc.Save(ctx, moduleconfigdomain.SaveRequest{Method: "by_weight_and_price"})
	require.NoError(t, err)
	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, slicedomain.MethodByWeightAndPrice, got.Method)
	assert.Nil(t, got.TaxRuleID)
	assert.Empty(t, got.TrackingLink("X"))
}

func TestSaveValidates(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Save(ctx, moduleconfigdomain.SaveRequest{Method: "by_volume"})
	assert.ErrorIs(t, err, moduleconfigdomain.ErrInvalidMethod)
	assert.ErrorIs(t, err, slicedomain.ErrInvalidMethod)

	_, err = svc.Save(ctx, moduleconfigdomain.SaveRequest{Method: "by_weight", TaxRuleID: -1})
	assert.ErrorIs(t, err, moduleconfigdomain.ErrInvalidTaxRule)
	assert.ErrorIs(t, err, slicedomain.ErrInvalidTaxRule)
}
