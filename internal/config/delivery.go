package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DeliveryConfig holds the module defaults used until an administrator saves
// a configuration.
type DeliveryConfig struct {
	Method      string `mapstructure:"method"`
	TrackingURL string `mapstructure:"trackingUrl"`
	TaxRuleID   int64  `mapstructure:"taxRuleId"`
}

func DefaultDeliveryConfig() DeliveryConfig {
	return DeliveryConfig{
		Method: "by_weight",
	}
}

type DeliveryConfigHolder struct {
	current atomic.Value // holds DeliveryConfig
}

// NewStaticDeliveryConfigHolder returns a holder that never reloads.
func NewStaticDeliveryConfigHolder(cfg DeliveryConfig) *DeliveryConfigHolder {
	holder := &DeliveryConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewDeliveryConfigHolder(log *zap.Logger) (*DeliveryConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("delivery")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/customdelivery")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CUSTOMDELIVERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDeliveryConfig()
	v.SetDefault("delivery.method", defaults.Method)
	v.SetDefault("delivery.trackingUrl", defaults.TrackingURL)
	v.SetDefault("delivery.taxRuleId", defaults.TaxRuleID)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg DeliveryConfig
	if err := v.UnmarshalKey("delivery", &cfg); err != nil {
		return nil, err
	}
	if err := validateDeliveryConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticDeliveryConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	log = log.Named("delivery.config")
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DeliveryConfig
		if err := v.UnmarshalKey("delivery", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateDeliveryConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *DeliveryConfigHolder) Get() DeliveryConfig {
	return h.current.Load().(DeliveryConfig)
}

func validateDeliveryConfig(cfg DeliveryConfig) error {
	switch strings.TrimSpace(cfg.Method) {
	case "by_weight", "by_price", "by_weight_and_price":
	default:
		return errors.New("delivery.method must be by_weight, by_price or by_weight_and_price")
	}
	if cfg.TaxRuleID < 0 {
		return errors.New("delivery.taxRuleId cannot be negative")
	}
	return nil
}
