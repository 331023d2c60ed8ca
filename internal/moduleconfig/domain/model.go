package domain

import (
	"strings"
	"time"

	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
)

// SingletonID is the primary key of the only configuration row.
const SingletonID int64 = 1

// TrackingPlaceholder is replaced by the shipment's tracking number.
const TrackingPlaceholder = "%ID%"

// Config is the module-wide configuration. It is loaded once per operation
// and passed by value.
type Config struct {
	ID          int64              `gorm:"primaryKey"`
	TrackingURL string             `gorm:"column:tracking_url;type:text;not null;default:''"`
	Method      slicedomain.Method `gorm:"column:method;type:text;not null"`
	TaxRuleID   *int64             `gorm:"column:tax_rule_id"`
	UpdatedAt   time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Config) TableName() string { return "custom_delivery_configs" }

// DefaultTaxRuleID returns the module default tax rule, if any.
func (c Config) DefaultTaxRuleID() (int64, bool) {
	if c.TaxRuleID == nil || *c.TaxRuleID <= 0 {
		return 0, false
	}
	return *c.TaxRuleID, true
}

// TrackingLink renders the tracking URL for a shipment.
func (c Config) TrackingLink(trackingNumber string) string {
	if c.TrackingURL == "" {
		return ""
	}
	return strings.ReplaceAll(c.TrackingURL, TrackingPlaceholder, trackingNumber)
}
