package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TaxMode represents how tax is applied to a shipping charge.
type TaxMode string

const (
	TaxModeExclusive TaxMode = "exclusive" // charge + tax
	TaxModeInclusive TaxMode = "inclusive" // charge already includes tax
)

// TaxRule is a tax policy that slices and the module configuration refer to
// by id.
type TaxRule struct {
	ID        snowflake.ID    `gorm:"primaryKey"`
	Code      string          `gorm:"type:text;not null;uniqueIndex"`
	Name      string          `gorm:"type:text;not null"`
	TaxMode   TaxMode         `gorm:"column:tax_mode;type:text;not null"`
	Rate      decimal.Decimal `gorm:"type:numeric(6,4);not null"` // fraction, 0.2000 for 20%
	IsEnabled bool            `gorm:"column:is_enabled;not null;default:true"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TaxRule) TableName() string { return "tax_rules" }

func (t *TaxRule) Validate() error {
	if t.Code == "" {
		return ErrInvalidTaxCode
	}
	if t.Name == "" {
		return ErrInvalidName
	}
	if t.TaxMode != TaxModeExclusive && t.TaxMode != TaxModeInclusive {
		return ErrInvalidTaxMode
	}
	if t.Rate.IsNegative() || t.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidTaxRate
	}
	return nil
}

// TaxAmount is the tax computed for one charge.
type TaxAmount struct {
	RuleID  int64           `json:"rule_id,omitempty"`
	TaxMode TaxMode         `json:"tax_mode,omitempty"`
	Rate    decimal.Decimal `json:"rate"`
	Tax     decimal.Decimal `json:"tax"`
	Total   decimal.Decimal `json:"total"`
}
