package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Method selects which bound of a slice is matched against an order.
type Method string

const (
	MethodByWeight         Method = "by_weight"
	MethodByPrice          Method = "by_price"
	MethodByWeightAndPrice Method = "by_weight_and_price"
)

func (m Method) Valid() bool {
	switch m {
	case MethodByWeight, MethodByPrice, MethodByWeightAndPrice:
		return true
	default:
		return false
	}
}

func (m Method) UsesWeight() bool {
	return m == MethodByWeight || m == MethodByWeightAndPrice
}

func (m Method) UsesPrice() bool {
	return m == MethodByPrice || m == MethodByWeightAndPrice
}

// Slice is one tier of an area's shipping rate table.
// WeightMax and PriceMax are inclusive ceilings; only the ones used by the
// configured method are guaranteed to be set.
type Slice struct {
	ID        snowflake.ID        `json:"id" gorm:"primaryKey"`
	AreaID    int64               `json:"area_id" gorm:"column:area_id;not null;index"`
	WeightMax decimal.NullDecimal `json:"weight_max" gorm:"column:weight_max;type:numeric(16,6)"`
	PriceMax  decimal.NullDecimal `json:"price_max" gorm:"column:price_max;type:numeric(16,6)"`
	Price     decimal.Decimal     `json:"price" gorm:"column:price;type:numeric(16,6);not null"`
	TaxRuleID *int64              `json:"tax_rule_id,omitempty" gorm:"column:tax_rule_id"`
	CreatedAt time.Time           `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time           `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Slice) TableName() string { return "custom_delivery_slices" }

// TableVersion counts committed writes to one area's slices. Cached copies of
// the table are only served while their version is current.
type TableVersion struct {
	AreaID  int64 `gorm:"column:area_id;primaryKey;autoIncrement:false"`
	Version int64 `gorm:"column:version;not null"`
}

func (TableVersion) TableName() string { return "custom_delivery_table_versions" }

// BoundField names the input field holding the bound matched under method.
// Combined methods have none.
func BoundField(method Method) (string, bool) {
	switch method {
	case MethodByWeight:
		return FieldWeightMax, true
	case MethodByPrice:
		return FieldPriceMax, true
	default:
		return "", false
	}
}

// UpperBound returns the ceiling matched under method. Combined methods have
// no single bound.
func (s Slice) UpperBound(method Method) (decimal.Decimal, bool) {
	switch method {
	case MethodByWeight:
		return s.WeightMax.Decimal, s.WeightMax.Valid
	case MethodByPrice:
		return s.PriceMax.Decimal, s.PriceMax.Valid
	default:
		return decimal.Zero, false
	}
}

// SliceView is the flat key/value projection handed to UI callers.
type SliceView map[string]any

func (s Slice) View() SliceView {
	view := SliceView{
		"Id":        s.ID.String(),
		"AreaId":    s.AreaID,
		"WeightMax": nil,
		"PriceMax":  nil,
		"Price":     s.Price.String(),
		"TaxRuleId": nil,
		"CreatedAt": s.CreatedAt,
		"UpdatedAt": s.UpdatedAt,
	}
	if s.WeightMax.Valid {
		view["WeightMax"] = s.WeightMax.Decimal.String()
	}
	if s.PriceMax.Valid {
		view["PriceMax"] = s.PriceMax.Decimal.String()
	}
	if s.TaxRuleID != nil {
		view["TaxRuleId"] = *s.TaxRuleID
	}
	return view
}
