package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrMissingParameter is returned when a stored calculation lacks a key its rule type needs
var ErrMissingParameter = errors.New("missing calculation parameter")

// Adjuster computes the signed monetary adjustment of one rule type.
// Negative results are discounts, positive results surcharges.
type Adjuster interface {
	RuleType() RuleType
	Description() string
	// AllowedKeys lists every calculation key the rule type reads
	AllowedKeys() []string
	// RequiredKeys lists groups of alternatives; each group needs at least one key set
	RequiredKeys() [][]string
	Adjust(calc Calculation, ctx EvaluationContext) (decimal.Decimal, string, error)
}

// baseAdjuster provides the descriptive half of an Adjuster
type baseAdjuster struct {
	ruleType    RuleType
	description string
	allowed     []string
	required    [][]string
}

func (b baseAdjuster) RuleType() RuleType       { return b.ruleType }
func (b baseAdjuster) Description() string      { return b.description }
func (b baseAdjuster) AllowedKeys() []string    { return b.allowed }
func (b baseAdjuster) RequiredKeys() [][]string { return b.required }

func missing(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingParameter, key)
}

// PercentageDiscount subtracts a percentage of the subtotal
type PercentageDiscount struct{ baseAdjuster }

func NewPercentageDiscount() PercentageDiscount {
	return PercentageDiscount{baseAdjuster{
		ruleType:    RuleTypePercentageDiscount,
		description: "Percentage of the subtotal off",
		allowed:     []string{KeyPercentage},
		required:    [][]string{{KeyPercentage}},
	}}
}

func (a PercentageDiscount) Adjust(calc Calculation, ctx EvaluationContext) (decimal.Decimal, string, error) {
	if calc.Percentage == nil {
		return decimal.Zero, "", missing(KeyPercentage)
	}
	amount := ctx.Subtotal.Mul(*calc.Percentage).Div(hundred).Neg()
	return amount, fmt.Sprintf("%s%% discount", calc.Percentage.String()), nil
}

// FixedDiscount subtracts a flat amount
type FixedDiscount struct{ baseAdjuster }

func NewFixedDiscount() FixedDiscount {
	return FixedDiscount{baseAdjuster{
		ruleType:    RuleTypeFixedDiscount,
		description: "Flat amount off",
		allowed:     []string{KeyAmount},
		required:    [][]string{{KeyAmount}},
	}}
}

func (a FixedDiscount) Adjust(calc Calculation, _ EvaluationContext) (decimal.Decimal, string, error) {
	if calc.Amount == nil {
		return decimal.Zero, "", missing(KeyAmount)
	}
	return calc.Amount.Neg(), fmt.Sprintf("%s fixed discount", calc.Amount.StringFixed(2)), nil
}

// QuantityDiscount subtracts a per-item amount once the quantity threshold is met
type QuantityDiscount struct{ baseAdjuster }

func NewQuantityDiscount() QuantityDiscount {
	return QuantityDiscount{baseAdjuster{
		ruleType:    RuleTypeQuantityDiscount,
		description: "Per-item discount from a minimum quantity",
		allowed:     []string{KeyMinQuantity, KeyDiscountPerItem},
		required:    [][]string{{KeyDiscountPerItem}},
	}}
}

func (a QuantityDiscount) Adjust(calc Calculation, ctx EvaluationContext) (decimal.Decimal, string, error) {
	if calc.DiscountPerItem == nil {
		return decimal.Zero, "", missing(KeyDiscountPerItem)
	}
	minQty := decimal.NewFromInt(1)
	if calc.MinQuantity != nil {
		minQty = *calc.MinQuantity
	}
	if ctx.TotalQuantity.LessThan(minQty) {
		return decimal.Zero, "", nil
	}
	amount := ctx.TotalQuantity.Mul(*calc.DiscountPerItem).Neg()
	return amount, fmt.Sprintf("%s off per item for %s items", calc.DiscountPerItem.StringFixed(2), ctx.TotalQuantity.String()), nil
}

// BulkPricing reprices the whole quantity at a new unit price once the
// threshold is met. The delta may be positive when the new price is higher.
type BulkPricing struct{ baseAdjuster }

func NewBulkPricing() BulkPricing {
	return BulkPricing{baseAdjuster{
		ruleType:    RuleTypeBulkPricing,
		description: "Bulk unit price from a minimum quantity",
		allowed:     []string{KeyMinQuantity, KeyNewUnitPrice},
		required:    [][]string{{KeyMinQuantity}, {KeyNewUnitPrice}},
	}}
}

func (a BulkPricing) Adjust(calc Calculation, ctx EvaluationContext) (decimal.Decimal, string, error) {
	if calc.MinQuantity == nil {
		return decimal.Zero, "", missing(KeyMinQuantity)
	}
	if calc.NewUnitPrice == nil {
		return decimal.Zero, "", missing(KeyNewUnitPrice)
	}
	if ctx.TotalQuantity.LessThan(*calc.MinQuantity) {
		return decimal.Zero, "", nil
	}
	bulkTotal := ctx.TotalQuantity.Mul(*calc.NewUnitPrice)
	return bulkTotal.Sub(ctx.Subtotal), fmt.Sprintf("Bulk price %s per unit", calc.NewUnitPrice.StringFixed(2)), nil
}

// ExpressSurcharge adds a multiple of the subtotal or a flat fee
type ExpressSurcharge struct{ baseAdjuster }

func NewExpressSurcharge() ExpressSurcharge {
	return ExpressSurcharge{baseAdjuster{
		ruleType:    RuleTypeExpressSurcharge,
		description: "Express service surcharge",
		allowed:     []string{KeyExpressMultiplier, KeyExpressAmount},
		required:    [][]string{{KeyExpressMultiplier, KeyExpressAmount}},
	}}
}

func (a ExpressSurcharge) Adjust(calc Calculation, ctx EvaluationContext) (decimal.Decimal, string, error) {
	switch {
	case calc.ExpressMultiplier != nil:
		amount := ctx.Subtotal.Mul(calc.ExpressMultiplier.Sub(decimal.NewFromInt(1)))
		return amount, fmt.Sprintf("Express service (x%s)", calc.ExpressMultiplier.String()), nil
	case calc.ExpressAmount != nil:
		return *calc.ExpressAmount, fmt.Sprintf("Express service (+%s)", calc.ExpressAmount.StringFixed(2)), nil
	default:
		return decimal.Zero, "", missing(KeyExpressMultiplier)
	}
}

// LoyalCustomerDiscount subtracts a percentage of the subtotal. It does not
// look at the customer's order history.
type LoyalCustomerDiscount struct{ baseAdjuster }

func NewLoyalCustomerDiscount() LoyalCustomerDiscount {
	return LoyalCustomerDiscount{baseAdjuster{
		ruleType:    RuleTypeLoyalCustomerDiscount,
		description: "Loyal customer discount",
		allowed:     []string{KeyDiscountPercentage},
		required:    [][]string{{KeyDiscountPercentage}},
	}}
}

func (a LoyalCustomerDiscount) Adjust(calc Calculation, ctx EvaluationContext) (decimal.Decimal, string, error) {
	if calc.DiscountPercentage == nil {
		return decimal.Zero, "", missing(KeyDiscountPercentage)
	}
	amount := ctx.Subtotal.Mul(*calc.DiscountPercentage).Div(hundred).Neg()
	return amount, fmt.Sprintf("Loyal customer %s%% discount", calc.DiscountPercentage.String()), nil
}

// SeasonalAdjustment applies the first season whose months contain the month
// of the calculation
type SeasonalAdjustment struct{ baseAdjuster }

func NewSeasonalAdjustment() SeasonalAdjustment {
	return SeasonalAdjustment{baseAdjuster{
		ruleType:    RuleTypeSeasonalAdjustment,
		description: "Seasonal price adjustment",
		allowed:     []string{KeySeasonal},
		required:    [][]string{{KeySeasonal}},
	}}
}

func (a SeasonalAdjustment) Adjust(calc Calculation, ctx EvaluationContext) (decimal.Decimal, string, error) {
	if len(calc.Seasonal) == 0 {
		return decimal.Zero, "", missing(KeySeasonal)
	}
	month := ctx.CalculatedAt.Month()
	for _, e := range calc.Seasonal {
		if !e.Season.Contains(month) {
			continue
		}
		switch e.Type {
		case AdjustPercentage:
			return ctx.Subtotal.Mul(e.Value).Div(hundred), fmt.Sprintf("%s season %s%%", e.Season, e.Value.String()), nil
		case AdjustFixed:
			return e.Value, fmt.Sprintf("%s season %s", e.Season, e.Value.StringFixed(2)), nil
		default:
			return decimal.Zero, "", fmt.Errorf("season %q has unknown adjustment type %q", e.Season, e.Type)
		}
	}
	return decimal.Zero, "", nil
}

// DefaultAdjusters returns one adjuster per known rule type
func DefaultAdjusters() []Adjuster {
	return []Adjuster{
		NewPercentageDiscount(),
		NewFixedDiscount(),
		NewQuantityDiscount(),
		NewBulkPricing(),
		NewExpressSurcharge(),
		NewLoyalCustomerDiscount(),
		NewSeasonalAdjustment(),
	}
}
