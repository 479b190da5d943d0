package pricing

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// LineItem is a requested template with its quantity and the customer's attribute choices
type LineItem struct {
	Template         *catalog.Template
	Quantity         decimal.Decimal
	CustomAttributes map[string]any
}

// ItemBreakdown is the priced form of a LineItem
type ItemBreakdown struct {
	Type             catalog.TemplateKind `json:"type"`
	TemplateID       uuid.UUID            `json:"templateId"`
	TemplateName     string               `json:"templateName"`
	Category         string               `json:"category"`
	Quantity         decimal.Decimal      `json:"quantity"`
	BasePrice        decimal.Decimal      `json:"basePrice"`
	UnitPrice        decimal.Decimal      `json:"unitPrice"`
	CustomAttributes map[string]any       `json:"customAttributes,omitempty"`
	Subtotal         decimal.Decimal      `json:"subtotal"`
	Total            decimal.Decimal      `json:"total"`
	AppliedModifiers []string             `json:"appliedModifiers,omitempty"`
}

// PriceLine prices one line: multipliers scale the unit price, fixed
// modifiers are added once after quantity multiplication.
func PriceLine(item LineItem) ItemBreakdown {
	t := item.Template
	mods := t.Attributes.ApplyModifiers(t.BasePrice, item.CustomAttributes)
	return ItemBreakdown{
		Type:             t.Kind,
		TemplateID:       t.ID,
		TemplateName:     t.Name,
		Category:         t.Category,
		Quantity:         item.Quantity,
		BasePrice:        t.BasePrice,
		UnitPrice:        mods.UnitPrice,
		CustomAttributes: item.CustomAttributes,
		Subtotal:         t.BasePrice.Mul(item.Quantity),
		Total:            mods.UnitPrice.Mul(item.Quantity).Add(mods.FixedTotal),
		AppliedModifiers: mods.Notes,
	}
}

// Adjustment is one applied rule. Amount is always a positive magnitude; whether
// it is a discount or a surcharge follows from the list it is in.
type Adjustment struct {
	RuleID      uuid.UUID       `json:"ruleId"`
	Name        string          `json:"name"`
	Type        RuleType        `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// SkippedRule records a rule that failed to evaluate
type SkippedRule struct {
	RuleID   uuid.UUID
	Name     string
	RuleType RuleType
	Err      error
}

// PriceCalculation is the result of pricing a set of line items
type PriceCalculation struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discounts  []Adjustment    `json:"discounts"`
	Surcharges []Adjustment    `json:"surcharges"`
	Items      []ItemBreakdown `json:"items"`
	Total      decimal.Decimal `json:"total"`

	Skipped              []SkippedRule `json:"-"`
	IgnoredDiscountCodes []string      `json:"-"`
}

// TotalDiscounts sums the discount magnitudes
func (c PriceCalculation) TotalDiscounts() decimal.Decimal {
	return sumAmounts(c.Discounts)
}

// TotalSurcharges sums the surcharges
func (c PriceCalculation) TotalSurcharges() decimal.Decimal {
	return sumAmounts(c.Surcharges)
}

func sumAmounts(adjs []Adjustment) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range adjs {
		sum = sum.Add(a.Amount)
	}
	return sum
}

// Input is everything a calculation depends on
type Input struct {
	Items         []LineItem
	Rules         []*Rule
	CustomerID    *uuid.UUID
	OrderDate     time.Time
	DiscountCodes []string
}

// ErrNoItems is returned when a calculation is requested without line items
var ErrNoItems = errors.New("at least one item is required")

// Engine evaluates pricing rules. It holds no per-calculation state and is
// safe for concurrent use.
type Engine struct {
	registry *Registry
	now      func() time.Time
}

// NewEngine creates an engine using the given adjuster registry
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry, now: time.Now}
}

// Calculate prices the items and folds the rules over the result in ascending
// priority. Rules that fail are recorded in Skipped and do not affect the total.
func (e *Engine) Calculate(in Input) (PriceCalculation, error) {
	if len(in.Items) == 0 {
		return PriceCalculation{}, ErrNoItems
	}

	calc := PriceCalculation{
		Subtotal:   decimal.Zero,
		Discounts:  []Adjustment{},
		Surcharges: []Adjustment{},
		Items:      make([]ItemBreakdown, 0, len(in.Items)),
	}
	totalQty := decimal.Zero
	for _, item := range in.Items {
		if item.Template == nil {
			return PriceCalculation{}, fmt.Errorf("line item without template")
		}
		line := PriceLine(item)
		calc.Items = append(calc.Items, line)
		calc.Subtotal = calc.Subtotal.Add(line.Total)
		totalQty = totalQty.Add(line.Quantity)
	}

	now := e.now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	ctx := EvaluationContext{
		Subtotal:      calc.Subtotal,
		TotalQuantity: totalQty,
		OrderDate:     orderDate,
		CustomerID:    in.CustomerID,
		CalculatedAt:  now,
	}

	for _, r := range orderRules(in.Rules) {
		calc = e.applyRule(calc, r, ctx)
	}
	calc = applyDiscountCodes(calc, in.DiscountCodes)

	total := calc.Subtotal.Sub(calc.TotalDiscounts()).Add(calc.TotalSurcharges())
	if total.IsNegative() {
		total = decimal.Zero
	}
	calc.Total = total
	return calc, nil
}

// orderRules returns the active rules sorted by priority, keeping input order for ties
func orderRules(rules []*Rule) []*Rule {
	out := make([]*Rule, 0, len(rules))
	for _, r := range rules {
		if r != nil && r.IsActive {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b *Rule) int { return cmp.Compare(a.Priority, b.Priority) })
	return out
}

// applyRule returns calc with r's adjustment appended, or with r recorded as
// skipped. The input value is not modified.
func (e *Engine) applyRule(calc PriceCalculation, r *Rule, ctx EvaluationContext) PriceCalculation {
	skip := func(err error) PriceCalculation {
		calc.Skipped = append(slices.Clip(calc.Skipped), SkippedRule{RuleID: r.ID, Name: r.Name, RuleType: r.RuleType, Err: err})
		return calc
	}

	if err := r.LoadError(); err != nil {
		return skip(err)
	}
	if !r.Conditions.Matches(ctx) {
		return calc
	}
	adj, err := e.registry.Get(r.RuleType)
	if err != nil {
		return skip(err)
	}
	amount, desc, err := adj.Adjust(r.Calculation, ctx)
	if err != nil {
		return skip(err)
	}
	amount = amount.Round(2)
	if amount.IsZero() {
		return calc
	}
	if desc == "" {
		desc = adj.Description()
	}

	a := Adjustment{
		RuleID:      r.ID,
		Name:        r.Name,
		Type:        r.RuleType,
		Amount:      amount.Abs(),
		Description: desc,
	}
	if amount.IsNegative() {
		calc.Discounts = append(slices.Clip(calc.Discounts), a)
	} else {
		calc.Surcharges = append(slices.Clip(calc.Surcharges), a)
	}
	return calc
}

// applyDiscountCodes is an extension point; codes are currently recorded and ignored
func applyDiscountCodes(calc PriceCalculation, codes []string) PriceCalculation {
	if len(codes) == 0 {
		return calc
	}
	calc.IgnoredDiscountCodes = append(slices.Clip(calc.IgnoredDiscountCodes), codes...)
	return calc
}
