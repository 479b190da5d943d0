package catalog

import (
	"fmt"
	"sort"

	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ModifierType selects how an attribute changes the price
type ModifierType string

const (
	// ModifierFixed adds a flat amount once per line
	ModifierFixed ModifierType = "fixed"
	// ModifierMultiplier scales the unit base price
	ModifierMultiplier ModifierType = "multiplier"
)

// PriceModifier is the pricing effect of choosing an attribute
type PriceModifier struct {
	Type       ModifierType     `json:"type"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Multiplier *decimal.Decimal `json:"multiplier,omitempty"`
}

// Validate checks that the modifier carries the value its type needs
func (m PriceModifier) Validate() error {
	switch m.Type {
	case ModifierFixed:
		if m.Amount == nil {
			return shared.NewValidationError("fixed pricing modifier requires amount")
		}
	case ModifierMultiplier:
		if m.Multiplier == nil || !m.Multiplier.IsPositive() {
			return shared.NewValidationError("multiplier pricing modifier requires a positive multiplier")
		}
	default:
		return shared.NewValidationError(fmt.Sprintf("unknown pricing modifier type %q", m.Type))
	}
	return nil
}

// AttributeDefinition describes one customizable option of a template
type AttributeDefinition struct {
	Label           string         `json:"label,omitempty"`
	Type            string         `json:"type,omitempty"`
	Options         []string       `json:"options,omitempty"`
	Required        bool           `json:"required,omitempty"`
	PricingModifier *PriceModifier `json:"pricingModifier,omitempty"`
}

// Attributes maps attribute keys to their definitions
type Attributes map[string]AttributeDefinition

// Validate checks every pricing modifier
func (a Attributes) Validate() error {
	for key, def := range a {
		if key == "" {
			return shared.NewValidationError("attribute key cannot be empty")
		}
		if def.PricingModifier != nil {
			if err := def.PricingModifier.Validate(); err != nil {
				return shared.NewValidationError(fmt.Sprintf("attribute %q: %s", key, err.Error()))
			}
		}
	}
	return nil
}

// ModifierResult is the effect of the customer's attribute choices on one line
type ModifierResult struct {
	UnitPrice  decimal.Decimal
	FixedTotal decimal.Decimal
	Notes      []string
}

// ApplyModifiers resolves the supplied custom attributes against the definitions.
// Multipliers scale basePrice first; fixed amounts are summed separately so the
// caller adds them once, after quantity multiplication. Keys are visited in sorted
// order so notes are deterministic.
func (a Attributes) ApplyModifiers(basePrice decimal.Decimal, custom map[string]any) ModifierResult {
	res := ModifierResult{UnitPrice: basePrice, FixedTotal: decimal.Zero}

	keys := make([]string, 0, len(custom))
	for k := range custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		def, ok := a[key]
		if !ok || def.PricingModifier == nil {
			continue
		}
		m := def.PricingModifier
		switch m.Type {
		case ModifierFixed:
			if m.Amount == nil {
				continue
			}
			res.FixedTotal = res.FixedTotal.Add(*m.Amount)
			res.Notes = append(res.Notes, fmt.Sprintf("%s: +%s", key, m.Amount.StringFixed(2)))
		case ModifierMultiplier:
			if m.Multiplier == nil {
				continue
			}
			res.UnitPrice = res.UnitPrice.Mul(*m.Multiplier)
			res.Notes = append(res.Notes, fmt.Sprintf("%s: x%s", key, m.Multiplier.String()))
		}
	}
	return res
}
