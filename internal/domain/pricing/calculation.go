package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Calculation holds the parameters a rule type computes its adjustment from.
// Which keys are recognized depends on the rule type; see Adjuster.
type Calculation struct {
	Percentage         *decimal.Decimal `json:"percentage,omitempty"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	MinQuantity        *decimal.Decimal `json:"minQuantity,omitempty"`
	DiscountPerItem    *decimal.Decimal `json:"discountPerItem,omitempty"`
	NewUnitPrice       *decimal.Decimal `json:"newUnitPrice,omitempty"`
	ExpressMultiplier  *decimal.Decimal `json:"expressMultiplier,omitempty"`
	ExpressAmount      *decimal.Decimal `json:"expressAmount,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
	Seasonal           SeasonalSchedule `json:"seasonal,omitempty"`
}

// Calculation keys as they appear in JSON
const (
	KeyPercentage         = "percentage"
	KeyAmount             = "amount"
	KeyMinQuantity        = "minQuantity"
	KeyDiscountPerItem    = "discountPerItem"
	KeyNewUnitPrice       = "newUnitPrice"
	KeyExpressMultiplier  = "expressMultiplier"
	KeyExpressAmount      = "expressAmount"
	KeyDiscountPercentage = "discountPercentage"
	KeySeasonal           = "seasonal"
)

// ParseCalculation decodes a calculation, rejecting unrecognized keys
func ParseCalculation(raw []byte) (Calculation, error) {
	var c Calculation
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return c, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Calculation{}, shared.NewValidationError("invalid calculation: " + err.Error())
	}
	return c, nil
}

// Keys returns the JSON names of the keys that are set
func (c Calculation) Keys() []string {
	var keys []string
	add := func(set bool, key string) {
		if set {
			keys = append(keys, key)
		}
	}
	add(c.Percentage != nil, KeyPercentage)
	add(c.Amount != nil, KeyAmount)
	add(c.MinQuantity != nil, KeyMinQuantity)
	add(c.DiscountPerItem != nil, KeyDiscountPerItem)
	add(c.NewUnitPrice != nil, KeyNewUnitPrice)
	add(c.ExpressMultiplier != nil, KeyExpressMultiplier)
	add(c.ExpressAmount != nil, KeyExpressAmount)
	add(c.DiscountPercentage != nil, KeyDiscountPercentage)
	add(len(c.Seasonal) > 0, KeySeasonal)
	return keys
}

// AdjustmentKind says whether a seasonal value is a percentage of the subtotal or a flat amount
type AdjustmentKind string

const (
	AdjustPercentage AdjustmentKind = "percentage"
	AdjustFixed      AdjustmentKind = "fixed"
)

// SeasonalEntry is one season's adjustment
type SeasonalEntry struct {
	Season Season
	Type   AdjustmentKind
	Value  decimal.Decimal
}

type seasonalValue struct {
	Type  AdjustmentKind  `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// SeasonalSchedule is an ordered season → adjustment map. JSON object key
// order is preserved because the first matching season wins.
type SeasonalSchedule []SeasonalEntry

// UnmarshalJSON reads a JSON object keeping key order
func (s *SeasonalSchedule) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("seasonal must be an object")
	}
	out := SeasonalSchedule{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var v seasonalValue
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("seasonal.%s: %w", key, err)
		}
		out = append(out, SeasonalEntry{Season: Season(key), Type: v.Type, Value: v.Value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalJSON writes the schedule as an object in entry order
func (s SeasonalSchedule) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.Season))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(seasonalValue{Type: e.Type, Value: e.Value})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Validate checks season names and adjustment kinds
func (s SeasonalSchedule) Validate() error {
	for _, e := range s {
		if !e.Season.IsValid() {
			return shared.NewValidationError(fmt.Sprintf("unknown season %q", e.Season))
		}
		if e.Type != AdjustPercentage && e.Type != AdjustFixed {
			return shared.NewValidationError(fmt.Sprintf("season %q: type must be percentage or fixed", e.Season))
		}
	}
	return nil
}

// ValidateFor checks that the calculation carries exactly the keys the rule type recognizes
func (c Calculation) ValidateFor(a Adjuster) error {
	keys := c.Keys()
	for _, k := range keys {
		if !slices.Contains(a.AllowedKeys(), k) {
			return shared.NewValidationError(fmt.Sprintf("calculation.%s is not used by %s", k, a.RuleType()))
		}
	}
	for _, group := range a.RequiredKeys() {
		if !slices.ContainsFunc(group, func(k string) bool { return slices.Contains(keys, k) }) {
			return shared.NewValidationError(fmt.Sprintf("%s requires calculation.%s", a.RuleType(), joinAlternatives(group)))
		}
	}
	return c.Seasonal.Validate()
}

func joinAlternatives(keys []string) string {
	var buf bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(" or calculation.")
		}
		buf.WriteString(k)
	}
	return buf.String()
}
