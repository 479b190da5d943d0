package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// RuleTime is a rule validity bound. It accepts RFC 3339 timestamps or plain
// dates; a plain date used as an upper bound covers the whole day.
type RuleTime struct {
	time.Time
	DateOnly bool
}

// UnmarshalJSON accepts "2006-01-02" or RFC 3339
func (t *RuleTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rule time must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if parsed, err := time.Parse(dateLayout, s); err == nil {
		t.Time, t.DateOnly = parsed, true
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid rule time %q", s)
	}
	t.Time, t.DateOnly = parsed, false
	return nil
}

// MarshalJSON writes the value back in the layout it was given in
func (t RuleTime) MarshalJSON() ([]byte, error) {
	if t.DateOnly {
		return json.Marshal(t.Format(dateLayout))
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// upperBound is the last instant the bound still admits
func (t RuleTime) upperBound() time.Time {
	if t.DateOnly {
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t.Time
}

// EvaluationContext is what a rule's conditions are checked against. It is
// computed once per calculation from the priced items, so every rule sees the
// original subtotal and quantity regardless of earlier adjustments.
type EvaluationContext struct {
	Subtotal      decimal.Decimal
	TotalQuantity decimal.Decimal
	OrderDate     time.Time
	CustomerID    *uuid.UUID

	// CalculatedAt is the engine clock at calculation time. Seasons follow
	// it, not the order date.
	CalculatedAt time.Time
}

// Conditions restrict when a rule applies. Nil bounds are not checked.
type Conditions struct {
	MinQuantity *decimal.Decimal `json:"minQuantity,omitempty"`
	MaxQuantity *decimal.Decimal `json:"maxQuantity,omitempty"`
	MinAmount   *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount   *decimal.Decimal `json:"maxAmount,omitempty"`
	ValidFrom   *RuleTime        `json:"validFrom,omitempty"`
	ValidTo     *RuleTime        `json:"validTo,omitempty"`
	DaysOfWeek  []int            `json:"daysOfWeek,omitempty"`
	// Unit documents the unit the thresholds are expressed in; it is not enforced
	Unit string `json:"unit,omitempty"`
}

// ParseConditions decodes conditions, rejecting unrecognized keys
func ParseConditions(raw []byte) (Conditions, error) {
	var c Conditions
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return c, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Conditions{}, shared.NewValidationError("invalid conditions: " + err.Error())
	}
	return c, c.Validate()
}

// Validate checks bound consistency
func (c Conditions) Validate() error {
	if c.MinQuantity != nil && c.MaxQuantity != nil && c.MinQuantity.GreaterThan(*c.MaxQuantity) {
		return shared.NewValidationError("conditions.minQuantity cannot exceed conditions.maxQuantity")
	}
	if c.MinAmount != nil && c.MaxAmount != nil && c.MinAmount.GreaterThan(*c.MaxAmount) {
		return shared.NewValidationError("conditions.minAmount cannot exceed conditions.maxAmount")
	}
	if c.ValidFrom != nil && c.ValidTo != nil && c.ValidFrom.After(c.ValidTo.upperBound()) {
		return shared.NewValidationError("conditions.validFrom cannot be after conditions.validTo")
	}
	for _, d := range c.DaysOfWeek {
		if d < 0 || d > 6 {
			return shared.NewValidationError(fmt.Sprintf("conditions.daysOfWeek entry %d must be between 0 (Sunday) and 6", d))
		}
	}
	return nil
}

// Matches reports whether every specified condition holds for ctx
func (c Conditions) Matches(ctx EvaluationContext) bool {
	if c.MinQuantity != nil && ctx.TotalQuantity.LessThan(*c.MinQuantity) {
		return false
	}
	if c.MaxQuantity != nil && ctx.TotalQuantity.GreaterThan(*c.MaxQuantity) {
		return false
	}
	if c.MinAmount != nil && ctx.Subtotal.LessThan(*c.MinAmount) {
		return false
	}
	if c.MaxAmount != nil && ctx.Subtotal.GreaterThan(*c.MaxAmount) {
		return false
	}
	if c.ValidFrom != nil && ctx.OrderDate.Before(c.ValidFrom.Time) {
		return false
	}
	if c.ValidTo != nil && ctx.OrderDate.After(c.ValidTo.upperBound()) {
		return false
	}
	if len(c.DaysOfWeek) > 0 {
		day := int(ctx.OrderDate.Weekday())
		found := false
		for _, d := range c.DaysOfWeek {
			if d == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
