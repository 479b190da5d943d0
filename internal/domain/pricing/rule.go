package pricing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/shared"
)

// Rule is a conditional adjustment owned by a business type. Lower priority
// values are evaluated first.
type Rule struct {
	shared.BaseEntity
	BusinessTypeID uuid.UUID
	Name           string
	Description    string
	RuleType       RuleType
	Conditions     Conditions
	Calculation    Calculation
	IsActive       bool
	Priority       int

	// loadErr is set when a stored rule could not be decoded; the engine skips it
	loadErr error
}

// RuleSpec holds the fields needed to create a rule
type RuleSpec struct {
	BusinessTypeID uuid.UUID
	Name           string
	Description    string
	RuleType       RuleType
	Conditions     Conditions
	Calculation    Calculation
	IsActive       *bool
	Priority       int
}

// NewRule validates spec against the adjuster registry and creates a rule
func NewRule(spec RuleSpec, registry *Registry) (*Rule, error) {
	r := &Rule{
		BaseEntity:     shared.NewBaseEntity(),
		BusinessTypeID: spec.BusinessTypeID,
		Name:           strings.TrimSpace(spec.Name),
		Description:    strings.TrimSpace(spec.Description),
		RuleType:       spec.RuleType,
		Conditions:     spec.Conditions,
		Calculation:    spec.Calculation,
		IsActive:       true,
		Priority:       spec.Priority,
	}
	if spec.IsActive != nil {
		r.IsActive = *spec.IsActive
	}
	if err := r.validate(registry); err != nil {
		return nil, err
	}
	return r, nil
}

// RehydrateRule rebuilds a stored rule. A non-nil loadErr marks the rule as
// unusable without failing the load of its siblings.
func RehydrateRule(base shared.BaseEntity, businessTypeID uuid.UUID, name, description string,
	ruleType RuleType, conditions Conditions, calculation Calculation,
	isActive bool, priority int, loadErr error) *Rule {
	return &Rule{
		BaseEntity:     base,
		BusinessTypeID: businessTypeID,
		Name:           name,
		Description:    description,
		RuleType:       ruleType,
		Conditions:     conditions,
		Calculation:    calculation,
		IsActive:       isActive,
		Priority:       priority,
		loadErr:        loadErr,
	}
}

// LoadError returns the decode error of a stored rule, if any
func (r *Rule) LoadError() error {
	return r.loadErr
}

// RuleUpdate carries optional field changes; nil fields are left untouched
type RuleUpdate struct {
	Name        *string
	Description *string
	RuleType    *RuleType
	Conditions  *Conditions
	Calculation *Calculation
	IsActive    *bool
	Priority    *int
}

// Apply applies the non-nil fields of u and re-validates the whole rule
func (r *Rule) Apply(u RuleUpdate, registry *Registry) error {
	next := *r
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		next.Description = strings.TrimSpace(*u.Description)
	}
	if u.RuleType != nil {
		next.RuleType = *u.RuleType
	}
	if u.Conditions != nil {
		next.Conditions = *u.Conditions
	}
	if u.Calculation != nil {
		next.Calculation = *u.Calculation
	}
	if u.IsActive != nil {
		next.IsActive = *u.IsActive
	}
	if u.Priority != nil {
		next.Priority = *u.Priority
	}
	if err := next.validate(registry); err != nil {
		return err
	}
	next.loadErr = nil
	next.Touch()
	*r = next
	return nil
}

func (r *Rule) validate(registry *Registry) error {
	if r.BusinessTypeID == uuid.Nil {
		return shared.NewValidationError("businessTypeId is required")
	}
	if r.Name == "" {
		return shared.NewValidationError("Rule name is required")
	}
	if len(r.Name) > 200 {
		return shared.NewValidationError("Rule name cannot exceed 200 characters")
	}
	if !r.RuleType.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("invalid rule type %q", r.RuleType))
	}
	adj, err := registry.Get(r.RuleType)
	if err != nil {
		return shared.NewValidationError(err.Error())
	}
	if err := r.Conditions.Validate(); err != nil {
		return err
	}
	return r.Calculation.ValidateFor(adj)
}
