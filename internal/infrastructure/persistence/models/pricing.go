package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/pricing"
)

// PricingRuleModel is the persistence model for the pricing Rule domain entity.
type PricingRuleModel struct {
	BaseModel
	BusinessTypeID uuid.UUID `gorm:"type:uuid;not null;index:idx_pricing_rules_bt_priority,priority:1"`
	Name           string    `gorm:"type:varchar(200);not null"`
	Description    string    `gorm:"type:text"`
	RuleType       string    `gorm:"type:varchar(50);not null"`
	Conditions     string    `gorm:"type:json;not null;default:'{}'"`
	Calculation    string    `gorm:"type:json;not null;default:'{}'"`
	IsActive       bool      `gorm:"not null;default:true"`
	Priority       int       `gorm:"not null;default:0;index:idx_pricing_rules_bt_priority,priority:2"`
}

// TableName returns the table name for GORM
func (PricingRuleModel) TableName() string {
	return "pricing_rules"
}

// ToDomain converts the persistence model to a domain Rule. A row whose
// documents no longer decode is still returned; the failure travels on the
// rule so the engine can skip it alone.
func (m *PricingRuleModel) ToDomain() *pricing.Rule {
	var loadErrs []error
	conditions, err := pricing.ParseConditions([]byte(m.Conditions))
	if err != nil {
		loadErrs = append(loadErrs, fmt.Errorf("conditions: %w", err))
	}
	calculation, err := pricing.ParseCalculation([]byte(m.Calculation))
	if err != nil {
		loadErrs = append(loadErrs, fmt.Errorf("calculation: %w", err))
	}
	return pricing.RehydrateRule(
		m.BaseModel.ToDomain(),
		m.BusinessTypeID,
		m.Name,
		m.Description,
		pricing.RuleType(m.RuleType),
		conditions,
		calculation,
		m.IsActive,
		m.Priority,
		errors.Join(loadErrs...),
	)
}

// FromDomain populates the persistence model from a domain Rule.
func (m *PricingRuleModel) FromDomain(r *pricing.Rule) error {
	conditions, err := encodeJSON(r.Conditions)
	if err != nil {
		return fmt.Errorf("encode rule conditions: %w", err)
	}
	calculation, err := encodeJSON(r.Calculation)
	if err != nil {
		return fmt.Errorf("encode rule calculation: %w", err)
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	m.BusinessTypeID = r.BusinessTypeID
	m.Name = r.Name
	m.Description = r.Description
	m.RuleType = string(r.RuleType)
	m.Conditions = conditions
	m.Calculation = calculation
	m.IsActive = r.IsActive
	m.Priority = r.Priority
	return nil
}
