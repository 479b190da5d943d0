package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ListRules returns the rules of a business type by ascending priority. A nil
// isActive returns active and inactive rules.
func (s *Service) ListRules(ctx context.Context, businessTypeID uuid.UUID, isActive *bool) (*RuleList, error) {
	bt, err := s.businessTypes.FindByID(ctx, businessTypeID)
	if err != nil {
		return nil, mapNotFound(err, shared.ErrBusinessTypeNotFound)
	}
	rules, err := s.rules.FindByBusinessType(ctx, businessTypeID, isActive)
	if err != nil {
		return nil, err
	}

	out := make([]RuleResponse, len(rules))
	for i, r := range rules {
		out[i] = ToRuleResponse(r, bt)
	}
	return &RuleList{Rules: out, Total: len(out), BusinessTypeID: businessTypeID}, nil
}

// GetRule returns one rule
func (s *Service) GetRule(ctx context.Context, id uuid.UUID) (*RuleResponse, error) {
	r, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, shared.NewNotFoundError("Pricing rule"))
	}
	resp := ToRuleResponse(r, nil)
	return &resp, nil
}

// CreateRule validates and stores a new rule. Names are unique within a business type.
func (s *Service) CreateRule(ctx context.Context, in CreateRuleInput) (*RuleResponse, error) {
	bt, err := s.businessTypes.FindByID(ctx, in.BusinessTypeID)
	if err != nil {
		return nil, mapNotFound(err, shared.ErrBusinessTypeNotFound)
	}

	rule, err := pricing.NewRule(pricing.RuleSpec{
		BusinessTypeID: in.BusinessTypeID,
		Name:           in.Name,
		Description:    in.Description,
		RuleType:       in.RuleType,
		Conditions:     in.Conditions,
		Calculation:    in.Calculation,
		IsActive:       in.IsActive,
		Priority:       in.Priority,
	}, s.registry)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, rule.BusinessTypeID, rule.Name, nil); err != nil {
		return nil, err
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, mapConflict(err)
	}

	logger.Enrich(ctx, s.logger).Info("Pricing rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.String("business_type", bt.Name),
		zap.String("rule_type", string(rule.RuleType)),
	)
	resp := ToRuleResponse(rule, bt)
	return &resp, nil
}

// UpdateRule applies a partial update and re-validates the rule
func (s *Service) UpdateRule(ctx context.Context, id uuid.UUID, u pricing.RuleUpdate) (*RuleResponse, error) {
	rule, err := s.rules.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, shared.NewNotFoundError("Pricing rule"))
	}
	if err := rule.Apply(u, s.registry); err != nil {
		return nil, err
	}
	if u.Name != nil {
		if err := s.ensureUniqueName(ctx, rule.BusinessTypeID, rule.Name, &rule.ID); err != nil {
			return nil, err
		}
	}
	if err := s.rules.Save(ctx, rule); err != nil {
		return nil, mapConflict(err)
	}

	logger.Enrich(ctx, s.logger).Info("Pricing rule updated", zap.String("rule_id", rule.ID.String()))
	resp := ToRuleResponse(rule, nil)
	return &resp, nil
}

// DeleteRule removes a rule permanently
func (s *Service) DeleteRule(ctx context.Context, id uuid.UUID) error {
	if _, err := s.rules.FindByID(ctx, id); err != nil {
		return mapNotFound(err, shared.NewNotFoundError("Pricing rule"))
	}
	if err := s.rules.Delete(ctx, id); err != nil {
		return mapNotFound(err, shared.NewNotFoundError("Pricing rule"))
	}
	logger.Enrich(ctx, s.logger).Info("Pricing rule deleted", zap.String("rule_id", id.String()))
	return nil
}

// RuleTypes documents the registered rule types
func (s *Service) RuleTypes() []pricing.RuleTypeInfo {
	return s.registry.Describe()
}

func (s *Service) ensureUniqueName(ctx context.Context, businessTypeID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.rules.ExistsByName(ctx, businessTypeID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeDuplicateRuleName,
			"A pricing rule named '"+name+"' already exists for this business type")
	}
	return nil
}

// mapConflict turns a unique index violation into DUPLICATE_RULE_NAME
func mapConflict(err error) error {
	if shared.CodeOf(err) == shared.CodeConflict {
		return shared.WrapDomainError(shared.CodeDuplicateRuleName, "A pricing rule with this name already exists", err)
	}
	return err
}
