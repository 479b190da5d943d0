// Package catalog manages business types and the product and service
// templates they own.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BusinessTypeService handles business type operations
type BusinessTypeService struct {
	repo     catalog.BusinessTypeRepository
	products catalog.TemplateRepository
	services catalog.TemplateRepository
	rules    pricing.RuleRepository
	logger   *zap.Logger
}

// NewBusinessTypeService creates a new BusinessTypeService. repo may be a
// caching decorator; every write goes through it.
func NewBusinessTypeService(
	repo catalog.BusinessTypeRepository,
	products catalog.TemplateRepository,
	services catalog.TemplateRepository,
	rules pricing.RuleRepository,
	logger *zap.Logger,
) *BusinessTypeService {
	return &BusinessTypeService{
		repo:     repo,
		products: products,
		services: services,
		rules:    rules,
		logger:   logger,
	}
}

// ListActive returns the active business types by sort order
func (s *BusinessTypeService) ListActive(ctx context.Context) ([]BusinessTypeResponse, error) {
	list, err := s.repo.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]BusinessTypeResponse, len(list))
	for i := range list {
		out[i] = ToBusinessTypeResponse(&list[i])
	}
	return out, nil
}

// ListAll returns every business type, including deactivated ones, with the
// number of tenants linked to each
func (s *BusinessTypeService) ListAll(ctx context.Context) ([]BusinessTypeResponse, error) {
	list, err := s.repo.FindAll(ctx, false)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	usage, err := s.repo.TenantUsage(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]BusinessTypeResponse, len(list))
	for i := range list {
		out[i] = ToBusinessTypeResponse(&list[i])
		count := usage[list[i].ID]
		out[i].TenantCount = &count
	}
	return out, nil
}

// Get returns an active business type with its active templates and rules
func (s *BusinessTypeService) Get(ctx context.Context, id uuid.UUID) (*BusinessTypeDetail, error) {
	bt, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}

	active := true
	filter := catalog.TemplateFilter{BusinessTypeID: &bt.ID, IsActive: &active}
	var (
		products []catalog.Template
		services []catalog.Template
		rules    []*pricing.Rule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.FindAll(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		services, err = s.services.FindAll(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		rules, err = s.rules.FindByBusinessType(gctx, bt.ID, &active)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail := &BusinessTypeDetail{
		BusinessTypeResponse: ToBusinessTypeResponse(bt),
		ProductTemplates:     toTemplateResponses(products),
		ServiceTemplates:     toTemplateResponses(services),
		PricingRules:         make([]RuleSummary, 0, len(rules)),
	}
	for _, r := range rules {
		if r.LoadError() != nil {
			continue
		}
		detail.PricingRules = append(detail.PricingRules, RuleSummary{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			RuleType:    r.RuleType,
			Conditions:  r.Conditions,
			Calculation: r.Calculation,
			Priority:    r.Priority,
		})
	}
	return detail, nil
}

// Create creates a business type with a unique name
func (s *BusinessTypeService) Create(ctx context.Context, in CreateBusinessTypeInput) (*BusinessTypeResponse, error) {
	bt, err := catalog.NewBusinessType(in.Name, in.DisplayName)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, bt.Name, uuid.Nil); err != nil {
		return nil, err
	}
	bt.Description = in.Description
	bt.Icon = in.Icon
	bt.Color = in.Color
	bt.SortOrder = in.SortOrder

	if err := s.repo.Save(ctx, bt); err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Business type created",
		zap.String("business_type_id", bt.ID.String()),
		zap.String("name", bt.Name))

	resp := ToBusinessTypeResponse(bt)
	return &resp, nil
}

// Update applies a partial update
func (s *BusinessTypeService) Update(ctx context.Context, id uuid.UUID, u catalog.BusinessTypeUpdate) (*BusinessTypeResponse, error) {
	bt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bt.Apply(u); err != nil {
		return nil, err
	}
	if u.Name != nil {
		if err := s.ensureNameFree(ctx, bt.Name, bt.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, bt); err != nil {
		return nil, err
	}
	resp := ToBusinessTypeResponse(bt)
	return &resp, nil
}

// Delete soft-deletes a business type. Types linked to tenants are refused.
func (s *BusinessTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	bt, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	usage, err := s.repo.TenantUsage(ctx, []uuid.UUID{bt.ID})
	if err != nil {
		return err
	}
	if n := usage[bt.ID]; n > 0 {
		return shared.NewDomainError(shared.CodeBusinessTypeInUse,
			fmt.Sprintf("Business type is used by %d tenant(s) and cannot be deleted", n))
	}

	bt.Deactivate()
	if err := s.repo.Save(ctx, bt); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Info("Business type deactivated", zap.String("business_type_id", bt.ID.String()))
	return nil
}

// Restore re-activates a soft-deleted business type
func (s *BusinessTypeService) Restore(ctx context.Context, id uuid.UUID) (*BusinessTypeResponse, error) {
	bt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	bt.Restore()
	if err := s.repo.Save(ctx, bt); err != nil {
		return nil, err
	}
	resp := ToBusinessTypeResponse(bt)
	return &resp, nil
}

// Reorder sets each business type's sort order to its position in ids
func (s *BusinessTypeService) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.NewValidationError("businessTypes must be a non-empty array")
	}
	return s.repo.Reorder(ctx, ids)
}

// BulkActivate activates many business types
func (s *BusinessTypeService) BulkActivate(ctx context.Context, ids []uuid.UUID) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, shared.NewValidationError("businessTypeIds must be a non-empty array")
	}
	n, err := s.repo.SetActive(ctx, ids, true)
	if err != nil {
		return nil, err
	}
	return &BulkResult{Updated: n}, nil
}

// BulkDeactivate deactivates many business types. Nothing changes if any of
// them is linked to a tenant; the returned error lists those in use.
func (s *BusinessTypeService) BulkDeactivate(ctx context.Context, ids []uuid.UUID) (*BulkResult, []InUseBusinessType, error) {
	if len(ids) == 0 {
		return nil, nil, shared.NewValidationError("businessTypeIds must be a non-empty array")
	}
	usage, err := s.repo.TenantUsage(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	var inUse []InUseBusinessType
	for _, id := range ids {
		if n := usage[id]; n > 0 {
			item := InUseBusinessType{ID: id, TenantCount: n}
			if bt, err := s.repo.FindByID(ctx, id); err == nil {
				item.Name = bt.DisplayName
			}
			inUse = append(inUse, item)
		}
	}
	if len(inUse) > 0 {
		return nil, inUse, shared.NewDomainError(shared.CodeBusinessTypeInUse,
			fmt.Sprintf("%d business type(s) are in use and cannot be deactivated", len(inUse)))
	}

	n, err := s.repo.SetActive(ctx, ids, false)
	if err != nil {
		return nil, nil, err
	}
	return &BulkResult{Updated: n}, nil, nil
}

func (s *BusinessTypeService) find(ctx context.Context, id uuid.UUID) (*catalog.BusinessType, error) {
	bt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrBusinessTypeNotFound
		}
		return nil, err
	}
	return bt, nil
}

func (s *BusinessTypeService) findActive(ctx context.Context, id uuid.UUID) (*catalog.BusinessType, error) {
	bt, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !bt.IsActive {
		return nil, shared.ErrBusinessTypeNotFound
	}
	return bt, nil
}

func (s *BusinessTypeService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return shared.NewConflictError("A business type named '" + name + "' already exists")
	}
	return nil
}
