package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateTemplateInput holds the fields of a new template. IsActive defaults to true.
type CreateTemplateInput struct {
	BusinessTypeID  uuid.UUID
	Name            string
	Description     string
	BasePrice       decimal.Decimal
	Unit            string
	DurationMinutes int
	Category        string
	Attributes      catalog.Attributes
	IsRequired      bool
	IsActive        *bool
	SortOrder       int
}

// TemplateCategories lists the categories of a business type's active templates
type TemplateCategories struct {
	BusinessType BusinessTypeRef    `json:"businessType"`
	Categories   []CategoryResponse `json:"categories"`
}

// BusinessTypeRef is the short form of a business type
type BusinessTypeRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
}

// TemplateService manages templates of one kind. Product and service
// templates each get their own instance.
type TemplateService struct {
	repo          catalog.TemplateRepository
	businessTypes catalog.BusinessTypeRepository
	logger        *zap.Logger
}

// NewTemplateService creates a template service for repo's kind
func NewTemplateService(repo catalog.TemplateRepository, businessTypes catalog.BusinessTypeRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{repo: repo, businessTypes: businessTypes, logger: logger}
}

// Kind returns the template kind this service manages
func (s *TemplateService) Kind() catalog.TemplateKind {
	return s.repo.Kind()
}

// List returns templates ordered by sort order, newest first within equal orders
func (s *TemplateService) List(ctx context.Context, filter catalog.TemplateFilter) ([]TemplateResponse, error) {
	list, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toTemplateResponses(list), nil
}

// Get returns one template
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTemplateResponse(t)
	return &resp, nil
}

// Create creates a template in an existing business type. Names are unique per business type.
func (s *TemplateService) Create(ctx context.Context, in CreateTemplateInput) (*TemplateResponse, error) {
	if _, err := s.businessTypes.FindByID(ctx, in.BusinessTypeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrBusinessTypeNotFound
		}
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	t, err := catalog.NewTemplate(catalog.TemplateSpec{
		BusinessTypeID:  in.BusinessTypeID,
		Kind:            s.repo.Kind(),
		Name:            in.Name,
		Description:     in.Description,
		BasePrice:       in.BasePrice,
		Unit:            in.Unit,
		DurationMinutes: in.DurationMinutes,
		Category:        in.Category,
		Attributes:      in.Attributes,
		IsRequired:      in.IsRequired,
		IsActive:        active,
		SortOrder:       in.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, t.BusinessTypeID, t.Name, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, s.conflict(err)
	}

	logger.Enrich(ctx, s.logger).Info("Template created",
		zap.String("kind", string(t.Kind)),
		zap.String("template_id", t.ID.String()),
		zap.String("name", t.Name))
	resp := ToTemplateResponse(t)
	return &resp, nil
}

// Update applies a partial update and re-validates the template
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, u catalog.TemplateUpdate) (*TemplateResponse, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Apply(u); err != nil {
		return nil, err
	}
	if u.Name != nil {
		if err := s.ensureNameFree(ctx, t.BusinessTypeID, t.Name, &t.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, s.conflict(err)
	}
	resp := ToTemplateResponse(t)
	return &resp, nil
}

// Delete removes a template permanently
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Info("Template deleted",
		zap.String("kind", string(s.repo.Kind())),
		zap.String("template_id", id.String()))
	return nil
}

// Reorder sets each template's sort order to its position in ids
func (s *TemplateService) Reorder(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.NewValidationError("templateIds must be a non-empty array")
	}
	return s.repo.Reorder(ctx, ids)
}

// ToggleStatus flips the active flag
func (s *TemplateService) ToggleStatus(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	t.ToggleActive()
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTemplateResponse(t)
	return &resp, nil
}

// Categories groups the active templates of a business type by category
func (s *TemplateService) Categories(ctx context.Context, businessTypeID uuid.UUID) (*TemplateCategories, error) {
	bt, err := s.businessTypes.FindByID(ctx, businessTypeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrBusinessTypeNotFound
		}
		return nil, err
	}
	counts, err := s.repo.Categories(ctx, businessTypeID)
	if err != nil {
		return nil, err
	}

	out := &TemplateCategories{
		BusinessType: BusinessTypeRef{ID: bt.ID, Name: bt.Name, DisplayName: bt.DisplayName},
		Categories:   make([]CategoryResponse, len(counts)),
	}
	for i, c := range counts {
		out.Categories[i] = CategoryResponse{Name: c.Name, Count: c.Count}
	}
	return out, nil
}

func (s *TemplateService) find(ctx context.Context, id uuid.UUID) (*catalog.Template, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) ensureNameFree(ctx context.Context, businessTypeID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.repo.ExistsByName(ctx, businessTypeID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError(fmt.Sprintf("A %s template named '%s' already exists for this business type", s.repo.Kind(), name))
	}
	return nil
}

// conflict maps a unique index violation raised by a concurrent insert
func (s *TemplateService) conflict(err error) error {
	if errors.Is(err, shared.ErrAlreadyExists) {
		return shared.NewConflictError(fmt.Sprintf("A %s template with this name already exists for this business type", s.repo.Kind()))
	}
	return err
}
