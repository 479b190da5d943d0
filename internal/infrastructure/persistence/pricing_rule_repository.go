package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPricingRuleRepository implements pricing.RuleRepository using GORM
type GormPricingRuleRepository struct {
	db *gorm.DB
}

// NewGormPricingRuleRepository creates a new GormPricingRuleRepository
func NewGormPricingRuleRepository(db *gorm.DB) *GormPricingRuleRepository {
	return &GormPricingRuleRepository{db: db}
}

// FindByID finds a rule by ID
func (r *GormPricingRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.Rule, error) {
	var model models.PricingRuleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByBusinessType lists rules by ascending priority. Rows whose documents
// fail to decode are returned with their load error attached.
func (r *GormPricingRuleRepository) FindByBusinessType(ctx context.Context, businessTypeID uuid.UUID, isActive *bool) ([]*pricing.Rule, error) {
	query := r.db.WithContext(ctx).Where("business_type_id = ?", businessTypeID)
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	var rows []models.PricingRuleModel
	if err := query.Order("priority ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	rules := make([]*pricing.Rule, len(rows))
	for i := range rows {
		rules[i] = rows[i].ToDomain()
	}
	return rules, nil
}

// ExistsByName checks the (business type, name) uniqueness
func (r *GormPricingRuleRepository) ExistsByName(ctx context.Context, businessTypeID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.PricingRuleModel{}).
		Where("business_type_id = ? AND name = ?", businessTypeID, name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Create inserts a rule
func (r *GormPricingRuleRepository) Create(ctx context.Context, rule *pricing.Rule) error {
	var model models.PricingRuleModel
	if err := model.FromDomain(rule); err != nil {
		return err
	}
	return translateError(r.db.WithContext(ctx).Create(&model).Error)
}

// Save updates every column of a rule
func (r *GormPricingRuleRepository) Save(ctx context.Context, rule *pricing.Rule) error {
	var model models.PricingRuleModel
	if err := model.FromDomain(rule); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&models.PricingRuleModel{}).
		Where("id = ?", rule.ID).
		Select("*").Omit("id", "created_at").
		Updates(&model)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a rule
func (r *GormPricingRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PricingRuleModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ pricing.RuleRepository = (*GormPricingRuleRepository)(nil)
