package persistence

import (
	"github.com/servicehub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// allModels lists every persistence model in dependency order
func allModels() []any {
	return []any{
		&models.BusinessTypeModel{},
		&models.TenantModel{},
		&models.TenantBusinessTypeModel{},
		&models.UserModel{},
		&models.ProductTemplateModel{},
		&models.ServiceTemplateModel{},
		&models.PricingRuleModel{},
	}
}

// autoMigrate builds the SQLite test schema from the models. Real databases
// are migrated with the SQL files under migrations/.
func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return err
	}
	// composite uniqueness the struct tags do not express
	for _, stmt := range []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_product_templates_bt_name ON product_templates (business_type_id, name)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_service_templates_bt_name ON service_templates (business_type_id, name)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_pricing_rules_bt_name ON pricing_rules (business_type_id, name)",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
