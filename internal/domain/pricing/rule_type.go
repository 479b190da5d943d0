// Package pricing evaluates business-type pricing rules against priced line items.
package pricing

// RuleType selects how a pricing rule turns its calculation into an adjustment
type RuleType string

const (
	RuleTypePercentageDiscount    RuleType = "PERCENTAGE_DISCOUNT"
	RuleTypeFixedDiscount         RuleType = "FIXED_DISCOUNT"
	RuleTypeQuantityDiscount      RuleType = "QUANTITY_DISCOUNT"
	RuleTypeBulkPricing           RuleType = "BULK_PRICING"
	RuleTypeExpressSurcharge      RuleType = "EXPRESS_SURCHARGE"
	RuleTypeLoyalCustomerDiscount RuleType = "LOYAL_CUSTOMER_DISCOUNT"
	RuleTypeSeasonalAdjustment    RuleType = "SEASONAL_ADJUSTMENT"
)

// String returns the string representation of the rule type
func (t RuleType) String() string {
	return string(t)
}

// IsValid returns true if the rule type is one of the known types
func (t RuleType) IsValid() bool {
	switch t {
	case RuleTypePercentageDiscount, RuleTypeFixedDiscount, RuleTypeQuantityDiscount,
		RuleTypeBulkPricing, RuleTypeExpressSurcharge, RuleTypeLoyalCustomerDiscount,
		RuleTypeSeasonalAdjustment:
		return true
	default:
		return false
	}
}

// AllRuleTypes returns all valid rule types
func AllRuleTypes() []RuleType {
	return []RuleType{
		RuleTypePercentageDiscount,
		RuleTypeFixedDiscount,
		RuleTypeQuantityDiscount,
		RuleTypeBulkPricing,
		RuleTypeExpressSurcharge,
		RuleTypeLoyalCustomerDiscount,
		RuleTypeSeasonalAdjustment,
	}
}
