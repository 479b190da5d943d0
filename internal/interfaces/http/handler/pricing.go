package handler

import (
	"github.com/gin-gonic/gin"
	pricingapp "github.com/servicehub/backend/internal/application/pricing"
	"github.com/servicehub/backend/internal/domain/pricing"
)

// PricingHandler handles price calculations and pricing rule management
type PricingHandler struct {
	BaseHandler
	pricingService PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingService PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// Calculate prices a set of items against a business type's rules
func (h *PricingHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in := pricingapp.CalculateInput{
		BusinessTypeID: req.BusinessTypeID,
		Items:          make([]pricingapp.ItemInput, len(req.Items)),
		CustomerID:     req.CustomerID,
		DiscountCodes:  req.DiscountCodes,
	}
	if req.OrderDate != nil {
		in.OrderDate = &req.OrderDate.Time
	}
	for i, item := range req.Items {
		in.Items[i] = pricingapp.ItemInput{
			Type:             item.Type,
			TemplateID:       item.TemplateID,
			CustomAttributes: item.CustomAttributes,
		}
		if item.Quantity != nil {
			if item.Quantity.IsNegative() {
				h.BadRequest(c, "Item quantity cannot be negative")
				return
			}
			in.Items[i].Quantity = *item.Quantity
		}
	}

	result, err := h.pricingService.Calculate(c.Request.Context(), in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListRules returns the rules of a business type by ascending priority
func (h *PricingHandler) ListRules(c *gin.Context) {
	businessTypeID, ok := h.ParamUUID(c, "businessTypeId")
	if !ok {
		return
	}
	var q ListRulesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	list, err := h.pricingService.ListRules(c.Request.Context(), businessTypeID, q.IsActive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetRule returns one rule
func (h *PricingHandler) GetRule(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	rule, err := h.pricingService.GetRule(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

// RuleTypes lists the supported rule types with their calculation keys
func (h *PricingHandler) RuleTypes(c *gin.Context) {
	h.Success(c, h.pricingService.RuleTypes())
}

// CreateRule creates a pricing rule
func (h *PricingHandler) CreateRule(c *gin.Context) {
	var req CreateRuleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	conditions, err := pricing.ParseConditions(req.Conditions)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	calculation, err := pricing.ParseCalculation(req.Calculation)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rule, err := h.pricingService.CreateRule(c.Request.Context(), pricingapp.CreateRuleInput{
		BusinessTypeID: req.BusinessTypeID,
		Name:           req.Name,
		Description:    req.Description,
		RuleType:       req.RuleType,
		Conditions:     conditions,
		Calculation:    calculation,
		IsActive:       req.IsActive,
		Priority:       req.Priority,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Pricing rule created", rule)
}

// UpdateRule applies a partial update to a rule
func (h *PricingHandler) UpdateRule(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req UpdateRuleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	update := pricing.RuleUpdate{
		Name:        req.Name,
		Description: req.Description,
		RuleType:    req.RuleType,
		IsActive:    req.IsActive,
		Priority:    req.Priority,
	}
	if req.Conditions != nil {
		conditions, err := pricing.ParseConditions(req.Conditions)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		update.Conditions = &conditions
	}
	if req.Calculation != nil {
		calculation, err := pricing.ParseCalculation(req.Calculation)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		update.Calculation = &calculation
	}

	rule, err := h.pricingService.UpdateRule(c.Request.Context(), id, update)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Pricing rule updated", rule)
}

// DeleteRule removes a rule
func (h *PricingHandler) DeleteRule(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.pricingService.DeleteRule(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, "Pricing rule deleted", nil)
}

