// Package pricing calculates quotes and manages the pricing rules of business types.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/pricing"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/servicehub/backend/internal/infrastructure/logger"
	"github.com/servicehub/backend/internal/infrastructure/metrics"
	"github.com/servicehub/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultQuoteValidity is how long a quote is advertised as valid
const DefaultQuoteValidity = 30 * time.Minute

// templateLoadConcurrency bounds parallel template lookups per calculation
const templateLoadConcurrency = 8

// ServiceConfig configures a Service
type ServiceConfig struct {
	QuoteValidity time.Duration
}

// Service prices items against the rules of a business type
type Service struct {
	businessTypes catalog.BusinessTypeRepository
	products      catalog.TemplateRepository
	services      catalog.TemplateRepository
	rules         pricing.RuleRepository
	registry      *pricing.Registry
	engine        *pricing.Engine
	config        ServiceConfig
	logger        *zap.Logger
	now           func() time.Time
}

// NewService creates a pricing service
func NewService(
	businessTypes catalog.BusinessTypeRepository,
	products catalog.TemplateRepository,
	services catalog.TemplateRepository,
	rules pricing.RuleRepository,
	registry *pricing.Registry,
	config ServiceConfig,
	logger *zap.Logger,
) *Service {
	if config.QuoteValidity <= 0 {
		config.QuoteValidity = DefaultQuoteValidity
	}
	return &Service{
		businessTypes: businessTypes,
		products:      products,
		services:      services,
		rules:         rules,
		registry:      registry,
		engine:        pricing.NewEngine(registry),
		config:        config,
		logger:        logger,
		now:           time.Now,
	}
}

// Calculate prices the items of in. Any unknown template fails the whole
// calculation; a rule that cannot be evaluated is logged and skipped.
func (s *Service) Calculate(ctx context.Context, in CalculateInput) (result *CalculateResult, err error) {
	start := s.now()
	ctx, span := telemetry.StartServiceSpan(ctx, "PricingService", "Calculate",
		attribute.String("business_type_id", in.BusinessTypeID.String()),
		attribute.Int("items", len(in.Items)),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
		outcome := "success"
		if err != nil {
			outcome = shared.CodeOf(err)
			if outcome == "" {
				outcome = shared.CodeInternal
			}
		}
		metrics.ObservePricing(outcome, s.now().Sub(start))
	}()

	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	bt, err := s.businessTypes.FindByID(ctx, in.BusinessTypeID)
	if err != nil {
		return nil, mapNotFound(err, shared.ErrBusinessTypeNotFound)
	}

	rules, templates, err := s.loadInputs(ctx, bt.ID, in.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.LineItem, len(in.Items))
	for i, item := range in.Items {
		lines[i] = pricing.LineItem{
			Template:         templates[i],
			Quantity:         quantityOrOne(item.Quantity),
			CustomAttributes: item.CustomAttributes,
		}
	}
	calcInput := pricing.Input{
		Items:         lines,
		Rules:         rules,
		CustomerID:    in.CustomerID,
		DiscountCodes: in.DiscountCodes,
	}
	if in.OrderDate != nil {
		calcInput.OrderDate = *in.OrderDate
	}

	calc, err := s.engine.Calculate(calcInput)
	if err != nil {
		if errors.Is(err, pricing.ErrNoItems) {
			return nil, shared.NewValidationError(err.Error())
		}
		return nil, err
	}
	s.report(ctx, bt, calc)

	calculatedAt := s.now()
	return &CalculateResult{
		Calculation:  calc,
		BusinessType: refOf(bt),
		CalculatedAt: calculatedAt,
		ValidUntil:   calculatedAt.Add(s.config.QuoteValidity),
	}, nil
}

// loadInputs reads the active rules and every referenced template concurrently.
// templates[i] belongs to items[i].
func (s *Service) loadInputs(ctx context.Context, businessTypeID uuid.UUID, items []ItemInput) ([]*pricing.Rule, []*catalog.Template, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(templateLoadConcurrency)

	var rules []*pricing.Rule
	active := true
	g.Go(func() error {
		var err error
		rules, err = s.rules.FindByBusinessType(gctx, businessTypeID, &active)
		return err
	})

	templates := make([]*catalog.Template, len(items))
	for i, item := range items {
		repo := s.templateRepository(item.Type)
		g.Go(func() error {
			t, err := repo.FindInBusinessType(gctx, businessTypeID, item.TemplateID)
			if err != nil {
				return mapNotFound(err, shared.NewDomainError(shared.CodeTemplateNotFound,
					fmt.Sprintf("%s template %s not found in this business type", item.Type, item.TemplateID)))
			}
			templates[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rules, templates, nil
}

func (s *Service) templateRepository(kind catalog.TemplateKind) catalog.TemplateRepository {
	if kind == catalog.KindService {
		return s.services
	}
	return s.products
}

func (s *Service) report(ctx context.Context, bt *catalog.BusinessType, calc pricing.PriceCalculation) {
	log := logger.Enrich(ctx, s.logger)
	for _, skipped := range calc.Skipped {
		metrics.ObserveSkippedRule(string(skipped.RuleType))
		log.Warn("Pricing rule skipped",
			zap.String("business_type", bt.Name),
			zap.String("rule_id", skipped.RuleID.String()),
			zap.String("rule", skipped.Name),
			zap.Error(skipped.Err),
		)
	}
	if len(calc.IgnoredDiscountCodes) > 0 {
		log.Info("Discount codes are not supported yet, ignoring",
			zap.Strings("codes", calc.IgnoredDiscountCodes))
	}
	for _, d := range calc.Discounts {
		metrics.ObserveAdjustment(string(d.Type), "discount")
	}
	for _, sc := range calc.Surcharges {
		metrics.ObserveAdjustment(string(sc.Type), "surcharge")
	}
	log.Debug("Price calculated",
		zap.String("business_type", bt.Name),
		zap.String("subtotal", calc.Subtotal.StringFixed(2)),
		zap.String("total", calc.Total.StringFixed(2)),
	)
}

func validateItems(items []ItemInput) error {
	if len(items) == 0 {
		return shared.NewValidationError("businessTypeId and a non-empty items array are required")
	}
	for i, item := range items {
		if !item.Type.IsValid() {
			return shared.NewValidationError(fmt.Sprintf("items[%d].type must be product or service", i))
		}
		if item.TemplateID == uuid.Nil {
			return shared.NewValidationError(fmt.Sprintf("items[%d].templateId is required", i))
		}
		if item.Quantity.IsNegative() {
			return shared.NewValidationError(fmt.Sprintf("items[%d].quantity cannot be negative", i))
		}
	}
	return nil
}

func quantityOrOne(q decimal.Decimal) decimal.Decimal {
	if q.IsZero() {
		return decimal.NewFromInt(1)
	}
	return q
}

// mapNotFound replaces a not-found error with notFound and passes anything else through
func mapNotFound(err error, notFound error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return notFound
	}
	return err
}
