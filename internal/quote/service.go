package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/widget-basket/internal/basket"
	"github.com/noah-isme/widget-basket/internal/catalog"
	"github.com/noah-isme/widget-basket/internal/common"
	"github.com/noah-isme/widget-basket/internal/delivery"
	"github.com/noah-isme/widget-basket/internal/obs"
	"github.com/noah-isme/widget-basket/internal/pricing"
)

// BasketFactory creates a fresh basket with tiers and offers already applied.
type BasketFactory func(c *catalog.Catalog) (*basket.Basket, error)

// Service prices baskets against a shared, read-only catalog.
type Service struct {
	catalog   *catalog.Catalog
	newBasket BasketFactory
	metrics   *obs.QuoteMetrics
	newID     func() uuid.UUID
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Catalog   *catalog.Catalog
	NewBasket BasketFactory
	Metrics   *obs.QuoteMetrics
	NewID     func() uuid.UUID
}

// Quote is a priced basket.
type Quote struct {
	ID      uuid.UUID
	Items   []catalog.Product
	Summary pricing.Summary
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("quote: catalog is required")
	}
	if cfg.NewBasket == nil {
		cfg.NewBasket = func(c *catalog.Catalog) (*basket.Basket, error) { return basket.New(c), nil }
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.New
	}
	return &Service{catalog: cfg.Catalog, newBasket: cfg.NewBasket, metrics: cfg.Metrics, newID: cfg.NewID}, nil
}

// Catalog returns the products on sale in catalog order.
func (s *Service) Catalog() []catalog.Product {
	return s.catalog.List()
}

// DeliveryTiers returns the tiers a fresh basket is configured with.
func (s *Service) DeliveryTiers() ([]delivery.Tier, error) {
	b, err := s.newBasket(s.catalog)
	if err != nil {
		return nil, err
	}
	return b.DeliveryTiers(), nil
}

// Quote prices the given product codes in order. Unknown codes fail the whole quote.
func (s *Service) Quote(ctx context.Context, productCodes []string) (Quote, error) {
	_, span := otel.Tracer("basket.quote").Start(ctx, "quote.price")
	defer span.End()
	span.SetAttributes(attribute.Int("basket.items", len(productCodes)))

	b, err := s.newBasket(s.catalog)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.metrics.Observe("error", 0, false)
		return Quote{}, fmt.Errorf("quote: new basket: %w", err)
	}
	for _, code := range productCodes {
		if err := b.Add(code); err != nil {
			span.SetStatus(codes.Error, err.Error())
			if errors.Is(err, basket.ErrProductNotFound) {
				s.metrics.Observe("product_not_found", 0, false)
				appErr := common.NewAppError("PRODUCT_NOT_FOUND", "unknown product code", http.StatusUnprocessableEntity, err)
				appErr.Details = map[string]string{"code": code}
				return Quote{}, appErr
			}
			s.metrics.Observe("error", 0, false)
			return Quote{}, err
		}
	}

	summary := b.Quote()
	s.metrics.Observe("ok", b.Len(), summary.Discount.IsPositive())
	span.SetAttributes(attribute.String("basket.total", pricing.Format(summary.Total)))
	return Quote{ID: s.newID(), Items: b.Items(), Summary: summary}, nil
}
