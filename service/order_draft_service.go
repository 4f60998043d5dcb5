package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tienda-admin/models"
	"tienda-admin/orderbuilder"
	"tienda-admin/pricing"
	"tienda-admin/repository"
	"tienda-admin/utils"
)

// DiscountEvaluator suggests a discount for a set of line items
type DiscountEvaluator interface {
	Evaluate(items []orderbuilder.LineItem) pricing.Suggestion
}

// OrderDraftService drives the custom order builder: drafts live in the draft store until
// they are submitted to the order repository
type OrderDraftService struct {
	drafts   repository.DraftRepositoryInterface
	products repository.ProductRepositoryInterface
	orders   repository.OrderRepositoryInterface
	pricing  DiscountEvaluator

	locks draftLocks
	now   func() time.Time
	newID func() string
}

// NewOrderDraftService creates a new OrderDraftService. engine may be nil.
func NewOrderDraftService(
	drafts repository.DraftRepositoryInterface,
	products repository.ProductRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	engine DiscountEvaluator,
) *OrderDraftService {
	return &OrderDraftService{
		drafts:   drafts,
		products: products,
		orders:   orders,
		pricing:  engine,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *OrderDraftService) Create(ctx context.Context, recipient *orderbuilder.Recipient) (orderbuilder.Draft, error) {
	d := orderbuilder.NewDraft(s.newID(), s.now().UTC())
	if recipient != nil {
		d = d.WithRecipient(*recipient)
	}
	if err := s.drafts.Save(ctx, d); err != nil {
		return orderbuilder.Draft{}, err
	}
	zap.L().Info("✅ CreateDraft: draft created", zap.String("draftId", d.ID))
	return d, nil
}

func (s *OrderDraftService) Get(ctx context.Context, id string) (orderbuilder.Draft, error) {
	return s.drafts.Get(ctx, id)
}

// AddProduct looks the product up, builds its line items and appends them to the draft
func (s *OrderDraftService) AddProduct(ctx context.Context, draftID string, req models.AddDraftItemRequest) (orderbuilder.Draft, []orderbuilder.LineItem, error) {
	zap.L().Info("📥 AddProduct: received", zap.String("draftId", draftID), zap.String("productId", req.ProductID))

	product, err := s.products.Lookup(ctx, req.ProductID)
	if err != nil {
		return orderbuilder.Draft{}, nil, err
	}

	sel := orderbuilder.Selection{
		Product:       product,
		Quantity:      req.Quantity,
		Colors:        canonicalColors(product, req.Colors),
		OverridePrice: req.OverridePrice,
	}

	var added []orderbuilder.LineItem
	d, err := s.update(ctx, draftID, func(d orderbuilder.Draft) (orderbuilder.Draft, error) {
		next, items, err := d.AddConfiguredProduct(sel)
		added = items
		return next, err
	})
	if err != nil {
		zap.L().Warn("❌ AddProduct: rejected", zap.String("draftId", draftID), zap.Error(err))
		return orderbuilder.Draft{}, nil, err
	}

	zap.L().Info("✅ AddProduct: items added", zap.String("draftId", draftID), zap.Int("added", len(added)),
		zap.String("subtotal", d.Totals().Subtotal.String()))
	return d, added, nil
}

func (s *OrderDraftService) RemoveItem(ctx context.Context, draftID, lineID string) (orderbuilder.Draft, error) {
	return s.update(ctx, draftID, func(d orderbuilder.Draft) (orderbuilder.Draft, error) {
		return d.RemoveLineItem(lineID), nil
	})
}

func (s *OrderDraftService) UpdateCharges(ctx context.Context, draftID string, discount, shipping decimal.Decimal) (orderbuilder.Draft, error) {
	return s.update(ctx, draftID, func(d orderbuilder.Draft) (orderbuilder.Draft, error) {
		return d.WithCharges(discount, shipping), nil
	})
}

func (s *OrderDraftService) SetRecipient(ctx context.Context, draftID string, r orderbuilder.Recipient) (orderbuilder.Draft, error) {
	return s.update(ctx, draftID, func(d orderbuilder.Draft) (orderbuilder.Draft, error) {
		return d.WithRecipient(r), nil
	})
}

// ApplyAutoDiscount replaces the draft discount with the best matching pricing rule.
// When no rule applies the discount becomes zero.
func (s *OrderDraftService) ApplyAutoDiscount(ctx context.Context, draftID string) (orderbuilder.Draft, pricing.Suggestion, error) {
	if s.pricing == nil {
		return orderbuilder.Draft{}, pricing.Suggestion{}, ErrPricingUnavailable
	}

	var suggestion pricing.Suggestion
	d, err := s.update(ctx, draftID, func(d orderbuilder.Draft) (orderbuilder.Draft, error) {
		suggestion = s.pricing.Evaluate(d.Items)
		return d.WithDiscountRule(suggestion.RuleID, suggestion.Discount), nil
	})
	if err != nil {
		return orderbuilder.Draft{}, pricing.Suggestion{}, err
	}
	zap.L().Info("💰 ApplyAutoDiscount", zap.String("draftId", draftID),
		zap.String("rule", suggestion.RuleID), zap.String("discount", suggestion.Discount.String()))
	return d, suggestion, nil
}

// Submit validates the draft and stores it as an order. Validation failures never reach the
// order repository; repository failures are wrapped in ErrSubmissionFailed and the draft is kept.
func (s *OrderDraftService) Submit(ctx context.Context, draftID string) (*models.Order, error) {
	unlock := s.locks.lock(draftID)
	defer unlock()

	d, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	payload, err := d.Payload()
	if err != nil {
		zap.L().Warn("❌ Submit: draft incomplete", zap.String("draftId", draftID), zap.Error(err))
		return nil, err
	}

	order, err := s.orders.Create(ctx, payload)
	if err != nil {
		zap.L().Error("❌ Submit: order store failed", zap.String("draftId", draftID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	if err := s.drafts.Delete(ctx, draftID); err != nil {
		zap.L().Warn("⚠️ Submit: could not delete draft", zap.String("draftId", draftID), zap.Error(err))
	}
	zap.L().Info("✅ Submit: order created", zap.String("draftId", draftID), zap.String("orderId", order.ID),
		zap.String("total", order.Total.String()))
	return order, nil
}

func (s *OrderDraftService) update(ctx context.Context, draftID string, fn func(orderbuilder.Draft) (orderbuilder.Draft, error)) (orderbuilder.Draft, error) {
	unlock := s.locks.lock(draftID)
	defer unlock()

	d, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return orderbuilder.Draft{}, err
	}
	next, err := fn(d)
	if err != nil {
		return orderbuilder.Draft{}, err
	}
	if err := s.drafts.Save(ctx, next); err != nil {
		return orderbuilder.Draft{}, err
	}
	return next, nil
}

// draftLocks serialises read-modify-write per draft; entries live only while held or awaited.
type draftLocks struct {
	mu   sync.Mutex
	byID map[string]*draftLock
}

type draftLock struct {
	mu   sync.Mutex
	refs int
}

func (l *draftLocks) lock(id string) func() {
	l.mu.Lock()
	if l.byID == nil {
		l.byID = make(map[string]*draftLock)
	}
	dl, ok := l.byID[id]
	if !ok {
		dl = &draftLock{}
		l.byID[id] = dl
	}
	dl.refs++
	l.mu.Unlock()

	dl.mu.Lock()
	return func() {
		dl.mu.Unlock()
		l.mu.Lock()
		dl.refs--
		if dl.refs == 0 {
			delete(l.byID, id)
		}
		l.mu.Unlock()
	}
}

// canonicalColors rewrites colours and sizes to the product's own spelling so that
// "negro"/"mini" match "Negro"/"MN". Unknown values are left alone.
func canonicalColors(p orderbuilder.Product, colors []orderbuilder.ColorSelection) []orderbuilder.ColorSelection {
	out := make([]orderbuilder.ColorSelection, 0, len(colors))
	for _, cs := range colors {
		var declared *orderbuilder.ColorVariant
		for i := range p.Variants {
			if strings.EqualFold(strings.TrimSpace(cs.Color), p.Variants[i].Color) {
				declared = &p.Variants[i]
				break
			}
		}

		next := orderbuilder.ColorSelection{Color: strings.TrimSpace(cs.Color), Sizes: make([]orderbuilder.SizeQuantity, 0, len(cs.Sizes))}
		if declared != nil {
			next.Color = declared.Color
		}
		for _, sq := range cs.Sizes {
			size := strings.TrimSpace(sq.Size)
			if declared != nil {
				for _, ss := range declared.Sizes {
					if utils.NormalizeSize(ss.Size) == utils.NormalizeSize(size) {
						size = ss.Size
						break
					}
				}
			}
			next.Sizes = append(next.Sizes, orderbuilder.SizeQuantity{Size: size, Quantity: sq.Quantity})
		}
		out = append(out, next)
	}
	return out
}
