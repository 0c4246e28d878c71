package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"storefront/internal/cart/domain"
	"storefront/internal/cart/ports"
	"storefront/internal/pricing"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/logger"
)

// CartUseCase handles cart business logic
type CartUseCase struct {
	repo    ports.CartRepository
	cache   ports.CartCache
	coupons ports.CouponClient
	log     *logger.Logger

	// collapses concurrent cache misses for the same session
	loads singleflight.Group
}

// NewCartUseCase creates a new cart use case. cache may be nil.
func NewCartUseCase(
	repo ports.CartRepository,
	cache ports.CartCache,
	coupons ports.CouponClient,
	log *logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		repo:    repo,
		cache:   cache,
		coupons: coupons,
		log:     log,
	}
}

// CartOutput is a cart together with its price breakdown
type CartOutput struct {
	Cart   *domain.Cart
	Totals pricing.Totals
}

func newCartOutput(cart *domain.Cart) *CartOutput {
	return &CartOutput{Cart: cart, Totals: cart.Totals()}
}

// GetCartInput represents the input for reading a cart
type GetCartInput struct {
	SessionID string
}

// GetCart returns the session's cart, or an empty one if it has none
func (uc *CartUseCase) GetCart(ctx context.Context, input GetCartInput) (*CartOutput, error) {
	if input.SessionID == "" {
		return nil, domain.ErrSessionRequired
	}

	v, err, _ := uc.loads.Do(input.SessionID, func() (interface{}, error) {
		return uc.load(ctx, input.SessionID)
	})
	if err != nil {
		return nil, err
	}

	return newCartOutput(v.(*domain.Cart)), nil
}

func (uc *CartUseCase) load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if uc.cache != nil {
		cart, err := uc.cache.Get(ctx, sessionID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			uc.log.WithContext(ctx).Warn("cart cache get failed", zap.Error(err))
		}
	}

	cart, err := uc.repo.Get(ctx, sessionID)
	if apperrors.Is(err, apperrors.CodeNotFound) {
		return domain.NewCart(sessionID)
	}
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cart); err != nil {
			uc.log.WithContext(ctx).Warn("cart cache set failed", zap.Error(err))
		}
	}

	return cart, nil
}

// GetStoredCart reads the session's cart from the repository, bypassing
// the cache. Checkout prices orders from this.
func (uc *CartUseCase) GetStoredCart(ctx context.Context, input GetCartInput) (*CartOutput, error) {
	if input.SessionID == "" {
		return nil, domain.ErrSessionRequired
	}

	cart, err := uc.repo.Get(ctx, input.SessionID)
	if apperrors.Is(err, apperrors.CodeNotFound) {
		cart, err = domain.NewCart(input.SessionID)
	}
	if err != nil {
		return nil, err
	}

	return newCartOutput(cart), nil
}

// AddItemInput represents the input for adding a variant to the cart
type AddItemInput struct {
	SessionID string
	Variant   domain.ProductVariant
	UnitPrice decimal.Decimal
	Quantity  int
}

// AddItem adds a variant to the cart
func (uc *CartUseCase) AddItem(ctx context.Context, input AddItemInput) (*CartOutput, error) {
	out, err := uc.mutate(ctx, input.SessionID, func(cart *domain.Cart) error {
		_, err := cart.AddItem(input.Variant, input.UnitPrice, input.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("cart item added",
		zap.String("variant_id", input.Variant.VariantID),
		zap.Int("quantity", input.Quantity),
		zap.Int("total_quantity", out.Cart.TotalQuantity()),
	)

	return out, nil
}

// UpdateQuantityInput represents the input for changing a line's quantity
type UpdateQuantityInput struct {
	SessionID string
	ItemID    string
	Quantity  int
}

// UpdateQuantity changes the quantity of a line
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, input UpdateQuantityInput) (*CartOutput, error) {
	return uc.mutate(ctx, input.SessionID, func(cart *domain.Cart) error {
		return cart.UpdateQuantity(input.ItemID, input.Quantity)
	})
}

// RemoveItemInput represents the input for removing a line
type RemoveItemInput struct {
	SessionID string
	ItemID    string
}

// RemoveItem removes a line from the cart
func (uc *CartUseCase) RemoveItem(ctx context.Context, input RemoveItemInput) (*CartOutput, error) {
	return uc.mutate(ctx, input.SessionID, func(cart *domain.Cart) error {
		return cart.RemoveItem(input.ItemID)
	})
}

// ClearCartInput represents the input for emptying a cart
type ClearCartInput struct {
	SessionID string
}

// ClearCart empties the cart and drops its coupon
func (uc *CartUseCase) ClearCart(ctx context.Context, input ClearCartInput) (*CartOutput, error) {
	out, err := uc.mutate(ctx, input.SessionID, func(cart *domain.Cart) error {
		cart.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("cart cleared", zap.Int64("version", out.Cart.Version))
	return out, nil
}

// ApplyCouponInput represents the input for applying a coupon code
type ApplyCouponInput struct {
	SessionID string
	Code      string
}

// ApplyCoupon validates code with the backend and applies it, replacing any
// coupon already on the cart
func (uc *CartUseCase) ApplyCoupon(ctx context.Context, input ApplyCouponInput) (*CartOutput, error) {
	code := domain.NormalizeCouponCode(input.Code)
	if code == "" {
		return nil, domain.ErrCouponCodeRequired
	}

	out, err := uc.mutate(ctx, input.SessionID, func(cart *domain.Cart) error {
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		coupon, err := uc.coupons.Apply(ctx, code, cart.Totals().Subtotal)
		if err != nil {
			return err
		}
		cart.ApplyCoupon(*coupon)
		return nil
	})
	if err != nil {
		uc.log.WithContext(ctx).Info("coupon rejected",
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, err
	}

	uc.log.WithContext(ctx).Info("coupon applied",
		zap.String("code", code),
		zap.String("discount", out.Totals.Discount.String()),
		zap.Bool("capped", out.Totals.DiscountCapped),
	)

	return out, nil
}

// RemoveCouponInput represents the input for removing the applied coupon
type RemoveCouponInput struct {
	SessionID string
}

// RemoveCoupon removes the applied coupon
func (uc *CartUseCase) RemoveCoupon(ctx context.Context, input RemoveCouponInput) (*CartOutput, error) {
	return uc.mutate(ctx, input.SessionID, func(cart *domain.Cart) error {
		cart.RemoveCoupon()
		return nil
	})
}

// mutate loads the authoritative cart, applies fn and stores the result
// guarded by the version it was loaded at
func (uc *CartUseCase) mutate(ctx context.Context, sessionID string, fn func(*domain.Cart) error) (*CartOutput, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionRequired
	}

	cart, err := uc.repo.Get(ctx, sessionID)
	if apperrors.Is(err, apperrors.CodeNotFound) {
		cart, err = domain.NewCart(sessionID)
	}
	if err != nil {
		return nil, err
	}
	expected := cart.Version

	if err := fn(cart); err != nil {
		return nil, err
	}
	if cart.Version == expected {
		return newCartOutput(cart), nil
	}

	if err := uc.repo.Save(ctx, cart, expected); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, cart)

	return newCartOutput(cart), nil
}

func (uc *CartUseCase) invalidate(ctx context.Context, cart *domain.Cart) {
	if uc.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if err := uc.cache.Invalidate(ctx, cart.SessionID, cart.Version); err != nil {
		uc.log.WithContext(ctx).Warn("cart cache invalidate failed", zap.Error(err))
	}
}

// TotalsOutput is the price breakdown of a cart
type TotalsOutput struct {
	SessionID     string
	Version       int64
	TotalQuantity int
	CouponCode    string
	Totals        pricing.Totals
}

// GetTotals prices the session's cart
func (uc *CartUseCase) GetTotals(ctx context.Context, input GetCartInput) (*TotalsOutput, error) {
	out, err := uc.GetCart(ctx, input)
	if err != nil {
		return nil, err
	}

	totals := &TotalsOutput{
		SessionID:     out.Cart.SessionID,
		Version:       out.Cart.Version,
		TotalQuantity: out.Cart.TotalQuantity(),
		Totals:        out.Totals,
	}
	if out.Cart.Coupon != nil {
		totals.CouponCode = out.Cart.Coupon.Code
	}
	return totals, nil
}
