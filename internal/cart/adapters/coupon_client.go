package adapters

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/cart/domain"
	"storefront/internal/pricing"
	"storefront/pkg/backend"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/logger"
)

const defaultCouponRejection = "Invalid coupon code"

// BackendCouponClient implements CouponClient against POST /coupons/apply
type BackendCouponClient struct {
	client *backend.Client
	log    *logger.Logger
}

// NewBackendCouponClient creates a new coupon client
func NewBackendCouponClient(client *backend.Client, log *logger.Logger) *BackendCouponClient {
	return &BackendCouponClient{client: client, log: log}
}

type applyCouponRequest struct {
	Code      string  `json:"code"`
	CartTotal float64 `json:"cartTotal"`
}

type applyCouponResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
}

// Apply asks the backend to validate code for a cart worth cartTotal
func (c *BackendCouponClient) Apply(ctx context.Context, code string, cartTotal decimal.Decimal) (*domain.Coupon, error) {
	var resp applyCouponResponse
	err := c.client.Post(ctx, "/coupons/apply", applyCouponRequest{
		Code:      code,
		CartTotal: cartTotal.InexactFloat64(),
	}, &resp)
	if err != nil {
		return nil, c.translate(ctx, err)
	}

	discountType, err := pricing.ParseDiscountType(resp.DiscountType)
	if err != nil {
		c.log.WithContext(ctx).Warn("backend returned unknown discount type",
			zap.String("code", code),
			zap.String("discount_type", resp.DiscountType),
		)
		return nil, err
	}
	if resp.DiscountValue.IsNegative() {
		return nil, apperrors.NewValidation(defaultCouponRejection, nil)
	}

	if resp.Code == "" {
		resp.Code = code
	}
	return &domain.Coupon{
		ID:            resp.ID,
		Code:          resp.Code,
		DiscountType:  discountType,
		DiscountValue: resp.DiscountValue,
	}, nil
}

// translate turns a backend rejection into the shopper-facing error
func (c *BackendCouponClient) translate(ctx context.Context, err error) error {
	if apperrors.Is(err, apperrors.CodeUnavailable) {
		return err
	}

	be, ok := backend.AsError(err)
	if ok && be.Status < http.StatusInternalServerError {
		message := be.Message
		if message == "" {
			message = defaultCouponRejection
		}
		return apperrors.NewValidation(message, nil)
	}

	c.log.WithContext(ctx).Error("coupon validation failed", zap.Error(err))
	return apperrors.NewUpstream("Could not validate coupon right now. Please try again.", nil)
}
