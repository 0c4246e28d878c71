package infrastructure

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront/internal/cart/application"
	"storefront/internal/cart/domain"
	"storefront/internal/pricing"
	"storefront/pkg/errors"
	"storefront/pkg/middleware"
)

// DiscountCappedNote is shown next to a discount that hit the cap
const DiscountCappedNote = "*Maximum discount capped at 90%"

// HTTPHandler handles HTTP requests for the cart
type HTTPHandler struct {
	useCase *application.CartUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.CartUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the cart routes. The group must run
// middleware.Session.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	cart := r.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.DELETE("", h.ClearCart)
		cart.GET("/totals", h.GetTotals)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:id", h.UpdateQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.POST("/coupon", h.ApplyCoupon)
		cart.DELETE("/coupon", h.RemoveCoupon)
	}
}

// AddItemRequest is the request body for adding a variant. StockQuantity
// and UnitPrice are the product page's snapshot: they drive cart display
// and the local stock check, while the commerce backend prices the order.
type AddItemRequest struct {
	ProductID     string          `json:"product_id" binding:"required"`
	ProductName   string          `json:"product_name" binding:"required"`
	VariantID     string          `json:"variant_id" binding:"required"`
	Flavor        string          `json:"flavor"`
	Weight        string          `json:"weight"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" swaggertype:"string" example:"499.00"`
	Quantity      int             `json:"quantity" binding:"required,min=1"`
}

// UpdateQuantityRequest is the request body for changing a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ApplyCouponRequest is the request body for applying a coupon
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// TotalsResponse is the price breakdown of a cart, amounts in rupees
type TotalsResponse struct {
	Subtotal       string `json:"subtotal" example:"1000.00"`
	Discount       string `json:"discount" example:"200.00"`
	Shipping       string `json:"shipping" example:"0.00"`
	Total          string `json:"total" example:"800.00"`
	DiscountCapped bool   `json:"discount_capped"`
	DiscountNote   string `json:"discount_note,omitempty"`
}

// NewTotalsResponse renders totals for the API
func NewTotalsResponse(t pricing.Totals) TotalsResponse {
	resp := TotalsResponse{
		Subtotal:       t.Subtotal.StringFixed(2),
		Discount:       t.Discount.StringFixed(2),
		Shipping:       t.Shipping.StringFixed(2),
		Total:          t.Total.StringFixed(2),
		DiscountCapped: t.DiscountCapped,
	}
	if t.DiscountCapped {
		resp.DiscountNote = DiscountCappedNote
	}
	return resp
}

// LineItemResponse is one cart line
type LineItemResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	VariantID     string `json:"variant_id"`
	Flavor        string `json:"flavor,omitempty"`
	Weight        string `json:"weight,omitempty"`
	StockQuantity int    `json:"stock_quantity"`
	Quantity      int    `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Subtotal      string `json:"subtotal"`
	AddedAt       string `json:"added_at"`
}

// CouponResponse is the applied coupon
type CouponResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue string `json:"discount_value"`
}

// CartResponse is the response body for cart operations
type CartResponse struct {
	SessionID     string             `json:"session_id"`
	Version       int64              `json:"version"`
	Items         []LineItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	Coupon        *CouponResponse    `json:"coupon,omitempty"`
	Totals        TotalsResponse     `json:"totals"`
}

func newCartResponse(out *application.CartOutput) CartResponse {
	resp := CartResponse{
		SessionID:     out.Cart.SessionID,
		Version:       out.Cart.Version,
		Items:         make([]LineItemResponse, 0, len(out.Cart.Items)),
		TotalQuantity: out.Cart.TotalQuantity(),
		Totals:        NewTotalsResponse(out.Totals),
	}
	for _, item := range out.Cart.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			ID:            item.ID,
			ProductID:     item.Variant.ProductID,
			ProductName:   item.Variant.ProductName,
			VariantID:     item.Variant.VariantID,
			Flavor:        item.Variant.Flavor,
			Weight:        item.Variant.Weight,
			StockQuantity: item.Variant.StockQuantity,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice.StringFixed(2),
			Subtotal:      item.Subtotal().StringFixed(2),
			AddedAt:       item.AddedAt.Format(time.RFC3339),
		})
	}
	if c := out.Cart.Coupon; c != nil {
		resp.Coupon = &CouponResponse{
			ID:            c.ID,
			Code:          c.Code,
			DiscountType:  string(c.DiscountType),
			DiscountValue: c.DiscountValue.String(),
		}
	}
	return resp
}

func (h *HTTPHandler) respond(c *gin.Context, status int, out *application.CartOutput) {
	c.JSON(status, gin.H{
		"data":     newCartResponse(out),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// GetCart handles GET /cart
//
//	@Summary	Get the session's cart
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	false	"shopper session"
//	@Success	200				{object}	CartResponse
//	@Router		/cart [get]
func (h *HTTPHandler) GetCart(c *gin.Context) {
	out, err := h.useCase.GetCart(c.Request.Context(), application.GetCartInput{
		SessionID: c.GetString(middleware.SessionIDKey),
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, out)
}

// GetTotals handles GET /cart/totals
//
//	@Summary	Price the session's cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	TotalsResponse
//	@Router		/cart/totals [get]
func (h *HTTPHandler) GetTotals(c *gin.Context) {
	out, err := h.useCase.GetTotals(c.Request.Context(), application.GetCartInput{
		SessionID: c.GetString(middleware.SessionIDKey),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"version":        out.Version,
			"total_quantity": out.TotalQuantity,
			"coupon_code":    out.CouponCode,
			"totals":         NewTotalsResponse(out.Totals),
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// AddItem handles POST /cart/items
//
//	@Summary	Add a product variant to the cart
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		body	body		AddItemRequest	true	"variant snapshot"
//	@Success	201		{object}	CartResponse
//	@Failure	400		{object}	errors.ErrorResponse
//	@Router		/cart/items [post]
func (h *HTTPHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	out, err := h.useCase.AddItem(c.Request.Context(), application.AddItemInput{
		SessionID: c.GetString(middleware.SessionIDKey),
		Variant: domain.ProductVariant{
			ProductID:     req.ProductID,
			ProductName:   req.ProductName,
			VariantID:     req.VariantID,
			Flavor:        req.Flavor,
			Weight:        req.Weight,
			StockQuantity: req.StockQuantity,
		},
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusCreated, out)
}

// UpdateQuantity handles PATCH /cart/items/:id
//
//	@Summary	Change the quantity of a cart line
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"line item id"
//	@Param		body	body		UpdateQuantityRequest	true	"new quantity"
//	@Success	200		{object}	CartResponse
//	@Failure	400		{object}	errors.ErrorResponse
//	@Failure	404		{object}	errors.ErrorResponse
//	@Router		/cart/items/{id} [patch]
func (h *HTTPHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	out, err := h.useCase.UpdateQuantity(c.Request.Context(), application.UpdateQuantityInput{
		SessionID: c.GetString(middleware.SessionIDKey),
		ItemID:    c.Param("id"),
		Quantity:  req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, out)
}

// RemoveItem handles DELETE /cart/items/:id
//
//	@Summary	Remove a cart line
//	@Tags		cart
//	@Produce	json
//	@Param		id	path		string	true	"line item id"
//	@Success	200	{object}	CartResponse
//	@Failure	404	{object}	errors.ErrorResponse
//	@Router		/cart/items/{id} [delete]
func (h *HTTPHandler) RemoveItem(c *gin.Context) {
	out, err := h.useCase.RemoveItem(c.Request.Context(), application.RemoveItemInput{
		SessionID: c.GetString(middleware.SessionIDKey),
		ItemID:    c.Param("id"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, out)
}

// ClearCart handles DELETE /cart
//
//	@Summary	Empty the cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [delete]
func (h *HTTPHandler) ClearCart(c *gin.Context) {
	out, err := h.useCase.ClearCart(c.Request.Context(), application.ClearCartInput{
		SessionID: c.GetString(middleware.SessionIDKey),
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, out)
}

// ApplyCoupon handles POST /cart/coupon
//
//	@Summary	Apply a coupon code, replacing any applied coupon
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ApplyCouponRequest	true	"coupon code"
//	@Success	200		{object}	CartResponse
//	@Failure	400		{object}	errors.ErrorResponse
//	@Failure	502		{object}	errors.ErrorResponse
//	@Router		/cart/coupon [post]
func (h *HTTPHandler) ApplyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	out, err := h.useCase.ApplyCoupon(c.Request.Context(), application.ApplyCouponInput{
		SessionID: c.GetString(middleware.SessionIDKey),
		Code:      req.Code,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, out)
}

// RemoveCoupon handles DELETE /cart/coupon
//
//	@Summary	Remove the applied coupon
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart/coupon [delete]
func (h *HTTPHandler) RemoveCoupon(c *gin.Context) {
	out, err := h.useCase.RemoveCoupon(c.Request.Context(), application.RemoveCouponInput{
		SessionID: c.GetString(middleware.SessionIDKey),
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, out)
}
