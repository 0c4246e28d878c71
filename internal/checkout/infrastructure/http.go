package infrastructure

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cartinfra "storefront/internal/cart/infrastructure"
	"storefront/internal/checkout/application"
	"storefront/internal/checkout/domain"
	"storefront/pkg/errors"
	"storefront/pkg/middleware"
)

// AdjustmentNote tells the shopper the amount was raised to the minimum
const AdjustmentNote = "Minimum payable amount is ₹1. Your order total has been adjusted."

// HTTPHandler handles HTTP requests for checkout
type HTTPHandler struct {
	useCase *application.CheckoutUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.CheckoutUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the checkout routes. The group must run
// middleware.Session.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("/quote", h.Quote)
		checkout.POST("/attempts", h.StartCheckout)
		checkout.GET("/attempts/:id", h.GetAttempt)
		checkout.POST("/attempts/:id/payment", h.ConfirmPayment)
		checkout.POST("/attempts/:id/dismiss", h.DismissPayment)
		checkout.POST("/attempts/:id/retry", h.RetryPayment)
		checkout.POST("/attempts/:id/widget-failure", h.ReportWidgetFailure)
	}
}

// QuoteRequest is the request body for pricing a checkout
type QuoteRequest struct {
	AddressID string `json:"address_id"`
}

// QuoteResponse is the amount the shopper will be charged
type QuoteResponse struct {
	Totals          cartinfra.TotalsResponse `json:"totals"`
	ChargeAmount    string                   `json:"charge_amount" example:"800.00"`
	AmountAdjusted  bool                     `json:"amount_adjusted"`
	AdjustmentNote  string                   `json:"adjustment_note,omitempty"`
	Currency        string                   `json:"currency" example:"INR"`
	ItemCount       int                      `json:"item_count"`
	AddressSelected bool                     `json:"address_selected"`
}

// StartCheckoutRequest is the request body for starting a checkout
type StartCheckoutRequest struct {
	AddressID             string            `json:"address_id"`
	PaymentMethod         string            `json:"payment_method" example:"online"`
	AcknowledgeAdjustment bool              `json:"acknowledge_adjustment"`
	Customer              domain.Customer   `json:"customer"`
	Notes                 map[string]string `json:"notes"`
}

// PaymentCallbackRequest is the payment widget's success callback. Both
// spellings of each field are accepted.
type PaymentCallbackRequest struct {
	OrderIDSnake   string `json:"razorpay_order_id"`
	PaymentIDSnake string `json:"razorpay_payment_id"`
	SignatureSnake string `json:"razorpay_signature"`
	OrderID        string `json:"razorpayOrderId"`
	PaymentID      string `json:"razorpayPaymentId"`
	Signature      string `json:"razorpaySignature"`
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// WidgetFailureRequest is the request body for reporting a widget failure
type WidgetFailureRequest struct {
	Reason string `json:"reason"`
}

// FailureResponse explains a failed attempt
type FailureResponse struct {
	Stage           string `json:"stage"`
	Message         string `json:"message"`
	Retryable       bool   `json:"retryable"`
	RestartRequired bool   `json:"restart_required"`
}

// AttemptResponse is the response body for attempt operations
type AttemptResponse struct {
	ID             string                     `json:"id"`
	State          string                     `json:"state" example:"AWAITING_GATEWAY"`
	OrderStatus    string                     `json:"order_status" example:"AWAITING_PAYMENT"`
	Subtotal       string                     `json:"subtotal"`
	Discount       string                     `json:"discount"`
	Total          string                     `json:"total"`
	ChargeAmount   string                     `json:"charge_amount"`
	AmountAdjusted bool                       `json:"amount_adjusted"`
	AdjustmentNote string                     `json:"adjustment_note,omitempty"`
	Currency       string                     `json:"currency"`
	CouponCode     string                     `json:"coupon_code,omitempty"`
	GatewayOrderID string                     `json:"gateway_order_id,omitempty"`
	OrderID        string                     `json:"order_id,omitempty"`
	OrderNumber    string                     `json:"order_number,omitempty"`
	Failure        *FailureResponse           `json:"failure,omitempty"`
	Widget         *application.WidgetOptions `json:"widget,omitempty"`
	UpdatedAt      string                     `json:"updated_at"`
}

// RedirectResponse tells the client where to go and when
type RedirectResponse struct {
	To           string `json:"to" example:"/orders"`
	AfterSeconds int    `json:"after_seconds" example:"3"`
}

// ConfirmPaymentResponse is a placed order
type ConfirmPaymentResponse struct {
	AttemptResponse
	Redirect RedirectResponse `json:"redirect"`
}

func newAttemptResponse(a *domain.Attempt, widget *application.WidgetOptions) AttemptResponse {
	resp := AttemptResponse{
		ID:             a.ID,
		State:          string(a.State),
		OrderStatus:    string(a.OrderStatus),
		Subtotal:       a.Subtotal.StringFixed(2),
		Discount:       a.Discount.StringFixed(2),
		Total:          a.Total.StringFixed(2),
		ChargeAmount:   a.ChargeAmount.StringFixed(2),
		AmountAdjusted: a.AmountAdjusted,
		Currency:       a.Currency,
		GatewayOrderID: a.GatewayOrderID,
		OrderID:        a.OrderID,
		OrderNumber:    a.OrderNumber,
		Widget:         widget,
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
	if a.AmountAdjusted {
		resp.AdjustmentNote = AdjustmentNote
	}
	if a.Coupon != nil {
		resp.CouponCode = a.Coupon.Code
	}
	if a.State == domain.StateFailed {
		resp.Failure = &FailureResponse{
			Stage:           string(a.FailureStage),
			Message:         a.FailureMessage,
			Retryable:       a.Retryable,
			RestartRequired: a.RestartRequired,
		}
	}
	return resp
}

func (h *HTTPHandler) respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"data":     data,
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

func (h *HTTPHandler) attemptInput(c *gin.Context) application.AttemptInput {
	return application.AttemptInput{
		AttemptID: c.Param("id"),
		SessionID: c.GetString(middleware.SessionIDKey),
	}
}

// Quote handles POST /checkout/quote
//
//	@Summary	Price the cart for checkout without side effects
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		body	body		QuoteRequest	false	"selected address"
//	@Success	200		{object}	QuoteResponse
//	@Failure	400		{object}	errors.ErrorResponse
//	@Router		/checkout/quote [post]
func (h *HTTPHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(errors.NewValidation("invalid request body", err.Error()))
			return
		}
	}

	out, err := h.useCase.Quote(c.Request.Context(), application.QuoteInput{
		SessionID: c.GetString(middleware.SessionIDKey),
		AddressID: req.AddressID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	resp := QuoteResponse{
		Totals:          cartinfra.NewTotalsResponse(out.Totals),
		ChargeAmount:    out.ChargeAmount.StringFixed(2),
		AmountAdjusted:  out.AmountAdjusted,
		Currency:        out.Currency,
		ItemCount:       out.ItemCount,
		AddressSelected: out.AddressSelected,
	}
	if out.AmountAdjusted {
		resp.AdjustmentNote = AdjustmentNote
	}
	h.respond(c, http.StatusOK, resp)
}

// StartCheckout handles POST /checkout/attempts
//
//	@Summary	Create the gateway order and get payment widget options
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		body	body		StartCheckoutRequest	true	"checkout details"
//	@Success	201		{object}	AttemptResponse
//	@Failure	400		{object}	errors.ErrorResponse
//	@Failure	409		{object}	errors.ErrorResponse
//	@Failure	502		{object}	errors.ErrorResponse
//	@Router		/checkout/attempts [post]
func (h *HTTPHandler) StartCheckout(c *gin.Context) {
	var req StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	out, err := h.useCase.StartCheckout(c.Request.Context(), application.StartCheckoutInput{
		SessionID:             c.GetString(middleware.SessionIDKey),
		AddressID:             req.AddressID,
		PaymentMethod:         req.PaymentMethod,
		AcknowledgeAdjustment: req.AcknowledgeAdjustment,
		Customer:              req.Customer,
		Notes:                 req.Notes,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusCreated, newAttemptResponse(out.Attempt, out.Widget))
}

// GetAttempt handles GET /checkout/attempts/:id
//
//	@Summary	Read a checkout attempt
//	@Tags		checkout
//	@Produce	json
//	@Param		id	path		string	true	"attempt id"
//	@Success	200	{object}	AttemptResponse
//	@Failure	404	{object}	errors.ErrorResponse
//	@Router		/checkout/attempts/{id} [get]
func (h *HTTPHandler) GetAttempt(c *gin.Context) {
	out, err := h.useCase.GetAttempt(c.Request.Context(), h.attemptInput(c))
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, newAttemptResponse(out.Attempt, out.Widget))
}

// ConfirmPayment handles POST /checkout/attempts/:id/payment
//
//	@Summary	Verify the payment widget callback and place the order
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"attempt id"
//	@Param		body	body		PaymentCallbackRequest	true	"gateway callback"
//	@Success	200		{object}	ConfirmPaymentResponse
//	@Failure	400		{object}	errors.ErrorResponse
//	@Failure	409		{object}	errors.ErrorResponse	"ORDER_CANCELLED: restart checkout"
//	@Failure	502		{object}	errors.ErrorResponse
//	@Router		/checkout/attempts/{id}/payment [post]
func (h *HTTPHandler) ConfirmPayment(c *gin.Context) {
	var req PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	out, err := h.useCase.ConfirmPayment(c.Request.Context(), application.ConfirmPaymentInput{
		AttemptID:      c.Param("id"),
		SessionID:      c.GetString(middleware.SessionIDKey),
		GatewayOrderID: firstOf(req.OrderIDSnake, req.OrderID),
		PaymentID:      firstOf(req.PaymentIDSnake, req.PaymentID),
		Signature:      firstOf(req.SignatureSnake, req.Signature),
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, ConfirmPaymentResponse{
		AttemptResponse: newAttemptResponse(out.Attempt, nil),
		Redirect: RedirectResponse{
			To:           out.RedirectTo,
			AfterSeconds: int(out.RedirectAfter / time.Second),
		},
	})
}

// DismissPayment handles POST /checkout/attempts/:id/dismiss
//
//	@Summary	Record that the shopper closed the payment widget
//	@Tags		checkout
//	@Produce	json
//	@Param		id	path		string	true	"attempt id"
//	@Success	200	{object}	AttemptResponse
//	@Failure	409	{object}	errors.ErrorResponse
//	@Router		/checkout/attempts/{id}/dismiss [post]
func (h *HTTPHandler) DismissPayment(c *gin.Context) {
	out, err := h.useCase.DismissPayment(c.Request.Context(), h.attemptInput(c))
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, newAttemptResponse(out.Attempt, nil))
}

// RetryPayment handles POST /checkout/attempts/:id/retry
//
//	@Summary	Reopen the payment widget for a dismissed attempt
//	@Tags		checkout
//	@Produce	json
//	@Param		id	path		string	true	"attempt id"
//	@Success	200	{object}	AttemptResponse
//	@Failure	409	{object}	errors.ErrorResponse
//	@Router		/checkout/attempts/{id}/retry [post]
func (h *HTTPHandler) RetryPayment(c *gin.Context) {
	out, err := h.useCase.RetryPayment(c.Request.Context(), h.attemptInput(c))
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, newAttemptResponse(out.Attempt, out.Widget))
}

// ReportWidgetFailure handles POST /checkout/attempts/:id/widget-failure
//
//	@Summary	Report that the payment widget failed to load
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"attempt id"
//	@Param		body	body		WidgetFailureRequest	false	"reason"
//	@Success	200		{object}	AttemptResponse
//	@Router		/checkout/attempts/{id}/widget-failure [post]
func (h *HTTPHandler) ReportWidgetFailure(c *gin.Context) {
	var req WidgetFailureRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(errors.NewValidation("invalid request body", err.Error()))
			return
		}
	}

	out, err := h.useCase.ReportWidgetFailure(c.Request.Context(), application.WidgetFailureInput{
		AttemptID: c.Param("id"),
		SessionID: c.GetString(middleware.SessionIDKey),
		Reason:    req.Reason,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.respond(c, http.StatusOK, newAttemptResponse(out.Attempt, nil))
}
