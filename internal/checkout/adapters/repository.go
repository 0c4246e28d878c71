package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/checkout/domain"
	apperrors "storefront/pkg/errors"
)

// AttemptModel is the GORM model for checkout attempts (persistence layer)
type AttemptModel struct {
	ID                string            `gorm:"primaryKey;size:36"`
	SessionID         string            `gorm:"size:36;index:idx_attempt_session_state;not null"`
	State             string            `gorm:"size:32;index:idx_attempt_session_state;not null"`
	OrderStatus       string            `gorm:"size:32;not null"`
	Token             int64             `gorm:"not null"`
	Subtotal          decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Discount          decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Total             decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	ChargeAmount      decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	AmountAdjusted    bool              `gorm:"not null"`
	DiscountCapped    bool              `gorm:"not null"`
	Currency          string            `gorm:"size:3;not null"`
	ShippingAddressID string            `gorm:"size:64;not null"`
	PaymentMethod     string            `gorm:"size:32;not null"`
	CouponID          string            `gorm:"size:64"`
	CouponCode        string            `gorm:"size:64"`
	CouponDiscount    decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0"`
	CustomerName      string            `gorm:"size:100"`
	CustomerEmail     string            `gorm:"size:255"`
	CustomerContact   string            `gorm:"size:32"`
	Notes             map[string]string `gorm:"serializer:json"`
	GatewayOrderID    string            `gorm:"size:64;index"`
	PaymentID         string            `gorm:"size:64"`
	Signature         string            `gorm:"size:255"`
	OrderID           string            `gorm:"size:64"`
	OrderNumber       string            `gorm:"size:64"`
	FailureStage      string            `gorm:"size:32"`
	FailureMessage    string            `gorm:"size:500"`
	Retryable         bool              `gorm:"not null"`
	RestartRequired   bool              `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (AttemptModel) TableName() string {
	return "checkout_attempts"
}

// PostgresAttemptRepository implements AttemptRepository using PostgreSQL
type PostgresAttemptRepository struct {
	db *gorm.DB
}

// NewPostgresAttemptRepository creates a new PostgreSQL attempt repository
func NewPostgresAttemptRepository(db *gorm.DB) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{db: db}
}

// Migrate runs auto-migration for the attempt model
func (r *PostgresAttemptRepository) Migrate() error {
	return r.db.AutoMigrate(&AttemptModel{})
}

// Create inserts a new attempt
func (r *PostgresAttemptRepository) Create(ctx context.Context, attempt *domain.Attempt) error {
	if err := r.db.WithContext(ctx).Create(toModel(attempt)).Error; err != nil {
		return apperrors.NewInternal("failed to create checkout attempt", err)
	}
	return nil
}

// Get retrieves an attempt by ID
func (r *PostgresAttemptRepository) Get(ctx context.Context, id string) (*domain.Attempt, error) {
	var model AttemptModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewAttemptNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get checkout attempt", result.Error)
	}

	return toDomain(&model), nil
}

// Update writes the attempt if it is still at (expectedState, expectedToken)
func (r *PostgresAttemptRepository) Update(ctx context.Context, attempt *domain.Attempt, expectedState domain.State, expectedToken int64) error {
	result := r.db.WithContext(ctx).
		Model(&AttemptModel{}).
		Where("id = ? AND state = ? AND token = ?", attempt.ID, string(expectedState), expectedToken).
		Select("*").
		Omit("id", "created_at").
		Updates(toModel(attempt))
	if result.Error != nil {
		return apperrors.NewInternal("failed to update checkout attempt", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAttemptModified
	}
	return nil
}

// HasInFlight reports whether the session has an attempt that started
// creating an order within domain.InFlightWindow
func (r *PostgresAttemptRepository) HasInFlight(ctx context.Context, sessionID string) (bool, error) {
	var count int64
	cutoff := time.Now().Add(-domain.InFlightWindow)
	result := r.db.WithContext(ctx).
		Model(&AttemptModel{}).
		Where("session_id = ? AND state = ? AND updated_at > ?", sessionID, string(domain.StateCreatingOrder), cutoff).
		Count(&count)
	if result.Error != nil {
		return false, apperrors.NewInternal("failed to count checkout attempts", result.Error)
	}
	return count > 0, nil
}

// toModel converts a domain entity to a GORM model
func toModel(a *domain.Attempt) *AttemptModel {
	model := &AttemptModel{
		ID:                a.ID,
		SessionID:         a.SessionID,
		State:             string(a.State),
		OrderStatus:       string(a.OrderStatus),
		Token:             a.Token,
		Subtotal:          a.Subtotal,
		Discount:          a.Discount,
		Total:             a.Total,
		ChargeAmount:      a.ChargeAmount,
		AmountAdjusted:    a.AmountAdjusted,
		DiscountCapped:    a.DiscountCapped,
		Currency:          a.Currency,
		ShippingAddressID: a.ShippingAddressID,
		PaymentMethod:     a.PaymentMethod,
		CustomerName:      a.Customer.Name,
		CustomerEmail:     a.Customer.Email,
		CustomerContact:   a.Customer.Contact,
		Notes:             a.Notes,
		GatewayOrderID:    a.GatewayOrderID,
		PaymentID:         a.PaymentID,
		Signature:         a.Signature,
		OrderID:           a.OrderID,
		OrderNumber:       a.OrderNumber,
		FailureStage:      string(a.FailureStage),
		FailureMessage:    a.FailureMessage,
		Retryable:         a.Retryable,
		RestartRequired:   a.RestartRequired,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.Coupon != nil {
		model.CouponID = a.Coupon.ID
		model.CouponCode = a.Coupon.Code
		model.CouponDiscount = a.Coupon.DiscountAmount
	}
	return model
}

// toDomain converts a GORM model to a domain entity
func toDomain(m *AttemptModel) *domain.Attempt {
	a := &domain.Attempt{
		ID:                m.ID,
		SessionID:         m.SessionID,
		State:             domain.State(m.State),
		OrderStatus:       domain.OrderStatus(m.OrderStatus),
		Token:             m.Token,
		Subtotal:          m.Subtotal,
		Discount:          m.Discount,
		Total:             m.Total,
		ChargeAmount:      m.ChargeAmount,
		AmountAdjusted:    m.AmountAdjusted,
		DiscountCapped:    m.DiscountCapped,
		Currency:          m.Currency,
		ShippingAddressID: m.ShippingAddressID,
		PaymentMethod:     m.PaymentMethod,
		Customer: domain.Customer{
			Name:    m.CustomerName,
			Email:   m.CustomerEmail,
			Contact: m.CustomerContact,
		},
		Notes:           m.Notes,
		GatewayOrderID:  m.GatewayOrderID,
		PaymentID:       m.PaymentID,
		Signature:       m.Signature,
		OrderID:         m.OrderID,
		OrderNumber:     m.OrderNumber,
		FailureStage:    domain.FailureStage(m.FailureStage),
		FailureMessage:  m.FailureMessage,
		Retryable:       m.Retryable,
		RestartRequired: m.RestartRequired,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.CouponCode != "" {
		a.Coupon = &domain.CouponSnapshot{
			ID:             m.CouponID,
			Code:           m.CouponCode,
			DiscountAmount: m.CouponDiscount,
		}
	}
	return a
}
