package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/cart/domain"
	"storefront/internal/pricing"
	apperrors "storefront/pkg/errors"
)

// CartModel is the GORM model for carts (persistence layer)
type CartModel struct {
	SessionID     string          `gorm:"primaryKey;size:36"`
	CouponID      string          `gorm:"size:64"`
	CouponCode    string          `gorm:"size:64"`
	DiscountType  string          `gorm:"size:16"`
	DiscountValue decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Version       int64           `gorm:"not null"`
	Items         []CartItemModel `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is the GORM model for cart lines
type CartItemModel struct {
	ID            string          `gorm:"primaryKey;size:36"`
	SessionID     string          `gorm:"size:36;index;not null"`
	ProductID     string          `gorm:"size:64;not null"`
	ProductName   string          `gorm:"size:255"`
	VariantID     string          `gorm:"size:64;not null"`
	Flavor        string          `gorm:"size:100"`
	Weight        string          `gorm:"size:50"`
	StockQuantity int
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	AddedAt       time.Time
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// PostgresCartRepository implements CartRepository using PostgreSQL
type PostgresCartRepository struct {
	db *gorm.DB
}

// NewPostgresCartRepository creates a new PostgreSQL cart repository
func NewPostgresCartRepository(db *gorm.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

// Migrate runs auto-migration for the cart models
func (r *PostgresCartRepository) Migrate() error {
	return r.db.AutoMigrate(&CartModel{}, &CartItemModel{})
}

// Get retrieves the cart of a session
func (r *PostgresCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var model CartModel

	result := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC")
		}).
		First(&model, "session_id = ?", sessionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, apperrors.NewInternal("failed to get cart", result.Error)
	}

	return toDomain(&model), nil
}

// Save writes the cart and replaces its lines, provided nobody else wrote
// it since expectedVersion was read
func (r *PostgresCartRepository) Save(ctx context.Context, cart *domain.Cart, expectedVersion int64) error {
	model := toModel(cart)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if expectedVersion == 0 {
			if err := tx.Omit("Items").Create(model).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return domain.ErrCartModified
				}
				return err
			}
		} else {
			result := tx.Model(&CartModel{}).
				Where("session_id = ? AND version = ?", model.SessionID, expectedVersion).
				Updates(map[string]interface{}{
					"coupon_id":      model.CouponID,
					"coupon_code":    model.CouponCode,
					"discount_type":  model.DiscountType,
					"discount_value": model.DiscountValue,
					"version":        model.Version,
					"updated_at":     model.UpdatedAt,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domain.ErrCartModified
			}
		}

		if err := tx.Where("session_id = ?", model.SessionID).Delete(&CartItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	if err != nil {
		if apperrors.Is(err, apperrors.CodeConflict) {
			return err
		}
		return apperrors.NewInternal("failed to save cart", err)
	}

	return nil
}

// Delete removes the cart of a session
func (r *PostgresCartRepository) Delete(ctx context.Context, sessionID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&CartItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).Delete(&CartModel{}).Error
	})
	if err != nil {
		return apperrors.NewInternal("failed to delete cart", err)
	}
	return nil
}

// toModel converts a domain entity to a GORM model
func toModel(cart *domain.Cart) *CartModel {
	model := &CartModel{
		SessionID: cart.SessionID,
		Version:   cart.Version,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}
	if cart.Coupon != nil {
		model.CouponID = cart.Coupon.ID
		model.CouponCode = cart.Coupon.Code
		model.DiscountType = string(cart.Coupon.DiscountType)
		model.DiscountValue = cart.Coupon.DiscountValue
	}

	model.Items = make([]CartItemModel, len(cart.Items))
	for i, item := range cart.Items {
		model.Items[i] = CartItemModel{
			ID:            item.ID,
			SessionID:     cart.SessionID,
			ProductID:     item.Variant.ProductID,
			ProductName:   item.Variant.ProductName,
			VariantID:     item.Variant.VariantID,
			Flavor:        item.Variant.Flavor,
			Weight:        item.Variant.Weight,
			StockQuantity: item.Variant.StockQuantity,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			AddedAt:       item.AddedAt,
		}
	}
	return model
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *CartModel) *domain.Cart {
	cart := &domain.Cart{
		SessionID: model.SessionID,
		Version:   model.Version,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.CouponCode != "" {
		cart.Coupon = &domain.Coupon{
			ID:            model.CouponID,
			Code:          model.CouponCode,
			DiscountType:  pricing.DiscountType(model.DiscountType),
			DiscountValue: model.DiscountValue,
		}
	}

	for _, item := range model.Items {
		cart.Items = append(cart.Items, domain.LineItem{
			ID: item.ID,
			Variant: domain.ProductVariant{
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				VariantID:     item.VariantID,
				Flavor:        item.Flavor,
				Weight:        item.Weight,
				StockQuantity: item.StockQuantity,
			},
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			AddedAt:   item.AddedAt,
		})
	}
	return cart
}
