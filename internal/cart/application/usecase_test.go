package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart/domain"
	"storefront/internal/cart/ports"
	"storefront/internal/pricing"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

// MockCartRepository is an in-memory CartRepository with version checks
type MockCartRepository struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
	gets  int
}

func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{carts: make(map[string]*domain.Cart)}
}

func (m *MockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (m *MockCartRepository) Save(ctx context.Context, cart *domain.Cart, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.carts[cart.SessionID]
	switch {
	case !ok && expectedVersion != 0:
		return domain.ErrCartModified
	case ok && stored.Version != expectedVersion:
		return domain.ErrCartModified
	}
	m.carts[cart.SessionID] = copyCart(cart)
	return nil
}

func (m *MockCartRepository) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

func copyCart(cart *domain.Cart) *domain.Cart {
	c := *cart
	c.Items = append([]domain.LineItem(nil), cart.Items...)
	if cart.Coupon != nil {
		coupon := *cart.Coupon
		c.Coupon = &coupon
	}
	return &c
}

// MockCartCache is an in-memory CartCache with a version floor per session.
// When holdSet is set, the next Set sends on it and then waits on it.
type MockCartCache struct {
	mu          sync.Mutex
	carts       map[string]*domain.Cart
	floors      map[string]int64
	invalidates int
	holdSet     chan struct{}
}

func NewMockCartCache() *MockCartCache {
	return &MockCartCache{
		carts:  make(map[string]*domain.Cart),
		floors: make(map[string]int64),
	}
}

func (m *MockCartCache) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[sessionID]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return copyCart(cart), nil
}

func (m *MockCartCache) Set(ctx context.Context, cart *domain.Cart) error {
	m.mu.Lock()
	hold := m.holdSet
	m.holdSet = nil
	m.mu.Unlock()
	if hold != nil {
		hold <- struct{}{}
		<-hold
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if floor, ok := m.floors[cart.SessionID]; ok && cart.Version < floor {
		return nil
	}
	m.floors[cart.SessionID] = cart.Version
	m.carts[cart.SessionID] = copyCart(cart)
	return nil
}

func (m *MockCartCache) Invalidate(ctx context.Context, sessionID string, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidates++
	if version > m.floors[sessionID] {
		m.floors[sessionID] = version
	}
	delete(m.carts, sessionID)
	return nil
}

// MockCouponClient returns preconfigured coupons by code
type MockCouponClient struct {
	coupons   map[string]*domain.Coupon
	lastTotal decimal.Decimal
	calls     int
}

func NewMockCouponClient() *MockCouponClient {
	return &MockCouponClient{
		coupons: map[string]*domain.Coupon{
			"SAVE20":   {ID: "c-20", Code: "SAVE20", DiscountType: pricing.DiscountPercentage, DiscountValue: decimal.NewFromInt(20)},
			"HUGE95":   {ID: "c-95", Code: "HUGE95", DiscountType: pricing.DiscountPercentage, DiscountValue: decimal.NewFromInt(95)},
			"FLAT1500": {ID: "c-f", Code: "FLAT1500", DiscountType: pricing.DiscountFixed, DiscountValue: decimal.NewFromInt(1500)},
		},
	}
}

func (m *MockCouponClient) Apply(ctx context.Context, code string, cartTotal decimal.Decimal) (*domain.Coupon, error) {
	m.calls++
	m.lastTotal = cartTotal
	coupon, ok := m.coupons[code]
	if !ok {
		return nil, errors.NewValidation("Invalid coupon code", nil)
	}
	c := *coupon
	return &c, nil
}

const session = "11111111-1111-1111-1111-111111111111"

func variant(id string) domain.ProductVariant {
	return domain.ProductVariant{
		ProductID:     "p-" + id,
		ProductName:   "Whey " + id,
		VariantID:     id,
		StockQuantity: 10,
	}
}

func newUseCase() (*CartUseCase, *MockCartRepository, *MockCartCache, *MockCouponClient) {
	repo := NewMockCartRepository()
	cache := NewMockCartCache()
	coupons := NewMockCouponClient()
	return NewCartUseCase(repo, cache, coupons, logger.NewNop()), repo, cache, coupons
}

func addThousand(t *testing.T, uc *CartUseCase) *CartOutput {
	t.Helper()
	out, err := uc.AddItem(context.Background(), AddItemInput{
		SessionID: session,
		Variant:   variant("v-1"),
		UnitPrice: decimal.NewFromInt(500),
		Quantity:  2,
	})
	require.NoError(t, err)
	return out
}

func TestGetCart_EmptyForUnknownSession(t *testing.T) {
	// Arrange
	uc, repo, _, _ := newUseCase()

	// Act
	out, err := uc.GetCart(context.Background(), GetCartInput{SessionID: session})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Cart.IsEmpty())
	assert.True(t, out.Totals.Total.IsZero())
	assert.Empty(t, repo.carts, "reading must not persist a cart")
}

func TestGetCart_RequiresSession(t *testing.T) {
	uc, _, _, _ := newUseCase()

	_, err := uc.GetCart(context.Background(), GetCartInput{})

	assert.ErrorIs(t, err, domain.ErrSessionRequired)
}

func TestGetCart_ServedFromCacheAfterFirstRead(t *testing.T) {
	// Arrange
	uc, repo, _, _ := newUseCase()
	addThousand(t, uc)
	repo.gets = 0

	// Act
	_, err := uc.GetCart(context.Background(), GetCartInput{SessionID: session})
	require.NoError(t, err)
	out, err := uc.GetCart(context.Background(), GetCartInput{SessionID: session})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets)
	assert.True(t, out.Totals.Subtotal.Equal(decimal.NewFromInt(1000)))
}

func TestMutation_InvalidatesCache(t *testing.T) {
	// Arrange
	uc, _, cache, _ := newUseCase()
	first := addThousand(t, uc)
	_, err := uc.GetCart(context.Background(), GetCartInput{SessionID: session})
	require.NoError(t, err)
	require.Contains(t, cache.carts, session)

	// Act
	_, err = uc.UpdateQuantity(context.Background(), UpdateQuantityInput{
		SessionID: session,
		ItemID:    first.Cart.Items[0].ID,
		Quantity:  3,
	})

	// Assert
	require.NoError(t, err)
	assert.NotContains(t, cache.carts, session)
	assert.Equal(t, 2, cache.invalidates)

	out, err := uc.GetCart(context.Background(), GetCartInput{SessionID: session})
	require.NoError(t, err)
	assert.True(t, out.Totals.Subtotal.Equal(decimal.NewFromInt(1500)))
}

func TestGetCart_SlowReaderDoesNotCacheOldVersion(t *testing.T) {
	// Arrange: a reader misses the cache and reads version 1
	uc, _, cache, _ := newUseCase()
	first := addThousand(t, uc)
	hold := make(chan struct{})
	cache.holdSet = hold

	done := make(chan *CartOutput)
	go func() {
		out, err := uc.GetCart(context.Background(), GetCartInput{SessionID: session})
		assert.NoError(t, err)
		done <- out
	}()
	<-hold

	// Act: the cart changes before the reader writes the cache
	_, err := uc.UpdateQuantity(context.Background(), UpdateQuantityInput{
		SessionID: session,
		ItemID:    first.Cart.Items[0].ID,
		Quantity:  3,
	})
	require.NoError(t, err)
	hold <- struct{}{}
	stale := <-done

	// Assert
	assert.Equal(t, int64(1), stale.Cart.Version)
	out, err := uc.GetCart(context.Background(), GetCartInput{SessionID: session})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Cart.Version)
	assert.True(t, out.Totals.Subtotal.Equal(decimal.NewFromInt(1500)))
}

func TestGetStoredCart_SkipsCache(t *testing.T) {
	// Arrange: the cache holds an older cart than the repository
	uc, repo, cache, _ := newUseCase()
	addThousand(t, uc)
	old := copyCart(repo.carts[session])
	cache.carts[session] = old
	_, err := uc.AddItem(context.Background(), AddItemInput{
		SessionID: session,
		Variant:   variant("v-2"),
		UnitPrice: decimal.NewFromInt(250),
		Quantity:  1,
	})
	require.NoError(t, err)
	cache.carts[session] = old

	// Act
	out, err := uc.GetStoredCart(context.Background(), GetCartInput{SessionID: session})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Cart.Version)
	assert.True(t, out.Totals.Subtotal.Equal(decimal.NewFromInt(1250)))
}

func TestApplyCoupon(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		discount int64
		total    int64
		capped   bool
	}{
		{name: "percentage", code: "save20", discount: 200, total: 800},
		{name: "percentage above cap", code: "HUGE95", discount: 900, total: 100, capped: true},
		{name: "fixed above cap", code: " flat1500 ", discount: 900, total: 100, capped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			uc, _, _, coupons := newUseCase()
			addThousand(t, uc)

			// Act
			out, err := uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: tt.code})

			// Assert
			require.NoError(t, err)
			assert.True(t, coupons.lastTotal.Equal(decimal.NewFromInt(1000)))
			assert.True(t, out.Totals.Discount.Equal(decimal.NewFromInt(tt.discount)), "discount %s", out.Totals.Discount)
			assert.True(t, out.Totals.Total.Equal(decimal.NewFromInt(tt.total)), "total %s", out.Totals.Total)
			assert.Equal(t, tt.capped, out.Totals.DiscountCapped)
		})
	}
}

func TestApplyCoupon_Rejected(t *testing.T) {
	// Arrange
	uc, repo, _, _ := newUseCase()
	addThousand(t, uc)
	before := repo.carts[session].Version

	// Act
	_, err := uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: "NOPE"})

	// Assert
	assert.True(t, errors.Is(err, errors.CodeValidation))
	assert.Nil(t, repo.carts[session].Coupon)
	assert.Equal(t, before, repo.carts[session].Version)
}

func TestApplyCoupon_Preconditions(t *testing.T) {
	uc, _, _, coupons := newUseCase()

	_, err := uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: "   "})
	assert.ErrorIs(t, err, domain.ErrCouponCodeRequired)

	_, err = uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: "SAVE20"})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.Zero(t, coupons.calls)
}

func TestApplyCoupon_ReplacesPrevious(t *testing.T) {
	uc, _, _, _ := newUseCase()
	addThousand(t, uc)

	_, err := uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: "SAVE20"})
	require.NoError(t, err)
	out, err := uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: "FLAT1500"})

	require.NoError(t, err)
	assert.Equal(t, "c-f", out.Cart.Coupon.ID)
	assert.True(t, out.Totals.Total.Equal(decimal.NewFromInt(100)))
}

func TestRemoveCoupon_RestoresSubtotal(t *testing.T) {
	uc, _, _, _ := newUseCase()
	addThousand(t, uc)
	_, err := uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: "SAVE20"})
	require.NoError(t, err)

	out, err := uc.RemoveCoupon(context.Background(), RemoveCouponInput{SessionID: session})

	require.NoError(t, err)
	assert.Nil(t, out.Cart.Coupon)
	assert.True(t, out.Totals.Total.Equal(decimal.NewFromInt(1000)))
}

func TestRemoveItem(t *testing.T) {
	uc, _, _, _ := newUseCase()
	first := addThousand(t, uc)

	out, err := uc.RemoveItem(context.Background(), RemoveItemInput{SessionID: session, ItemID: first.Cart.Items[0].ID})
	require.NoError(t, err)
	assert.True(t, out.Cart.IsEmpty())

	_, err = uc.RemoveItem(context.Background(), RemoveItemInput{SessionID: session, ItemID: "missing"})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestClearCart(t *testing.T) {
	// Arrange
	uc, repo, _, _ := newUseCase()
	addThousand(t, uc)
	_, err := uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: "SAVE20"})
	require.NoError(t, err)

	// Act
	out, err := uc.ClearCart(context.Background(), ClearCartInput{SessionID: session})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Cart.IsEmpty())
	assert.Nil(t, repo.carts[session].Coupon)
	assert.True(t, out.Totals.Total.IsZero())
}

// staleRepository lets one Save through with a bumped version first,
// simulating a concurrent writer
type staleRepository struct {
	*MockCartRepository
	raced bool
}

func (s *staleRepository) Save(ctx context.Context, cart *domain.Cart, expectedVersion int64) error {
	if !s.raced {
		s.raced = true
		other := copyCart(cart)
		other.Version = expectedVersion + 1
		s.carts[cart.SessionID] = other
	}
	return s.MockCartRepository.Save(ctx, cart, expectedVersion)
}

func TestMutation_LostRaceIsConflict(t *testing.T) {
	// Arrange
	repo := &staleRepository{MockCartRepository: NewMockCartRepository()}
	uc := NewCartUseCase(repo, nil, NewMockCouponClient(), logger.NewNop())

	// Act
	_, err := uc.AddItem(context.Background(), AddItemInput{
		SessionID: session,
		Variant:   variant("v-1"),
		UnitPrice: decimal.NewFromInt(10),
		Quantity:  1,
	})

	// Assert
	assert.ErrorIs(t, err, domain.ErrCartModified)
}

func TestAddItem_ValidationDoesNotPersist(t *testing.T) {
	uc, repo, _, _ := newUseCase()

	_, err := uc.AddItem(context.Background(), AddItemInput{
		SessionID: session,
		Variant:   variant("v-1"),
		UnitPrice: decimal.NewFromInt(10),
		Quantity:  0,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, repo.carts)
}

func TestGetTotals(t *testing.T) {
	uc, _, _, _ := newUseCase()
	addThousand(t, uc)
	_, err := uc.ApplyCoupon(context.Background(), ApplyCouponInput{SessionID: session, Code: "HUGE95"})
	require.NoError(t, err)

	out, err := uc.GetTotals(context.Background(), GetCartInput{SessionID: session})

	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalQuantity)
	assert.Equal(t, "HUGE95", out.CouponCode)
	assert.True(t, out.Totals.Shipping.IsZero())
	assert.True(t, out.Totals.DiscountCapped)
	assert.True(t, out.Totals.Total.Equal(decimal.NewFromInt(100)))
}
