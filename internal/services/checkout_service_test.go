package services_test

import (
	"testing"

	"pclstore/internal/cart"
	"pclstore/internal/repositories"
	"pclstore/internal/services"
	"pclstore/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentGateway is a mock implementation of services.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(amountMinorUnits int64, currency string) (string, string, error) {
	args := m.Called(amountMinorUnits, currency)
	return args.String(0), args.String(1), args.Error(2)
}

// MockOrderEventPublisher is a mock implementation of services.OrderEventPublisher
type MockOrderEventPublisher struct {
	mock.Mock
}

func (m *MockOrderEventPublisher) PublishOrderCreated(event rabbitmq.OrderEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func checkoutSnapshot() cart.Snapshot {
	items := []cart.LineItem{
		{ID: "var-cup-drop-green", Name: "Cup Drop", UnitPrice: decimal.RequireFromString("25.00"), Quantity: 4, Color: "verde"},
	}
	coupon := &cart.Coupon{Code: "SCONTO10", DiscountAmount: decimal.RequireFromString("10.00")}
	totals := cart.CalculateTotals(items, coupon, cart.DefaultPolicy())
	return cart.Snapshot{Items: items, CouponCode: coupon.Code, Totals: totals}
}

func TestCheckoutService_BeginCheckout(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, gateway, nil)

	snap := checkoutSnapshot()
	// 100 subtotal - 10 coupon = 90, tax 19.80, free shipping: 109.80 eur
	// becomes 10980 cents at the gateway.
	gateway.On("CreateIntent", int64(10980), "eur").Return("cs_test_secret", "pi_test_1", nil)

	order, clientSecret, err := service.BeginCheckout("cart-1", "anna@example.com", snap)

	assert.NoError(t, err)
	assert.Equal(t, "cs_test_secret", clientSecret)
	assert.Equal(t, "cart-1", order.CartID)
	assert.Equal(t, "anna@example.com", order.Email)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.Equal(t, "pi_test_1", order.PaymentIntentID)
	assert.Equal(t, "SCONTO10", order.CouponCode)
	assert.True(t, decimal.RequireFromString("109.80").Equal(order.Total))
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "var-cup-drop-green", order.Items[0].ProductID)
	assert.Equal(t, 4, order.Items[0].Quantity)

	stored, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.PaymentIntentID, stored.PaymentIntentID)

	gateway.AssertExpectations(t)
}

func TestCheckoutService_BeginCheckout_EmptyCart(t *testing.T) {
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(repositories.NewMockOrderRepository(), gateway, nil)

	_, _, err := service.BeginCheckout("cart-1", "anna@example.com", cart.Snapshot{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty cart")
	gateway.AssertNotCalled(t, "CreateIntent")
}

func TestCheckoutService_BeginCheckout_GatewayFailure(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, gateway, nil)

	gateway.On("CreateIntent", mock.Anything, mock.Anything).Return("", "", assert.AnError)

	_, _, err := service.BeginCheckout("cart-1", "anna@example.com", checkoutSnapshot())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create payment intent")

	// No order is recorded without a payment credential.
	orders, _ := orderRepo.GetAll()
	assert.Empty(t, orders)
}

func TestCheckoutService_ConfirmPayment_Success(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	gateway := new(MockPaymentGateway)
	publisher := new(MockOrderEventPublisher)
	service := services.NewCheckoutService(orderRepo, gateway, publisher)

	gateway.On("CreateIntent", mock.Anything, mock.Anything).Return("cs_test_secret", "pi_test_1", nil)
	created, _, err := service.BeginCheckout("cart-1", "anna@example.com", checkoutSnapshot())
	assert.NoError(t, err)

	publisher.On("PublishOrderCreated", mock.MatchedBy(func(event rabbitmq.OrderEvent) bool {
		return event.OrderID == created.ID && event.Status == "processing" && event.Total == "109.80"
	})).Return(nil)

	order, err := service.ConfirmPayment("pi_test_1", true)

	assert.NoError(t, err)
	assert.Equal(t, "completed", order.PaymentStatus)
	assert.Equal(t, "processing", order.Status)
	assert.Equal(t, "cart-1", order.CartID)

	stored, _ := orderRepo.GetByID(created.ID)
	assert.Equal(t, "completed", stored.PaymentStatus)
	assert.Equal(t, "processing", stored.Status)

	publisher.AssertExpectations(t)
}

func TestCheckoutService_ConfirmPayment_Failure(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	gateway := new(MockPaymentGateway)
	publisher := new(MockOrderEventPublisher)
	service := services.NewCheckoutService(orderRepo, gateway, publisher)

	gateway.On("CreateIntent", mock.Anything, mock.Anything).Return("cs_test_secret", "pi_test_1", nil)
	created, _, err := service.BeginCheckout("cart-1", "anna@example.com", checkoutSnapshot())
	assert.NoError(t, err)

	order, err := service.ConfirmPayment("pi_test_1", false)

	assert.NoError(t, err)
	assert.Equal(t, "failed", order.PaymentStatus)
	assert.Equal(t, "pending", order.Status, "a failed payment must not advance fulfilment")

	stored, _ := orderRepo.GetByID(created.ID)
	assert.Equal(t, "failed", stored.PaymentStatus)

	publisher.AssertNotCalled(t, "PublishOrderCreated")
}

func TestCheckoutService_ConfirmPayment_UnknownIntent(t *testing.T) {
	service := services.NewCheckoutService(repositories.NewMockOrderRepository(), new(MockPaymentGateway), nil)

	_, err := service.ConfirmPayment("pi_missing", true)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown intent")
}

func TestCheckoutService_UpdateOrderStatus(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, gateway, nil)

	gateway.On("CreateIntent", mock.Anything, mock.Anything).Return("cs_test_secret", "pi_test_1", nil)
	created, _, err := service.BeginCheckout("cart-1", "anna@example.com", checkoutSnapshot())
	assert.NoError(t, err)

	assert.NoError(t, service.UpdateOrderStatus(created.ID, "shipped"))
	stored, _ := orderRepo.GetByID(created.ID)
	assert.Equal(t, "shipped", stored.Status)

	err = service.UpdateOrderStatus(created.ID, "teleported")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
}
