package main

import (
	"testing"

	"pclstore/internal/models"
	"pclstore/internal/repositories"
	"pclstore/internal/services"
	"pclstore/pkg/mailer"
	"pclstore/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

// captureSender records the last email handed to it.
type captureSender struct {
	template string
	to       string
	data     interface{}
}

func (s *captureSender) Send(templateName string, to string, data interface{}) error {
	s.template = templateName
	s.to = to
	s.data = data
	return nil
}

func TestPolicyFromConfig(t *testing.T) {
	setDefaults()

	policy := policyFromConfig()

	assert.True(t, decimal.NewFromFloat(80.00).Equal(policy.FreeShippingThreshold))
	assert.True(t, decimal.NewFromFloat(7.90).Equal(policy.StandardShippingCost))
	assert.True(t, decimal.NewFromFloat(0.22).Equal(policy.TaxRate))
}

func TestPolicyFromConfigOverrides(t *testing.T) {
	setDefaults()
	viper.Set("FREE_SHIPPING_THRESHOLD", 120.00)
	viper.Set("TAX_RATE", 0.10)
	defer func() {
		viper.Set("FREE_SHIPPING_THRESHOLD", 80.00)
		viper.Set("TAX_RATE", 0.22)
	}()

	policy := policyFromConfig()

	assert.True(t, decimal.NewFromFloat(120.00).Equal(policy.FreeShippingThreshold))
	assert.True(t, decimal.NewFromFloat(0.10).Equal(policy.TaxRate))
}

func TestSeedProducts(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	seedProducts(repo)

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 3)

	variant, err := repo.GetVariantByID("var-cup-drop-green")
	assert.NoError(t, err)
	assert.Equal(t, "verde", variant.Color)
	assert.True(t, decimal.NewFromFloat(25.00).Equal(variant.Price))

	mugs, err := repo.GetByCategory("mugs")
	assert.NoError(t, err)
	assert.Len(t, mugs, 1)
	assert.Equal(t, "Mug Drop", mugs[0].Name)
}

func TestSeedProductsSkipsNonEmptyCatalog(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	seedProducts(repo)
	seedProducts(repo)

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 3, "seeding must not duplicate an existing catalog")
}

func TestSeedCoupons(t *testing.T) {
	repo := repositories.NewMockCouponRepository()

	seedCoupons(repo)
	seedCoupons(repo)

	coupon, err := repo.GetByCode("SCONTO10")
	assert.NoError(t, err)
	assert.Equal(t, "percentage", coupon.DiscountType)
	assert.True(t, decimal.NewFromInt(10).Equal(coupon.Value))
	assert.True(t, coupon.Active)
}

func TestSendOrderConfirmation(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	userRepo := repositories.NewMockUserRepository()
	checkoutService := services.NewCheckoutService(orderRepo, nil, nil)
	authService := services.NewAuthService(userRepo, "test_jwt_secret")

	assert.NoError(t, userRepo.Create(&models.User{
		Username: "anna",
		Email:    "anna@example.com",
		Password: "hash",
		Name:     "Anna Rossi",
	}))
	order := models.Order{
		ID:    "ord-1",
		Email: "anna@example.com",
		Items: []models.OrderItem{
			{ProductID: "var-cup-drop-green", Name: "Cup Drop", Color: "verde", UnitPrice: decimal.NewFromFloat(25.00), Quantity: 2},
		},
		Subtotal:       decimal.NewFromFloat(50.00),
		Shipping:       decimal.NewFromFloat(7.90),
		Tax:            decimal.NewFromFloat(11.00),
		DiscountAmount: decimal.Zero,
		Total:          decimal.NewFromFloat(68.90),
		Status:         "processing",
	}
	assert.NoError(t, orderRepo.Create(&order))

	sender := &captureSender{}
	event := rabbitmq.OrderEvent{OrderID: "ord-1", Email: "anna@example.com", Status: "paid"}

	err := sendOrderConfirmation(checkoutService, authService, sender, event)
	assert.NoError(t, err)

	assert.Equal(t, mailer.TemplateOrderConfirmation, sender.template)
	assert.Equal(t, "anna@example.com", sender.to)
	data, ok := sender.data.(mailer.OrderConfirmationData)
	if assert.True(t, ok) {
		// Registered customers are greeted by the name on their profile.
		assert.Equal(t, "Anna Rossi", data.CustomerName)
		assert.Equal(t, "ord-1", data.OrderNumber)
		assert.Equal(t, "68.90", data.Total)
		assert.Empty(t, data.Discount)
	}
}

func TestSendOrderConfirmationForGuest(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	checkoutService := services.NewCheckoutService(orderRepo, nil, nil)
	authService := services.NewAuthService(repositories.NewMockUserRepository(), "test_jwt_secret")

	order := models.Order{
		ID:       "ord-2",
		Email:    "guest@example.com",
		Subtotal: decimal.NewFromFloat(25.00),
		Shipping: decimal.NewFromFloat(7.90),
		Tax:      decimal.NewFromFloat(5.50),
		Total:    decimal.NewFromFloat(38.40),
	}
	assert.NoError(t, orderRepo.Create(&order))

	sender := &captureSender{}
	err := sendOrderConfirmation(checkoutService, authService, sender, rabbitmq.OrderEvent{OrderID: "ord-2", Email: "guest@example.com"})
	assert.NoError(t, err)

	data, ok := sender.data.(mailer.OrderConfirmationData)
	if assert.True(t, ok) {
		// No account behind the email means no personalized greeting.
		assert.Empty(t, data.CustomerName)
	}
}
