package services

import (
	"fmt"
	"log"
	"time"

	"pclstore/internal/cart"
	"pclstore/internal/models"
	"pclstore/internal/repositories"
	"pclstore/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentGateway abstracts the hosted payment-intent API. It accepts an
// amount in minor currency units and returns the client secret the frontend
// needs to complete the payment, plus the gateway's intent id for webhook
// correlation.
type PaymentGateway interface {
	CreateIntent(amountMinorUnits int64, currency string) (clientSecret string, intentID string, err error)
}

// OrderEventPublisher publishes order lifecycle events to the message
// broker. A nil-safe interface so checkout still works when the broker is
// down or unconfigured.
type OrderEventPublisher interface {
	PublishOrderCreated(event rabbitmq.OrderEvent) error
}

// CheckoutService turns a cart snapshot into a pending order, requests a
// payment credential for its total, and settles the order when the gateway
// confirms or rejects the payment asynchronously.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	gateway   PaymentGateway
	publisher OrderEventPublisher
	currency  string
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(orderRepo repositories.OrderRepository, gateway PaymentGateway, publisher OrderEventPublisher) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		gateway:   gateway,
		publisher: publisher,
		currency:  "eur",
	}
}

// BeginCheckout freezes the cart snapshot into a pending order and requests
// a payment intent for its total. It returns the recorded order and the
// gateway client secret.
func (s *CheckoutService) BeginCheckout(cartID, email string, snap cart.Snapshot) (*models.Order, string, error) {
	if snap.IsEmpty() {
		return nil, "", fmt.Errorf("cannot check out an empty cart")
	}

	// The gateway wants minor units (euro cents).
	amount := snap.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	clientSecret, intentID, err := s.gateway.CreateIntent(amount, s.currency)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	items := make([]models.OrderItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			Color:     item.Color,
			Size:      item.Size,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		CartID:          cartID,
		Email:           email,
		Items:           items,
		Subtotal:        snap.Subtotal,
		Shipping:        snap.Shipping,
		Tax:             snap.Tax,
		DiscountAmount:  snap.DiscountAmount,
		Total:           snap.Total,
		CouponCode:      snap.CouponCode,
		Status:          "pending",
		PaymentIntentID: intentID,
		PaymentStatus:   "pending",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, "", fmt.Errorf("failed to record order: %w", err)
	}

	return order, clientSecret, nil
}

// ConfirmPayment settles the order referenced by a payment intent once the
// gateway reports the outcome. On success the order moves to processing and
// an order-created event is published for downstream consumers (email
// confirmation, fulfilment). The settled order is returned so the caller
// can clear the originating cart.
func (s *CheckoutService) ConfirmPayment(intentID string, succeeded bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByPaymentIntentID(intentID)
	if err != nil {
		return nil, fmt.Errorf("payment confirmation for unknown intent %s: %w", intentID, err)
	}

	if !succeeded {
		if err := s.orderRepo.UpdatePaymentStatus(order.ID, "failed"); err != nil {
			return nil, err
		}
		order.PaymentStatus = "failed"
		return order, nil
	}

	if err := s.orderRepo.UpdatePaymentStatus(order.ID, "completed"); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(order.ID, "processing"); err != nil {
		return nil, err
	}
	order.PaymentStatus = "completed"
	order.Status = "processing"

	if s.publisher != nil {
		event := rabbitmq.OrderEvent{
			OrderID:    order.ID,
			CartID:     order.CartID,
			Email:      order.Email,
			Status:     order.Status,
			Total:      order.Total.StringFixed(2),
			CouponCode: order.CouponCode,
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
		} else {
			log.Printf("Successfully published order created event for order %s", order.ID)
		}
	} else {
		log.Println("Order event publisher is not initialized. Skipping message publication.")
	}

	return order, nil
}

// GetAllOrders retrieves all orders.
func (s *CheckoutService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *CheckoutService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus updates the fulfilment status of an existing order.
func (s *CheckoutService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{"pending": true, "processing": true, "shipped": true, "delivered": true, "cancelled": true}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
