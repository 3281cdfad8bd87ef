package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"pclstore/internal/cart"
	"pclstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v82"
)

// WebhookVerifier checks the gateway signature on a webhook payload and
// returns the decoded event. Injected so tests can bypass real signatures.
type WebhookVerifier func(payload []byte, signatureHeader string) (stripe.Event, error)

// CheckoutHandler handles HTTP requests for starting a checkout and for the
// asynchronous payment confirmation webhook.
type CheckoutHandler struct {
	service  *services.CheckoutService
	carts    *cart.Manager
	verify   WebhookVerifier
	validate *validator.Validate

	cookieName string
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService, carts *cart.Manager, verify WebhookVerifier, cookieName string) *CheckoutHandler {
	return &CheckoutHandler{
		service:    service,
		carts:      carts,
		verify:     verify,
		validate:   validator.New(),
		cookieName: cookieName,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout/intent", h.HandleCreateIntent)
	router.Post("/payment/webhook", h.HandlePaymentWebhook)
}

// CreateIntentRequest is the request body for starting a checkout.
type CreateIntentRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleCreateIntent freezes the session's cart into a pending order and
// returns the payment client secret.
func (h *CheckoutHandler) HandleCreateIntent(c *fiber.Ctx) error {
	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create intent request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	cartID := c.Cookies(h.cookieName)
	if cartID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No cart found for this session",
		})
	}

	store := h.carts.Get(cartID)
	order, clientSecret, err := h.service.BeginCheckout(cartID, req.Email, store.Snapshot())
	if err != nil {
		log.Printf("Error starting checkout for cart %s: %v", cartID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not start checkout",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":      order.ID,
		"client_secret": clientSecret,
	})
}

// HandlePaymentWebhook settles orders when the payment gateway reports an
// intent outcome. A confirmed payment also clears the originating cart.
func (h *CheckoutHandler) HandlePaymentWebhook(c *fiber.Ctx) error {
	event, err := h.verify(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		log.Printf("Webhook verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid webhook signature",
		})
	}

	switch string(event.Type) {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			log.Printf("Error decoding payment intent from webhook: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Malformed webhook payload",
			})
		}

		succeeded := string(event.Type) == "payment_intent.succeeded"
		order, err := h.service.ConfirmPayment(intent.ID, succeeded)
		if err != nil {
			log.Printf("Error confirming payment for intent %s: %v", intent.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not process payment confirmation",
				"error":   err.Error(),
			})
		}

		if succeeded && order.CartID != "" {
			// The completed order is acknowledged; the customer's cart resets.
			h.carts.Get(order.CartID).Clear()
		}
	default:
		// Other event types are acknowledged and ignored.
	}

	return c.JSON(fiber.Map{"received": true})
}
