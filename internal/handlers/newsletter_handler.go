package handlers

import (
	"fmt"
	"log"
	"strings"

	"pclstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NewsletterHandler handles HTTP requests for newsletter subscriptions.
type NewsletterHandler struct {
	service  *services.NewsletterService
	validate *validator.Validate
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(service *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the newsletter routes with the Fiber app.
func (h *NewsletterHandler) RegisterRoutes(router fiber.Router) {
	newsletterRoutes := router.Group("/newsletter")
	newsletterRoutes.Post("/subscribe", h.HandleSubscribe)
	newsletterRoutes.Post("/unsubscribe", h.HandleUnsubscribe)
}

// SubscribeRequest is the request body for newsletter subscription.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// HandleSubscribe subscribes an email to the newsletter.
func (h *NewsletterHandler) HandleSubscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing subscribe request body: %v", err)
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

	alreadySubscribed, err := h.service.Subscribe(req.Email, req.Name)
	if err != nil {
		log.Printf("Error subscribing %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not subscribe to the newsletter",
			"error":   err.Error(),
		})
	}

	if alreadySubscribed {
		return c.JSON(fiber.Map{
			"message": "This email is already subscribed",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Subscribed successfully",
	})
}

// UnsubscribeRequest is the request body for newsletter cancellation.
type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleUnsubscribe cancels a newsletter subscription.
func (h *NewsletterHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	var req UnsubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing unsubscribe request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A valid email is required",
		})
	}

	if err := h.service.Unsubscribe(req.Email); err != nil {
		log.Printf("Error unsubscribing %s: %v", req.Email, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "This email is not subscribed",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not unsubscribe from the newsletter",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Unsubscribed successfully",
	})
}
