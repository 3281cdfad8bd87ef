package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"pclstore/internal/cart"
	"pclstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CartHandler handles HTTP requests for the shopping cart. Each browsing
// session is tied to its own cart store through a cookie; line items are
// always constructed from catalog data, never from client-supplied prices.
type CartHandler struct {
	carts      *cart.Manager
	catalog    *services.ProductService
	coupons    *services.CouponService
	validate   *validator.Validate
	cookieName string
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *cart.Manager, catalog *services.ProductService, coupons *services.CouponService, cookieName string) *CartHandler {
	return &CartHandler{
		carts:      carts,
		catalog:    catalog,
		coupons:    coupons,
		validate:   validator.New(),
		cookieName: cookieName,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateItemQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/coupon", h.HandleApplyCoupon)
	cartRoutes.Delete("/coupon", h.HandleRemoveCoupon)
}

// store resolves the session's cart store, minting a cart id cookie on
// first use.
func (h *CartHandler) store(c *fiber.Ctx) *cart.Store {
	cartID := c.Cookies(h.cookieName)
	if cartID == "" {
		cartID = uuid.New().String()
		c.Cookie(&fiber.Cookie{
			Name:     h.cookieName,
			Value:    cartID,
			Expires:  time.Now().Add(30 * 24 * time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	return h.carts.Get(cartID)
}

// HandleGetCart returns the cart snapshot for display.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.store(c).Snapshot())
}

// AddItemRequest is the request body for adding a catalog variant to the
// cart.
type AddItemRequest struct {
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// HandleAddItem adds a product variant to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add item request body: %v", err)
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

	variant, err := h.catalog.LookupVariant(req.VariantID)
	if err != nil {
		log.Printf("Error looking up variant %s: %v", req.VariantID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Variant with ID %s not found", req.VariantID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not look up product variant",
			"error":   err.Error(),
		})
	}

	product, err := h.catalog.GetProductByID(variant.ProductID)
	if err != nil {
		log.Printf("Error looking up product %s for variant %s: %v", variant.ProductID, variant.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not look up product",
			"error":   err.Error(),
		})
	}

	store := h.store(c)
	item := cart.LineItem{
		ID:        variant.ID,
		Name:      product.Name,
		UnitPrice: variant.Price,
		Quantity:  req.Quantity,
		Image:     variant.ImageURL,
		Color:     variant.Color,
		Size:      variant.Size,
	}
	if err := store.AddItem(item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(store.Snapshot())
}

// UpdateQuantityRequest is the request body for changing a line item's
// quantity. A quantity of zero or below removes the item.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateItemQuantity sets the quantity of a line item.
func (h *CartHandler) HandleUpdateItemQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	store := h.store(c)
	// An absent item is a soft no-op; the updated snapshot is returned
	// either way so the UI stays simple.
	store.UpdateItemQuantity(c.Params("id"), req.Quantity)
	return c.JSON(store.Snapshot())
}

// HandleRemoveItem removes all line items with the given product id.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	store := h.store(c)
	store.RemoveItem(c.Params("id"))
	return c.JSON(store.Snapshot())
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	store := h.store(c)
	store.Clear()
	return c.JSON(store.Snapshot())
}

// ApplyCouponRequest is the request body for applying a coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// HandleApplyCoupon validates a coupon code against the current subtotal
// and applies the resolved discount. Applying a second coupon replaces the
// first; coupons never stack.
func (h *CartHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing apply coupon request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Coupon code is required",
		})
	}

	store := h.store(c)
	validation, err := h.coupons.Validate(req.Code, store.Snapshot().Subtotal)
	if err != nil {
		log.Printf("Error validating coupon %s: %v", req.Code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not validate coupon",
			"error":   err.Error(),
		})
	}
	if !validation.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Invalid coupon",
			"reason":  validation.Reason,
		})
	}

	if err := store.ApplyCoupon(validation.Code, validation.DiscountAmount); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not apply coupon",
			"error":   err.Error(),
		})
	}
	return c.JSON(store.Snapshot())
}

// HandleRemoveCoupon clears the active coupon.
func (h *CartHandler) HandleRemoveCoupon(c *fiber.Ctx) error {
	store := h.store(c)
	store.RemoveCoupon()
	return c.JSON(store.Snapshot())
}
