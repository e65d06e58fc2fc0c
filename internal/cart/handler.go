package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopzeo/storefront-api/internal/user"
)

// Handler delegates cart operations to the cart service. All routes require
// an authenticated user.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Put("/api/v1/cart", h.setQuantity)
	app.Delete("/api/v1/cart/:productId<[0-9]+>", h.removeFromCart)
	app.Delete("/api/v1/cart", h.clearCart)
}

type cartRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.Add(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) setQuantity(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.Set(userID, payload.ProductID, payload.Quantity)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.Remove(userID, productID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.Get(userID)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Clear(userID); err != nil {
		return cartError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func cartError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
