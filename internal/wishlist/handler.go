package wishlist

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopzeo/storefront-api/internal/user"
)

// Handler delegates wishlist operations to the wishlist service. All routes
// require an authenticated user.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/wishlist", h.getWishlist)
	app.Post("/api/v1/wishlist", h.addToWishlist)
	app.Delete("/api/v1/wishlist/:productId<[0-9]+>", h.removeFromWishlist)
}

type wishlistRequest struct {
	ProductID int `json:"productId"`
}

func (h *Handler) addToWishlist(c *fiber.Ctx) error {
	payload := new(wishlistRequest)
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

	ids, err := h.service.Add(userID, payload.ProductID)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		case ErrAlreadyListed:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "product already in wishlist"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"productId": payload.ProductID, "wishlistProductIds": ids})
}

func (h *Handler) removeFromWishlist(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid productId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ids, err := h.service.Remove(userID, productID)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		case ErrNotListed:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product not in wishlist"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"productId": productID, "wishlistProductIds": ids})
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.Get(userID)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(items)
}
