package address

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopzeo/storefront-api/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/addresses", h.listAddresses)
	app.Get("/api/v1/addresses/:addressId<[0-9]+>", h.getAddress)
	app.Post("/api/v1/addresses", h.addAddress)
	app.Put("/api/v1/addresses/:addressId<[0-9]+>", h.updateAddress)
	app.Delete("/api/v1/addresses/:addressId<[0-9]+>", h.deleteAddress)
}

type addressRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

func (h *Handler) listAddresses(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	addresses, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(addresses)
}

func (h *Handler) getAddress(c *fiber.Ctx) error {
	addressID, err := strconv.Atoi(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid addressId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	a, err := h.service.Get(userID, addressID)
	if err != nil {
		return addressError(c, err)
	}
	return c.JSON(a)
}

func (h *Handler) addAddress(c *fiber.Ctx) error {
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	a, err := h.service.Add(userID, payload.Name, payload.Phone, payload.Description)
	if err != nil {
		return addressError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *Handler) updateAddress(c *fiber.Ctx) error {
	addressID, err := strconv.Atoi(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid addressId"})
	}
	payload := new(addressRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	a, err := h.service.Update(userID, addressID, payload.Name, payload.Phone, payload.Description)
	if err != nil {
		return addressError(c, err)
	}
	return c.JSON(a)
}

func (h *Handler) deleteAddress(c *fiber.Ctx) error {
	addressID, err := strconv.Atoi(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid addressId"})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Delete(userID, addressID); err != nil {
		return addressError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func addressError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "address not found"})
	case ErrInvalidAddress:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
