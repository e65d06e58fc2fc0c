package otp

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopzeo/storefront-api/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	limit := middleware.RateLimit(1, 3)
	app.Post("/api/v1/otp/send", limit, h.send)
	app.Post("/api/v1/otp/verify", limit, h.verify)
}

type sendRequest struct {
	Phone string `json:"phone"`
}

func (h *Handler) send(c *fiber.Ctx) error {
	payload := new(sendRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "phone is required"})
	}

	code, err := h.service.Send(payload.Phone)
	if err != nil {
		switch err {
		case ErrCooldown:
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "code requested too recently"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	// delivery is handled out of band; log so local runs can complete the flow
	log.Printf("otp issued for %s: %s", payload.Phone, code)
	return c.JSON(fiber.Map{"message": "OTP sent"})
}

type verifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (h *Handler) verify(c *fiber.Ctx) error {
	payload := new(verifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Phone == "" || payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "phone and code are required"})
	}

	if err := h.service.Verify(payload.Phone, payload.Code); err != nil {
		switch err {
		case ErrCodeInvalid:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "code invalid or expired"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "Phone verified"})
}
