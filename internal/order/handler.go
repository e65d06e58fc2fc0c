package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopzeo/storefront-api/internal/address"
	"github.com/shopzeo/storefront-api/internal/cart"
	"github.com/shopzeo/storefront-api/internal/user"
)

// Handler delegates order operations to the order service. Placing an order
// also clears the server-side cart, so the handler holds the cart service.
type Handler struct {
	service   *Service
	addresses *address.Service
	carts     *cart.Service
}

func NewHandler(s *Service, addresses *address.Service, carts *cart.Service) *Handler {
	return &Handler{service: s, addresses: addresses, carts: carts}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.createOrder)
	app.Get("/api/v1/orders", h.getOrders)
	app.Get("/api/v1/orders/number/:number", h.getOrderByNumber)
	app.Post("/api/v1/orders/:id<[0-9]+>/cancel", h.cancelOrder)
}

type createOrderRequest struct {
	Cart          map[string]int `json:"cart"`
	AddressID     *int           `json:"addressId,omitempty"`
	Shipping      *ShippingInfo  `json:"shipping,omitempty"`
	PaymentMethod string         `json:"paymentMethod"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	shipping, err := h.resolveShipping(userID, payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.Create(userID, payload.Cart, shipping, payload.PaymentMethod)
	if err != nil {
		switch err {
		case ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "empty cart"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}

	// the cart was snapshotted into the order
	if h.carts != nil {
		if err := h.carts.Clear(userID); err != nil && err != cart.ErrNotFound {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(ord)
}

// resolveShipping prefers a stored address id over an inline snapshot.
func (h *Handler) resolveShipping(userID int, payload *createOrderRequest) (ShippingInfo, error) {
	if payload.AddressID != nil && h.addresses != nil {
		addr, err := h.addresses.Get(userID, *payload.AddressID)
		if err != nil {
			return ShippingInfo{}, err
		}
		return ShippingInfo{Name: addr.Name, Phone: addr.Phone, Address: addr.Description}, nil
	}
	if payload.Shipping != nil {
		return *payload.Shipping, nil
	}
	return ShippingInfo{}, nil
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrderByNumber(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.service.GetByNumber(userID, c.Params("number"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.Cancel(userID, orderID)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrNotCancellable:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order can no longer be cancelled"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}
