package order

import "github.com/shopzeo/storefront-api/internal/product"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// cancellableStatuses lists the states an order may be cancelled from.
var cancellableStatuses = []Status{StatusPending, StatusConfirmed}

// ShippingInfo is the address snapshot stored with the order.
type ShippingInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order represents a purchase. Items maps product id (as a string, matching
// the stored JSONB) to quantity; Products carries the enriched details on
// reads.
type Order struct {
	ID            int                        `json:"orderId"`
	Number        string                     `json:"orderNumber"`
	UserID        int                        `json:"userId"`
	Items         map[string]int             `json:"cart"`
	Products      map[string]product.Summary `json:"cartProducts,omitempty"`
	Quantity      int                        `json:"quantity"`
	ItemTotal     float64                    `json:"totalPrice"`
	ShippingPrice float64                    `json:"shippingPrice"`
	GrandTotal    float64                    `json:"grandPrice"`
	Status        Status                     `json:"status"`
	Shipping      ShippingInfo               `json:"shipping"`
	PaymentMethod string                     `json:"paymentMethod"`
	CreatedAt     string                     `json:"createdAt"`
	UpdatedAt     string                     `json:"updatedAt"`
}

func (o Order) cancellable() bool {
	for _, s := range cancellableStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}
