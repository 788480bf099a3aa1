package models

// OrderStatus tracks an order through the confirmation flow.
type OrderStatus string

const (
	OrderPending         OrderStatus = "pending"
	OrderAwaitingPayment OrderStatus = "awaiting_payment"
	OrderPaid            OrderStatus = "paid"
	OrderConfirmed       OrderStatus = "confirmed"
	OrderShipped         OrderStatus = "shipped"
	OrderCancelled       OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderAwaitingPayment, OrderPaid, OrderConfirmed, OrderShipped, OrderCancelled:
		return true
	}
	return false
}

// Order references a customer and a product by ID. The storage layer does
// not verify those references exist; callers are responsible for
// consistency.
type Order struct {
	Meta
	UserID        string      `json:"userId"`
	CustomerID    string      `json:"customerId"`
	ProductID     string      `json:"productId"`
	Quantity      int         `json:"quantity"`
	AmountPaise   int64       `json:"amountPaise"`
	Status        OrderStatus `json:"status"`
	PaymentRef    string      `json:"paymentRef"`
	ScreenshotKey string      `json:"screenshotKey"`
	Notes         string      `json:"notes"`
}

func (o *Order) OwnerID() string { return o.UserID }
