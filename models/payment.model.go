package models

// PaymentMethod selected at checkout
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "COD"
	PaymentMockOnline     PaymentMethod = "MOCK"
)

// PaymentStatus of an order
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// paymentOutcomes maps a payment method to the statuses an order starts with.
// There is no gateway behind MOCK; it always succeeds.
var paymentOutcomes = map[PaymentMethod]struct {
	Payment PaymentStatus
	Order   OrderStatus
}{
	PaymentCashOnDelivery: {PaymentUnpaid, OrderPending},
	PaymentMockOnline:     {PaymentSuccess, OrderPaid},
}

// InitialStatuses returns the payment and order status for a fresh order.
// ok is false for an unsupported method.
func (m PaymentMethod) InitialStatuses() (PaymentStatus, OrderStatus, bool) {
	o, ok := paymentOutcomes[m]
	return o.Payment, o.Order, ok
}
