// Package checkout turns a user's cart into an order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-shop/logging"
	"go-shop/models"
	"go-shop/notify"
	"go-shop/store"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request is the caller's checkout input
type Request struct {
	PaymentMethod   models.PaymentMethod `json:"payment_method"`
	ShippingAddress string               `json:"shipping_address"`
}

// Result is the persisted order together with its items
type Result struct {
	Order *models.Order
	Items []models.OrderItem
}

// Engine runs checkouts. Dispatcher may be nil, in which case no
// notification is sent.
type Engine struct {
	Carts      store.Carts
	Catalog    store.Catalog
	Orders     store.Orders
	Tx         store.Transactor
	Dispatcher notify.Dispatcher

	// DispatchTimeout bounds the background notification submit.
	DispatchTimeout time.Duration

	now func() time.Time
}

// New wires an engine to one store backend
func New(s *store.Store, dispatcher notify.Dispatcher) *Engine {
	return &Engine{
		Carts:           s.Carts,
		Catalog:         s.Catalog,
		Orders:          s.Orders,
		Tx:              s.Tx,
		Dispatcher:      dispatcher,
		DispatchTimeout: 10 * time.Second,
	}
}

type line struct {
	item    models.CartItem
	product *models.Product
	price   decimal.Decimal
}

func (e *Engine) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now().UTC()
}

// Checkout validates the caller's cart, persists the order with its items,
// empties the cart and submits the invoice notification.
func (e *Engine) Checkout(ctx context.Context, principal models.Principal, req Request) (*Result, error) {
	paymentStatus, orderStatus, ok := req.PaymentMethod.InitialStatuses()
	if !ok {
		return nil, ErrInvalidPaymentMethod
	}

	cart, err := e.Carts.FindCartByUser(ctx, principal.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	cartItems, err := e.Carts.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	lines, total, err := e.validate(ctx, cartItems)
	if err != nil {
		return nil, err
	}

	now := e.clock()
	order := &models.Order{
		UserID:          principal.UserID,
		TotalPrice:      total,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   paymentStatus,
		Status:          orderStatus,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := make([]models.OrderItem, 0, len(lines))

	err = e.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		items = items[:0]
		if err := e.Orders.CreateOrder(ctx, order); err != nil {
			if store.IsSchemaError(err) {
				return fmt.Errorf("%w: %v", ErrStorageNotReady, err)
			}
			return fmt.Errorf("%w: %v", ErrOrderCreate, err)
		}
		for _, l := range lines {
			item := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    l.product.ID,
				ProductTitle: l.product.Title,
				Quantity:     l.item.Quantity,
				Price:        l.price,
			}
			if err := e.Orders.CreateOrderItem(ctx, &item); err != nil {
				if store.IsSchemaError(err) {
					return fmt.Errorf("%w: %v", ErrStorageNotReady, err)
				}
				return fmt.Errorf("%w: %v", ErrOrderItemCreate, err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		e.compensate(ctx, order.ID)
		return nil, err
	}

	if err := e.Carts.ClearCart(ctx, cart.ID); err != nil {
		logging.Warn(logging.Fields{
			UserID:  principal.UserID.Hex(),
			OrderID: order.ID.Hex(),
			Step:    "clear_cart",
		}, err)
	}

	e.dispatch(notify.NewTask(principal.Email, order.ID, order.TotalPrice))

	return &Result{Order: order, Items: items}, nil
}

// validate reads each line's product once. The captured price feeds both the
// total and the order item, so both agree even if the catalog changes mid-checkout.
func (e *Engine) validate(ctx context.Context, cartItems []models.CartItem) ([]line, decimal.Decimal, error) {
	lines := make([]line, 0, len(cartItems))
	total := decimal.Zero
	for _, item := range cartItems {
		product, err := e.Catalog.FindProduct(ctx, item.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, decimal.Zero, fmt.Errorf("%w %s", ErrProductMissing, item.ID.Hex())
		}
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("load product %s: %w", item.ProductID.Hex(), err)
		}
		if !product.IsActive {
			return nil, decimal.Zero, fmt.Errorf("%w: %q", ErrProductInactive, product.Title)
		}
		price := product.Price.Round(2)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, line{item: item, product: product, price: price})
	}

	if !total.IsPositive() {
		return nil, decimal.Zero, ErrNonPositiveTotal
	}
	return lines, total, nil
}

// compensate removes whatever the failed transaction left behind. With real
// transactions there is nothing left and DeleteOrder reports not found.
func (e *Engine) compensate(ctx context.Context, orderID primitive.ObjectID) {
	if orderID.IsZero() {
		return
	}
	err := e.Orders.DeleteOrder(context.WithoutCancel(ctx), orderID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logging.Error(logging.Fields{OrderID: orderID.Hex(), Step: "compensate"}, err)
	}
}

func (e *Engine) dispatch(task notify.Task) {
	if e.Dispatcher == nil {
		return
	}
	timeout := e.DispatchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := e.Dispatcher.Dispatch(ctx, task); err != nil {
			logging.Error(logging.Fields{TaskID: task.ID, OrderID: task.OrderID, Step: "dispatch"}, err)
		}
	}()
}
