package controllers

import (
	"context"
	"errors"

	"go-shop/models"
	"go-shop/store"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// findProduct returns nil for products deleted since the line was written.
func findProduct(ctx context.Context, catalog store.Catalog, id primitive.ObjectID) (*models.Product, error) {
	p, err := catalog.FindProduct(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func buildCartView(ctx context.Context, catalog store.Catalog, cart *models.Cart, items []models.CartItem) (*models.CartView, error) {
	view := &models.CartView{ID: cart.ID, UserID: cart.UserID, Items: []models.CartLine{}}
	for _, item := range items {
		product, err := findProduct(ctx, catalog, item.ProductID)
		if err != nil {
			return nil, err
		}
		line := models.CartLine{ID: item.ID, Product: product, Quantity: item.Quantity}
		if product != nil {
			line.Subtotal = models.NewMoney(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		view.Total = models.NewMoney(view.Total.Add(line.Subtotal.Decimal))
		view.Items = append(view.Items, line)
	}
	return view, nil
}

func loadCartView(ctx context.Context, carts store.Carts, catalog store.Catalog, userID primitive.ObjectID) (*models.CartView, error) {
	cart, err := carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := carts.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return buildCartView(ctx, catalog, cart, items)
}

type orderViewer struct {
	users   store.Users
	catalog store.Catalog
	orders  store.Orders
}

func (v orderViewer) build(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.OrderView, error) {
	view := &models.OrderView{
		ID:              order.ID,
		Status:          order.Status,
		TotalPrice:      models.NewMoney(order.TotalPrice),
		TotalAmount:     models.NewMoney(order.TotalPrice),
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus,
		ShippingAddress: order.ShippingAddress,
		Items:           []models.OrderLine{},
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	user, err := v.users.FindUserByID(ctx, order.UserID)
	switch {
	case err == nil:
		view.User = &models.UserSummary{ID: user.ID, Username: user.Username, Email: user.Email}
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	for _, item := range items {
		product, err := findProduct(ctx, v.catalog, item.ProductID)
		if err != nil {
			return nil, err
		}
		view.Items = append(view.Items, models.OrderLine{
			ID:           item.ID,
			Product:      product,
			ProductTitle: item.ProductTitle,
			Quantity:     item.Quantity,
			Price:        models.NewMoney(item.Price),
			Subtotal:     models.NewMoney(item.Subtotal()),
		})
	}
	return view, nil
}

func (v orderViewer) load(ctx context.Context, order *models.Order) (*models.OrderView, error) {
	items, err := v.orders.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return v.build(ctx, order, items)
}

func (v orderViewer) list(ctx context.Context, orders []models.Order) ([]models.OrderView, error) {
	views := make([]models.OrderView, 0, len(orders))
	for i := range orders {
		view, err := v.load(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
