package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go-shop/models"
	"go-shop/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTestStore connects to the server named by MONGO_TEST_URI and provisions a
// throwaway database that is dropped when the test ends.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	name := fmt.Sprintf("goshop_test_%d", time.Now().UnixNano())
	s, err := Connect(ctx, Options{URI: uri, Database: name})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if repo, ok := s.Users.(*userRepo); ok {
			_ = repo.coll.Database().Drop(ctx)
		}
		_ = s.Close(ctx)
	})
	return s
}

func TestAddCartItemMergesLines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	userID := primitive.NewObjectID()
	keyboard, mouse := primitive.NewObjectID(), primitive.NewObjectID()

	cart, err := s.Carts.GetOrCreateCart(ctx, userID)
	require.NoError(t, err)
	again, err := s.Carts.GetOrCreateCart(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	first, err := s.Carts.AddCartItem(ctx, cart.ID, keyboard, 1)
	require.NoError(t, err)
	merged, err := s.Carts.AddCartItem(ctx, cart.ID, keyboard, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 3, merged.Quantity)
	assert.False(t, merged.AddedAt.IsZero())

	_, err = s.Carts.AddCartItem(ctx, cart.ID, mouse, 1)
	require.NoError(t, err)
	items, err := s.Carts.ListCartItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = s.Carts.FindCartItem(ctx, primitive.NewObjectID(), first.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Carts.ClearCart(ctx, cart.ID))
	items, err = s.Carts.ListCartItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	order := &models.Order{
		UserID:        primitive.NewObjectID(),
		TotalPrice:    decimal.RequireFromString("150.00"),
		PaymentMethod: models.PaymentCashOnDelivery,
		PaymentStatus: models.PaymentUnpaid,
		Status:        models.OrderPending,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, s.Orders.CreateOrder(ctx, order))
	for i := 0; i < 2; i++ {
		require.NoError(t, s.Orders.CreateOrderItem(ctx, &models.OrderItem{
			OrderID:   order.ID,
			ProductID: primitive.NewObjectID(),
			Quantity:  1,
			Price:     decimal.RequireFromString("75.00"),
		}))
	}

	require.NoError(t, s.Orders.DeleteOrder(ctx, order.ID))
	items, err := s.Orders.ListOrderItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	_, err = s.Orders.FindOrder(ctx, order.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Orders.DeleteOrder(ctx, order.ID), store.ErrNotFound)
}

func TestSchemaRejectsInvalidOrderItem(t *testing.T) {
	s := newTestStore(t)

	err := s.Orders.CreateOrderItem(context.Background(), &models.OrderItem{
		OrderID:   primitive.NewObjectID(),
		ProductID: primitive.NewObjectID(),
		Quantity:  0,
		Price:     decimal.RequireFromString("1.00"),
	})
	assert.True(t, store.IsSchemaError(err), "got %v", err)
}

func TestUserUniquenessIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users.CreateUser(ctx, &models.User{Username: "ana", Email: "ana@example.com", Role: models.RoleUser}))
	err := s.Users.CreateUser(ctx, &models.User{Username: "ana", Email: "other@example.com", Role: models.RoleUser})
	assert.ErrorIs(t, err, store.ErrDuplicate)
	require.NoError(t, s.Users.CreateUser(ctx, &models.User{Username: "Ana", Email: "Ana@example.com", Role: models.RoleUser}))
}
