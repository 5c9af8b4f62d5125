package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPaymentMethodInitialStatuses(t *testing.T) {
	tests := []struct {
		method  PaymentMethod
		payment PaymentStatus
		order   OrderStatus
		ok      bool
	}{
		{PaymentCashOnDelivery, PaymentUnpaid, OrderPending, true},
		{PaymentMockOnline, PaymentSuccess, OrderPaid, true},
		{"CARD", "", "", false},
		{"mock", "", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			payment, order, ok := tt.method.InitialStatuses()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.payment, payment)
			assert.Equal(t, tt.order, order)
		})
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, Price: decimal.RequireFromString("19.99")}
	assert.Equal(t, "59.97", item.Subtotal().StringFixed(2))
}

func TestProductAccess(t *testing.T) {
	owner := Principal{UserID: primitive.NewObjectID()}
	stranger := Principal{UserID: primitive.NewObjectID()}
	admin := Principal{UserID: primitive.NewObjectID(), IsAdmin: true}

	inactive := &Product{CreatedBy: owner.UserID}
	assert.False(t, inactive.VisibleTo(nil))
	assert.False(t, inactive.VisibleTo(&stranger))
	assert.True(t, inactive.VisibleTo(&owner))
	assert.True(t, inactive.VisibleTo(&admin))

	active := &Product{CreatedBy: owner.UserID, IsActive: true}
	assert.True(t, active.VisibleTo(nil))

	assert.True(t, active.EditableBy(owner))
	assert.True(t, active.EditableBy(admin))
	assert.False(t, active.EditableBy(stranger))
}

func TestUserPrincipal(t *testing.T) {
	u := &User{ID: primitive.NewObjectID(), Username: "root", Email: "root@example.com", Role: RoleAdmin}
	p := u.Principal()
	assert.Equal(t, u.ID, p.UserID)
	assert.True(t, p.IsAdmin)
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}

func TestMoneyJSONUsesTwoFractionDigits(t *testing.T) {
	view := CartView{Total: NewMoney(decimal.RequireFromString("250")), Items: []CartLine{}}
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total":"250.00"`)

	var back CartView
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Total.Equal(decimal.NewFromInt(250)))

	data, err = json.Marshal(Product{Title: "Mouse", Price: decimal.RequireFromString("19.9"), IsActive: true})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":"19.90"`)
	assert.Contains(t, string(data), `"title":"Mouse"`)
	assert.Contains(t, string(data), `"is_active":true`)
}
