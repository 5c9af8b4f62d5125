package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-shop/checkout"
	"go-shop/controllers"
	"go-shop/metrics"
	"go-shop/middleware"
	"go-shop/models"
	"go-shop/routes"
	"go-shop/store/memstore"
	"go-shop/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type api struct {
	t      *testing.T
	mem    *memstore.Memory
	router *mux.Router
}

func newAPI(t *testing.T) *api {
	t.Helper()
	mem := memstore.New()
	s := mem.Store()
	m := metrics.NewServerMetrics(prometheus.NewRegistry())

	router := mux.NewRouter()
	routes.RegisterRoutes(router, routes.Controllers{
		Users:      controllers.NewUserController(s.Users),
		Products:   controllers.NewProductController(s.Catalog),
		Categories: controllers.NewCategoryController(s.Catalog),
		Carts:      controllers.NewCartController(s.Carts, s.Catalog),
		Orders:     controllers.NewOrderController(s, checkout.New(s, nil), m),
	}, middleware.NewRateLimiter(1000, 1000))

	return &api{t: t, mem: mem, router: router}
}

type account struct {
	user  *models.User
	token string
}

func (a *api) account(username string, role string) account {
	a.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	require.NoError(a.t, err)
	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hash), Role: role, CreatedAt: time.Now().UTC()}
	require.NoError(a.t, a.mem.CreateUser(context.Background(), user))
	token, err := utils.GenerateJWT(user)
	require.NoError(a.t, err)
	return account{user: user, token: token}
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *api) product(owner account, title, price string, active bool) *models.Product {
	a.t.Helper()
	ctx := context.Background()
	categories, err := a.mem.ListCategories(ctx)
	require.NoError(a.t, err)
	var category models.Category
	if len(categories) == 0 {
		category = models.Category{Name: "Peripherals", Slug: "peripherals"}
		require.NoError(a.t, a.mem.CreateCategory(ctx, &category))
	} else {
		category = categories[0]
	}
	p := &models.Product{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: category.ID,
		CreatedBy:  owner.user.ID,
		CreatedAt:  time.Now().UTC(),
		IsActive:   active,
	}
	require.NoError(a.t, a.mem.CreateProduct(ctx, p))
	return p
}

func TestRegisterLoginProfile(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/auth/register/", "", map[string]string{
		"username": "carol", "email": "carol@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "s3cret")

	rec = a.do(http.MethodPost, "/auth/register/", "", map[string]string{
		"username": "carol", "email": "other@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPost, "/auth/register/", "", map[string]string{"username": "dave"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, login := range []map[string]string{
		{"username": "carol", "password": "s3cret"},
		{"email": "carol@example.com", "password": "s3cret"},
	} {
		rec = a.do(http.MethodPost, "/auth/login/", "", login)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode[struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				IsAdmin  bool   `json:"is_admin"`
			} `json:"user"`
		}](t, rec)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "carol", body.User.Username)
		assert.False(t, body.User.IsAdmin)

		rec = a.do(http.MethodGet, "/auth/profile/", body.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "carol@example.com", decode[models.User](t, rec).Email)
	}

	rec = a.do(http.MethodPost, "/auth/login/", "", map[string]string{"username": "carol", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodGet, "/auth/profile/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductVisibility(t *testing.T) {
	a := newAPI(t)
	seller := a.account("seller", models.RoleUser)
	buyer := a.account("buyer", models.RoleUser)
	admin := a.account("admin", models.RoleAdmin)
	a.product(seller, "Keyboard", "100.00", true)
	hidden := a.product(seller, "Prototype", "10.00", false)

	count := func(path, token string) int {
		rec := a.do(http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		return len(decode[[]models.Product](t, rec))
	}
	assert.Equal(t, 1, count("/products/", ""))
	assert.Equal(t, 1, count("/products/", buyer.token))
	assert.Equal(t, 2, count("/products/", admin.token))
	assert.Equal(t, 2, count("/products/?created_by="+seller.user.ID.Hex(), ""))
	assert.Equal(t, 1, count("/products/?search=keyB", ""))
	assert.Equal(t, 0, count("/products/?search=mouse", ""))

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/products/"+hidden.ID.Hex()+"/", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/products/"+hidden.ID.Hex()+"/", buyer.token, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/products/"+hidden.ID.Hex()+"/", seller.token, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/products/"+hidden.ID.Hex()+"/", admin.token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/products/not-an-id/", "", nil).Code)
}

func TestProductMutation(t *testing.T) {
	a := newAPI(t)
	seller := a.account("seller", models.RoleUser)
	other := a.account("other", models.RoleUser)
	admin := a.account("admin", models.RoleAdmin)
	existing := a.product(seller, "Keyboard", "100.00", true)
	path := "/products/" + existing.ID.Hex() + "/"

	rec := a.do(http.MethodPost, "/products/", seller.token, map[string]interface{}{
		"title": "Mouse", "price": "25.50", "category_id": existing.CategoryID.Hex(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Product](t, rec)
	assert.True(t, created.IsActive)
	assert.Equal(t, seller.user.ID, created.CreatedBy)

	rec = a.do(http.MethodPost, "/products/", seller.token, map[string]interface{}{
		"title": "Ghost", "price": "1", "category_id": other.user.ID.Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/products/", "", map[string]string{}).Code)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPatch, path, other.token, map[string]string{"price": "1"}).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPatch, path, seller.token, map[string]string{"price": "-1"}).Code)

	rec = a.do(http.MethodPatch, path, seller.token, map[string]string{"price": "120.00"})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[models.Product](t, rec)
	assert.Equal(t, "120.00", patched.Price.StringFixed(2))
	assert.Equal(t, "Keyboard", patched.Title)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPut, path, seller.token, map[string]string{"title": "only title"}).Code)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, other.token, nil).Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, admin.token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, "", nil).Code)
}

func TestCategories(t *testing.T) {
	a := newAPI(t)
	user := a.account("user", models.RoleUser)
	admin := a.account("admin", models.RoleAdmin)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, "/products/categories/", user.token, map[string]string{"name": "Audio"}).Code)

	rec := a.do(http.MethodPost, "/products/categories/", admin.token, map[string]string{"name": "Home Audio"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decode[models.Category](t, rec)
	assert.Equal(t, "home-audio", category.Slug)

	rec = a.do(http.MethodPost, "/products/categories/", admin.token, map[string]string{"name": "Home Audio"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/products/categories/", admin.token, map[string]string{"name": " "}).Code)

	rec = a.do(http.MethodGet, "/products/categories/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Category](t, rec), 1)

	path := "/products/categories/" + category.ID.Hex() + "/"
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, path, "", nil).Code)
	rec = a.do(http.MethodPut, path, admin.token, map[string]string{"name": "Audio"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio", decode[models.Category](t, rec).Slug)

	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, admin.token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, "", nil).Code)
}

func TestSlugify(t *testing.T) {
	for in, want := range map[string]string{
		"Home Audio":         "home-audio",
		"  Books & Media  ":  "books-media",
		"snake_case":         "snake_case",
		"Ünïcode Things 2.0": "ünïcode-things-2-0",
		"!!!":                "",
	} {
		assert.Equal(t, want, controllers.Slugify(in), in)
	}
}

func TestRequestValidationMessages(t *testing.T) {
	a := newAPI(t)
	seller := a.account("seller", models.RoleUser)
	admin := a.account("admin", models.RoleAdmin)
	keyboard := a.product(seller, "Keyboard", "100.00", true)
	category := keyboard.CategoryID.Hex()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   string
	}{
		{"register without username", http.MethodPost, "/auth/register/", "", map[string]string{"email": "x@example.com", "password": "p"}, "Username is required"},
		{"register without email", http.MethodPost, "/auth/register/", "", map[string]string{"username": "x", "password": "p"}, "Email is required"},
		{"register with bad email", http.MethodPost, "/auth/register/", "", map[string]string{"username": "x", "email": "not-an-email", "password": "p"}, "Enter a valid email address"},
		{"register without password", http.MethodPost, "/auth/register/", "", map[string]string{"username": "x", "email": "x@example.com"}, "Password is required"},
		{"product with negative price", http.MethodPost, "/products/", seller.token, map[string]interface{}{"title": "Pad", "price": "-1", "category_id": category}, "Price must be greater than or equal to 0"},
		{"product with blank title", http.MethodPost, "/products/", seller.token, map[string]interface{}{"title": "   ", "price": "1", "category_id": category}, "Title may not be blank"},
		{"product with bad category", http.MethodPost, "/products/", seller.token, map[string]interface{}{"title": "Pad", "price": "1", "category_id": "abc"}, "Invalid category_id"},
		{"product missing fields", http.MethodPost, "/products/", seller.token, map[string]interface{}{"title": "Pad"}, "Title, price and category_id are required"},
		{"category with blank name", http.MethodPost, "/products/categories/", admin.token, map[string]string{"name": "  "}, "Name is required"},
		{"cart add without product", http.MethodPost, "/cart/add/", seller.token, map[string]interface{}{"quantity": 1}, "Invalid product_id"},
		{"cart add zero quantity", http.MethodPost, "/cart/add/", seller.token, map[string]interface{}{"product_id": keyboard.ID.Hex(), "quantity": 0}, "Quantity must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.want+`"}`, rec.Body.String())
		})
	}
}

func TestCartFlow(t *testing.T) {
	a := newAPI(t)
	seller := a.account("seller", models.RoleUser)
	buyer := a.account("buyer", models.RoleUser)
	other := a.account("other", models.RoleUser)
	keyboard := a.product(seller, "Keyboard", "100.00", true)

	rec := a.do(http.MethodGet, "/cart/", buyer.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[models.CartView](t, rec).Items)

	rec = a.do(http.MethodPost, "/cart/add/", buyer.token, map[string]interface{}{"product_id": keyboard.ID.Hex()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = a.do(http.MethodPost, "/cart/add/", buyer.token, map[string]interface{}{"product_id": keyboard.ID.Hex(), "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	cart := decode[models.CartView](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "300.00", cart.Total.StringFixed(2))

	bad := []map[string]interface{}{
		{"product_id": keyboard.ID.Hex(), "quantity": 0},
		{"product_id": keyboard.ID.Hex(), "quantity": -3},
		{"product_id": "zzz"},
	}
	for _, body := range bad {
		assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/cart/add/", buyer.token, body).Code, body)
	}
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPost, "/cart/add/", buyer.token, map[string]interface{}{"product_id": buyer.user.ID.Hex()}).Code)

	itemPath := "/cart/item/" + cart.Items[0].ID.Hex() + "/"
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodPatch, itemPath, other.token, map[string]int{"quantity": 1}).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodDelete, itemPath, other.token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPatch, itemPath, buyer.token, map[string]int{"quantity": 0}).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPatch, itemPath, buyer.token, map[string]string{}).Code)

	rec = a.do(http.MethodPatch, itemPath, buyer.token, map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[models.CartView](t, rec)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, "500.00", cart.Items[0].Subtotal.StringFixed(2))

	rec = a.do(http.MethodDelete, itemPath, buyer.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[models.CartView](t, rec).Items)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/cart/", "", nil).Code)
}

func TestInactiveProductIsRejectedAtCheckout(t *testing.T) {
	a := newAPI(t)
	seller := a.account("seller", models.RoleUser)
	buyer := a.account("buyer", models.RoleUser)
	hidden := a.product(seller, "Prototype", "10.00", false)

	rec := a.do(http.MethodPost, "/cart/add/", buyer.token, map[string]interface{}{"product_id": hidden.ID.Hex()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, decode[models.CartView](t, rec).Items, 1)

	rec = a.do(http.MethodPost, "/orders/checkout/", buyer.token, map[string]string{"payment_method": "COD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product is not available")

	rec = a.do(http.MethodGet, "/cart/", buyer.token, nil)
	assert.Len(t, decode[models.CartView](t, rec).Items, 1)
}

type checkoutResponse struct {
	Message string           `json:"message"`
	Order   models.OrderView `json:"order"`
}

func TestCheckoutEndpoint(t *testing.T) {
	a := newAPI(t)
	seller := a.account("seller", models.RoleUser)
	buyer := a.account("buyer", models.RoleUser)
	keyboard := a.product(seller, "Keyboard", "100.00", true)
	mouse := a.product(seller, "Mouse", "50.00", true)

	rec := a.do(http.MethodPost, "/orders/checkout/", buyer.token, map[string]string{"payment_method": "MOCK"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"cart is empty"}`, rec.Body.String())

	a.do(http.MethodPost, "/cart/add/", buyer.token, map[string]interface{}{"product_id": keyboard.ID.Hex(), "quantity": 2})
	a.do(http.MethodPost, "/cart/add/", buyer.token, map[string]interface{}{"product_id": mouse.ID.Hex()})

	rec = a.do(http.MethodPost, "/orders/checkout/", buyer.token, map[string]string{"payment_method": "PAYPAL"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid payment method"}`, rec.Body.String())

	rec = a.do(http.MethodPost, "/orders/checkout/", buyer.token, map[string]string{
		"payment_method": "MOCK", "shipping_address": "1 Main St",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total_price":"250.00"`)
	body := decode[checkoutResponse](t, rec)
	assert.Equal(t, "Order created successfully", body.Message)
	assert.Equal(t, models.OrderPaid, body.Order.Status)
	assert.Equal(t, models.PaymentSuccess, body.Order.PaymentStatus)
	assert.Equal(t, "250.00", body.Order.TotalPrice.StringFixed(2))
	assert.True(t, body.Order.TotalAmount.Equal(body.Order.TotalPrice.Decimal))
	require.NotNil(t, body.Order.User)
	assert.Equal(t, "buyer", body.Order.User.Username)
	assert.Len(t, body.Order.Items, 2)

	rec = a.do(http.MethodGet, "/cart/", buyer.token, nil)
	assert.Empty(t, decode[models.CartView](t, rec).Items)

	rec = a.do(http.MethodGet, "/orders/my/", buyer.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]models.OrderView](t, rec)
	require.Len(t, mine, 1)
	assert.Equal(t, body.Order.ID, mine[0].ID)

	rec = a.do(http.MethodGet, "/orders/my/", seller.token, nil)
	assert.Empty(t, decode[[]models.OrderView](t, rec))
}

func placeOrder(t *testing.T, a *api, buyer account, product *models.Product) models.OrderView {
	t.Helper()
	a.do(http.MethodPost, "/cart/add/", buyer.token, map[string]interface{}{"product_id": product.ID.Hex()})
	rec := a.do(http.MethodPost, "/orders/checkout/", buyer.token, map[string]string{"payment_method": "COD"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[checkoutResponse](t, rec).Order
}

func TestAdminOrderManagement(t *testing.T) {
	a := newAPI(t)
	seller := a.account("seller", models.RoleUser)
	buyer := a.account("buyer", models.RoleUser)
	admin := a.account("admin", models.RoleAdmin)
	mouse := a.product(seller, "Mouse", "50.00", true)

	first := placeOrder(t, a, buyer, mouse)
	time.Sleep(2 * time.Millisecond)
	second := placeOrder(t, a, buyer, mouse)
	assert.Equal(t, models.OrderPending, first.Status)
	assert.Equal(t, models.PaymentUnpaid, first.PaymentStatus)

	rec := a.do(http.MethodGet, "/orders/", buyer.token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Admin only"}`, rec.Body.String())

	rec = a.do(http.MethodGet, "/orders/", admin.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]models.OrderView](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	path := "/orders/update/" + first.ID.Hex() + "/"
	rec = a.do(http.MethodPatch, path, buyer.token, map[string]string{"status": "SHIPPED"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	stored, err := a.mem.FindOrder(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, stored.Status)

	rec = a.do(http.MethodPatch, path, admin.token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Status is required"}`, rec.Body.String())

	rec = a.do(http.MethodPatch, path, admin.token, map[string]string{"status": "LOST"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PENDING, APPROVED, PAID, SHIPPED, DELIVERED, CANCELLED")

	rec = a.do(http.MethodPatch, "/orders/update/"+seller.user.ID.Hex()+"/", admin.token, map[string]string{"status": "SHIPPED"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Order not found"}`, rec.Body.String())

	rec = a.do(http.MethodPatch, path, admin.token, map[string]string{"status": "SHIPPED"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.OrderView](t, rec)
	assert.Equal(t, models.OrderShipped, updated.Status)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt) || updated.UpdatedAt.Equal(first.UpdatedAt))
	assert.Equal(t, "50.00", updated.TotalPrice.StringFixed(2))
}

func TestInvoiceDownload(t *testing.T) {
	a := newAPI(t)
	seller := a.account("seller", models.RoleUser)
	buyer := a.account("buyer", models.RoleUser)
	admin := a.account("admin", models.RoleAdmin)
	order := placeOrder(t, a, buyer, a.product(seller, "Mouse", "50.00", true))
	path := "/orders/" + order.ID.Hex() + "/invoice/"

	rec := a.do(http.MethodGet, path, buyer.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoice_"+order.ID.Hex()+".pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, path, admin.token, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, path, seller.token, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/orders/"+seller.user.ID.Hex()+"/invoice/", admin.token, nil).Code)
}
