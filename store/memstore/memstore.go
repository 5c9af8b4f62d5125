// Package memstore keeps every record in process memory. It backs local runs
// (DATABASE_DRIVER=memory) and the test suites.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-shop/models"
	"go-shop/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is the in-memory backend. The zero value is not usable; call New.
type Memory struct {
	mu sync.RWMutex

	users      map[primitive.ObjectID]models.User
	categories map[primitive.ObjectID]models.Category
	products   map[primitive.ObjectID]models.Product
	carts      map[primitive.ObjectID]models.Cart
	cartItems  map[primitive.ObjectID]models.CartItem
	orders     map[primitive.ObjectID]models.Order
	orderItems map[primitive.ObjectID]models.OrderItem
}

// New returns an empty backend
func New() *Memory {
	return &Memory{
		users:      make(map[primitive.ObjectID]models.User),
		categories: make(map[primitive.ObjectID]models.Category),
		products:   make(map[primitive.ObjectID]models.Product),
		carts:      make(map[primitive.ObjectID]models.Cart),
		cartItems:  make(map[primitive.ObjectID]models.CartItem),
		orders:     make(map[primitive.ObjectID]models.Order),
		orderItems: make(map[primitive.ObjectID]models.OrderItem),
	}
}

// Store exposes the backend through the store contracts
func (m *Memory) Store() *store.Store {
	return &store.Store{
		Users:   m,
		Catalog: m,
		Carts:   m,
		Orders:  m,
		Tx:      m,
		Ping:    func(context.Context) error { return nil },
		Close:   func(context.Context) error { return nil },
	}
}

// WithinTransaction has no isolation here; callers rely on compensation.
func (m *Memory) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

// sortByID orders records by ObjectID, which follows creation order.
func sortByID[T any](records []T, id func(T) primitive.ObjectID, desc bool) {
	sort.Slice(records, func(i, j int) bool {
		a, b := id(records[i]), id(records[j])
		if desc {
			return a.Hex() > b.Hex()
		}
		return a.Hex() < b.Hex()
	})
}

// Users

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	ensureID(&user.ID)
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *Memory) FindUserByLogin(_ context.Context, login string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == login || u.Email == login {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

// Catalog

func (m *Memory) CreateCategory(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.Name == category.Name || c.Slug == category.Slug {
			return store.ErrDuplicate
		}
	}
	ensureID(&category.ID)
	m.categories[category.ID] = *category
	return nil
}

func (m *Memory) FindCategory(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (m *Memory) ListCategories(_ context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) UpdateCategory(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; !ok {
		return store.ErrNotFound
	}
	for id, c := range m.categories {
		if id != category.ID && (c.Name == category.Name || c.Slug == category.Slug) {
			return store.ErrDuplicate
		}
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *Memory) DeleteCategory(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.categories, id)
	for pid, p := range m.products {
		if p.CategoryID == id {
			delete(m.products, pid)
		}
	}
	return nil
}

func (m *Memory) CreateProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ensureID(&product.ID)
	m.products[product.ID] = *product
	return nil
}

func (m *Memory) FindProduct(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (m *Memory) ListProducts(_ context.Context, f store.ProductFilter) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := []models.Product{}
	for _, p := range m.products {
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.CreatedBy != nil && p.CreatedBy != *f.CreatedBy {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.Ordering {
		case store.OrderByPrice:
			if !a.Price.Equal(b.Price) {
				return a.Price.LessThan(b.Price)
			}
			return a.ID.Hex() < b.ID.Hex()
		case store.OrderByPriceDesc:
			if !a.Price.Equal(b.Price) {
				return a.Price.GreaterThan(b.Price)
			}
			return a.ID.Hex() > b.ID.Hex()
		case store.OrderByOldest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID.Hex() < b.ID.Hex()
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID.Hex() > b.ID.Hex()
		}
	})
	return out, nil
}

func (m *Memory) UpdateProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; !ok {
		return store.ErrNotFound
	}
	m.products[product.ID] = *product
	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

// Carts

func (m *Memory) GetOrCreateCart(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.cartOf(userID); ok {
		return &c, nil
	}
	c := models.Cart{ID: primitive.NewObjectID(), UserID: userID, CreatedAt: time.Now().UTC()}
	m.carts[c.ID] = c
	return &c, nil
}

func (m *Memory) cartOf(userID primitive.ObjectID) (models.Cart, bool) {
	for _, c := range m.carts {
		if c.UserID == userID {
			return c, true
		}
	}
	return models.Cart{}, false
}

func (m *Memory) FindCartByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cartOf(userID)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (m *Memory) ListCartItems(_ context.Context, cartID primitive.ObjectID) ([]models.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.CartItem{}
	for _, it := range m.cartItems {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	sortByID(out, func(it models.CartItem) primitive.ObjectID { return it.ID }, false)
	return out, nil
}

func (m *Memory) AddCartItem(_ context.Context, cartID, productID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, it := range m.cartItems {
		if it.CartID == cartID && it.ProductID == productID {
			it.Quantity += quantity
			m.cartItems[id] = it
			return &it, nil
		}
	}
	it := models.CartItem{
		ID:        primitive.NewObjectID(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	}
	m.cartItems[it.ID] = it
	return &it, nil
}

func (m *Memory) FindCartItem(_ context.Context, userID, itemID primitive.ObjectID) (*models.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.cartItems[itemID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if c, ok := m.carts[it.CartID]; !ok || c.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &it, nil
}

func (m *Memory) SetCartItemQuantity(_ context.Context, itemID primitive.ObjectID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.cartItems[itemID]
	if !ok {
		return store.ErrNotFound
	}
	it.Quantity = quantity
	m.cartItems[itemID] = it
	return nil
}

func (m *Memory) DeleteCartItem(_ context.Context, itemID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cartItems[itemID]; !ok {
		return store.ErrNotFound
	}
	delete(m.cartItems, itemID)
	return nil
}

func (m *Memory) ClearCart(_ context.Context, cartID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, it := range m.cartItems {
		if it.CartID == cartID {
			delete(m.cartItems, id)
		}
	}
	return nil
}

// Orders

func (m *Memory) CreateOrder(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ensureID(&order.ID)
	m.orders[order.ID] = *order
	return nil
}

func (m *Memory) CreateOrderItem(_ context.Context, item *models.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ensureID(&item.ID)
	m.orderItems[item.ID] = *item
	return nil
}

func (m *Memory) DeleteOrder(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for itemID, it := range m.orderItems {
		if it.OrderID == id {
			delete(m.orderItems, itemID)
		}
	}
	if _, ok := m.orders[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *Memory) FindOrder(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (m *Memory) ListOrderItems(_ context.Context, orderID primitive.ObjectID) ([]models.OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.OrderItem{}
	for _, it := range m.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sortByID(out, func(it models.OrderItem) primitive.ObjectID { return it.ID }, false)
	return out, nil
}

func (m *Memory) ListOrdersByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortByID(out, func(o models.Order) primitive.ObjectID { return o.ID }, false)
	return out, nil
}

func (m *Memory) ListAllOrders(_ context.Context) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (m *Memory) UpdateOrderStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus, at time.Time) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = at
	m.orders[id] = o
	return &o, nil
}
