// routes/routes.go
package routes

import (
	"net/http"

	"go-shop/controllers"
	"go-shop/middleware"

	"github.com/gorilla/mux"
)

// Controllers groups every handler the router serves
type Controllers struct {
	Users      *controllers.UserController
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Carts      *controllers.CartController
	Orders     *controllers.OrderController
}

// RegisterRoutes sets up all the routes for the application. limiter guards
// the credential and checkout endpoints.
func RegisterRoutes(router *mux.Router, c Controllers, limiter *middleware.RateLimiter) {
	limited := func(h http.HandlerFunc) http.Handler {
		return limiter.Limit(h)
	}

	// Auth routes
	auth := router.PathPrefix("/auth").Subrouter()
	auth.Handle("/register/", limited(c.Users.Register)).Methods(http.MethodPost)
	auth.Handle("/login/", limited(c.Users.Login)).Methods(http.MethodPost)
	auth.Handle("/profile/", middleware.AuthMiddleware(http.HandlerFunc(c.Users.GetProfile))).Methods(http.MethodGet)

	// Category routes; registered before /products/{id}/ so "categories" is not taken for an id
	categories := router.PathPrefix("/products/categories").Subrouter()
	categories.HandleFunc("/", c.Categories.GetCategories).Methods(http.MethodGet)
	categories.HandleFunc("/{id}/", c.Categories.GetCategory).Methods(http.MethodGet)

	categoryAdmin := router.PathPrefix("/products/categories").Subrouter()
	categoryAdmin.Use(middleware.AuthMiddleware)
	categoryAdmin.Use(middleware.AdminMiddleware)
	categoryAdmin.HandleFunc("/", c.Categories.CreateCategory).Methods(http.MethodPost)
	categoryAdmin.HandleFunc("/{id}/", c.Categories.UpdateCategory).Methods(http.MethodPut)
	categoryAdmin.HandleFunc("/{id}/", c.Categories.DeleteCategory).Methods(http.MethodDelete)

	// Product routes
	products := router.PathPrefix("/products").Subrouter()
	products.Use(middleware.OptionalAuth)
	products.HandleFunc("/", c.Products.GetProducts).Methods(http.MethodGet)
	products.HandleFunc("/{id}/", c.Products.GetProductByID).Methods(http.MethodGet)

	productWrite := router.PathPrefix("/products").Subrouter()
	productWrite.Use(middleware.AuthMiddleware)
	productWrite.HandleFunc("/", c.Products.CreateProduct).Methods(http.MethodPost)
	productWrite.HandleFunc("/{id}/", c.Products.UpdateProduct).Methods(http.MethodPut, http.MethodPatch)
	productWrite.HandleFunc("/{id}/", c.Products.DeleteProduct).Methods(http.MethodDelete)

	// Cart routes
	cart := router.PathPrefix("/cart").Subrouter()
	cart.Use(middleware.AuthMiddleware)
	cart.HandleFunc("/", c.Carts.GetCart).Methods(http.MethodGet)
	cart.HandleFunc("/add/", c.Carts.AddToCart).Methods(http.MethodPost)
	cart.HandleFunc("/item/{id}/", c.Carts.UpdateCartItem).Methods(http.MethodPatch)
	cart.HandleFunc("/item/{id}/", c.Carts.RemoveCartItem).Methods(http.MethodDelete)

	// Order routes
	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.AuthMiddleware)
	orders.Handle("/checkout/", limited(c.Orders.Checkout)).Methods(http.MethodPost)
	orders.HandleFunc("/my/", c.Orders.MyOrders).Methods(http.MethodGet)
	orders.HandleFunc("/{id}/invoice/", c.Orders.DownloadInvoice).Methods(http.MethodGet)

	// Admin routes
	admin := router.PathPrefix("/orders").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/", c.Orders.AllOrders).Methods(http.MethodGet)
	admin.HandleFunc("/update/{id}/", c.Orders.UpdateOrderStatus).Methods(http.MethodPatch)
}
