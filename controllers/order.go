package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-shop/checkout"
	"go-shop/metrics"
	"go-shop/middleware"
	"go-shop/models"
	"go-shop/notify"
	"go-shop/store"
	"go-shop/utils"
)

// OrderController handles checkout and order management
type OrderController struct {
	Engine  *checkout.Engine
	Orders  store.Orders
	Users   store.Users
	Catalog store.Catalog
	Metrics *metrics.ServerMetrics
}

// NewOrderController creates a new OrderController
func NewOrderController(s *store.Store, engine *checkout.Engine, m *metrics.ServerMetrics) *OrderController {
	return &OrderController{
		Engine:  engine,
		Orders:  s.Orders,
		Users:   s.Users,
		Catalog: s.Catalog,
		Metrics: m,
	}
}

func (oc *OrderController) viewer() orderViewer {
	return orderViewer{users: oc.Users, catalog: oc.Catalog, orders: oc.Orders}
}

// Checkout converts the caller's cart into an order
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req checkout.Request
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	res, err := oc.Engine.Checkout(ctx, principal, req)
	if err != nil {
		if checkout.IsValidation(err) {
			oc.Metrics.CheckoutOutcome("rejected")
		} else {
			oc.Metrics.CheckoutOutcome("failed")
		}
		respondWithErr(w, r, err, "Cart not found")
		return
	}
	oc.Metrics.CheckoutOutcome("success")

	view, err := oc.viewer().build(ctx, res.Order, res.Items)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   view,
	})
}

// MyOrders lists the caller's orders
func (oc *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	ctx, cancel := requestContext(r)
	defer cancel()
	orders, err := oc.Orders.ListOrdersByUser(ctx, principal.UserID)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	views, err := oc.viewer().list(ctx, orders)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

// AllOrders lists every order, newest first (Admin only)
func (oc *OrderController) AllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	orders, err := oc.Orders.ListAllOrders(ctx)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	views, err := oc.viewer().list(ctx, orders)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

func validStatuses() string {
	names := make([]string, len(models.OrderStatuses))
	for i, s := range models.OrderStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// UpdateOrderStatus sets the status of an order (Admin only)
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if _, err := oc.Orders.FindOrder(ctx, id); err != nil {
		respondWithErr(w, r, err, "Order not found")
		return
	}

	if req.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Status is required")
		return
	}
	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status. Valid statuses are: "+validStatuses())
		return
	}

	order, err := oc.Orders.UpdateOrderStatus(ctx, id, status, time.Now().UTC())
	if err != nil {
		respondWithErr(w, r, err, "Order not found")
		return
	}
	view, err := oc.viewer().load(ctx, order)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// DownloadInvoice renders the order's invoice PDF for its owner or an admin
func (oc *OrderController) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	order, err := oc.Orders.FindOrder(ctx, id)
	if err != nil {
		respondWithErr(w, r, err, "Order not found")
		return
	}
	if order.UserID != principal.UserID && !principal.IsAdmin {
		utils.RespondWithError(w, http.StatusForbidden, msgForbidden)
		return
	}

	items, err := oc.Orders.ListOrderItems(ctx, order.ID)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	// a deleted account still gets its invoice, without the bill-to line
	customer, _ := oc.Users.FindUserByID(ctx, order.UserID)

	pdf, err := notify.RenderInvoice(notify.Invoice{Order: order, Items: items, Customer: customer})
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", notify.InvoiceFileName(order)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
