package controllers

import (
	"net/http"

	"go-shop/middleware"
	"go-shop/models"
	"go-shop/store"
	"go-shop/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartController handles cart-related requests. Every endpoint responds with
// the caller's full cart.
type CartController struct {
	Carts   store.Carts
	Catalog store.Catalog
}

// NewCartController creates a new CartController
func NewCartController(carts store.Carts, catalog store.Catalog) *CartController {
	return &CartController{Carts: carts, Catalog: catalog}
}

func (cc *CartController) respondWithCart(w http.ResponseWriter, r *http.Request, code int, userID primitive.ObjectID) {
	ctx, cancel := requestContext(r)
	defer cancel()
	view, err := loadCartView(ctx, cc.Carts, cc.Catalog, userID)
	if err != nil {
		respondWithErr(w, r, err, "Cart not found")
		return
	}
	utils.RespondWithJSON(w, code, view)
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,len=24,hexadecimal"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=1"`
}

var quantityMessages = map[string]string{
	"product_id":        "Invalid product_id",
	"quantity.required": "Quantity is required",
	"quantity.min":      "Quantity must be at least 1",
}

// GetCart retrieves the user's cart, creating an empty one on first use
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	cc.respondWithCart(w, r, http.StatusOK, principal.UserID)
}

// AddToCart adds quantity (default 1) of a product, merging with an existing line.
// Inactive products are accepted here and rejected at checkout.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req addToCartRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := checkInput(&req, quantityMessages); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product_id")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	product, err := cc.Catalog.FindProduct(ctx, productID)
	if err != nil {
		respondWithErr(w, r, err, "Product not found")
		return
	}

	cart, err := cc.Carts.GetOrCreateCart(ctx, principal.UserID)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	if _, err := cc.Carts.AddCartItem(ctx, cart.ID, product.ID, quantity); err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	cc.respondWithCart(w, r, http.StatusCreated, principal.UserID)
}

// UpdateCartItem overwrites the quantity of one of the caller's cart lines
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	item, ok := cc.ownedItem(w, r, principal)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := checkInput(&req, quantityMessages); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Carts.SetCartItemQuantity(ctx, item.ID, *req.Quantity); err != nil {
		respondWithErr(w, r, err, "Cart item not found")
		return
	}
	cc.respondWithCart(w, r, http.StatusOK, principal.UserID)
}

// RemoveCartItem deletes one of the caller's cart lines
func (cc *CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	item, ok := cc.ownedItem(w, r, principal)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Carts.DeleteCartItem(ctx, item.ID); err != nil {
		respondWithErr(w, r, err, "Cart item not found")
		return
	}
	cc.respondWithCart(w, r, http.StatusOK, principal.UserID)
}

// ownedItem resolves the {id} cart item. Items in other users' carts are
// reported as missing.
func (cc *CartController) ownedItem(w http.ResponseWriter, r *http.Request, principal models.Principal) (*models.CartItem, bool) {
	itemID, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid cart item ID")
		return nil, false
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	item, err := cc.Carts.FindCartItem(ctx, principal.UserID, itemID)
	if err != nil {
		respondWithErr(w, r, err, "Cart item not found")
		return nil, false
	}
	return item, true
}
