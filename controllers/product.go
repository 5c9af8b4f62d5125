package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go-shop/middleware"
	"go-shop/models"
	"go-shop/store"
	"go-shop/utils"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductController handles product-related requests
type ProductController struct {
	Catalog store.Catalog
}

// NewProductController creates a new ProductController
func NewProductController(catalog store.Catalog) *ProductController {
	return &ProductController{Catalog: catalog}
}

var orderings = map[string]bool{
	store.OrderByNewest:    true,
	store.OrderByOldest:    true,
	store.OrderByPrice:     true,
	store.OrderByPriceDesc: true,
}

// productInput carries both full (PUT) and partial (PATCH) payloads
type productInput struct {
	Title       *string          `json:"title" validate:"omitempty,notblank"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,len=24,hexadecimal"`
	Image       *string          `json:"image"`
	IsActive    *bool            `json:"is_active"`
}

var productMessages = map[string]string{
	"title":       "Title may not be blank",
	"price":       "Price must be greater than or equal to 0",
	"category_id": "Invalid category_id",
}

// apply copies the provided fields onto p. When full is set, title, price
// and category are required.
func (in productInput) apply(p *models.Product, full bool) string {
	if full && (in.Title == nil || in.Price == nil || in.CategoryID == nil) {
		return "Title, price and category_id are required"
	}
	if msg := checkInput(&in, productMessages); msg != "" {
		return msg
	}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = *in.Description
	} else if full {
		p.Description = ""
	}
	if in.Price != nil {
		p.Price = in.Price.Round(2)
	}
	if in.CategoryID != nil {
		id, err := primitive.ObjectIDFromHex(*in.CategoryID)
		if err != nil {
			return "Invalid category_id"
		}
		p.CategoryID = id
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	} else if full {
		p.IsActive = true
	}
	return ""
}

// GetProducts lists the catalog. Anonymous callers and regular users only see
// active products unless they filter by creator.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ProductFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Ordering: store.OrderByNewest,
	}
	if ordering := q.Get("ordering"); orderings[ordering] {
		filter.Ordering = ordering
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid category_id")
			return
		}
		filter.CategoryID = &id
	}

	principal, authenticated := middleware.PrincipalFromContext(r.Context())
	switch raw := q.Get("created_by"); {
	case raw != "":
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid created_by")
			return
		}
		filter.CreatedBy = &id
	case authenticated && principal.IsAdmin:
	default:
		filter.ActiveOnly = true
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	products, err := pc.Catalog.ListProducts(ctx, filter)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GetProductByID hides inactive products from everyone but admins and the creator
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	product, err := pc.Catalog.FindProduct(ctx, id)
	if err != nil {
		respondWithErr(w, r, err, "Product not found")
		return
	}

	var viewer *models.Principal
	if p, ok := middleware.PrincipalFromContext(r.Context()); ok {
		viewer = &p
	}
	if !product.VisibleTo(viewer) {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct adds a product owned by the caller
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var in productInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	product := &models.Product{CreatedBy: principal.UserID}
	if msg := in.apply(product, true); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	if !pc.categoryExists(w, r, product.CategoryID) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	now := time.Now().UTC()
	product.CreatedAt, product.UpdatedAt = now, now
	if err := pc.Catalog.CreateProduct(ctx, product); err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct serves PUT (full replacement) and PATCH (partial update)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := pc.editable(w, r)
	if !ok {
		return
	}

	var in productInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	previousCategory := product.CategoryID
	if msg := in.apply(product, r.Method == http.MethodPut); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	if product.CategoryID != previousCategory && !pc.categoryExists(w, r, product.CategoryID) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	product.UpdatedAt = time.Now().UTC()
	if err := pc.Catalog.UpdateProduct(ctx, product); err != nil {
		respondWithErr(w, r, err, "Product not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product. Cart and order lines that reference it are kept.
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := pc.editable(w, r)
	if !ok {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := pc.Catalog.DeleteProduct(ctx, product.ID); err != nil {
		respondWithErr(w, r, err, "Product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// editable loads the product named in the path and checks the caller may change it
func (pc *ProductController) editable(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return nil, false
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	product, err := pc.Catalog.FindProduct(ctx, id)
	if err != nil {
		respondWithErr(w, r, err, "Product not found")
		return nil, false
	}
	if !product.EditableBy(principal) {
		utils.RespondWithError(w, http.StatusForbidden, msgForbidden)
		return nil, false
	}
	return product, true
}

func (pc *ProductController) categoryExists(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) bool {
	ctx, cancel := requestContext(r)
	defer cancel()
	_, err := pc.Catalog.FindCategory(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondWithError(w, http.StatusBadRequest, "Category not found")
		return false
	}
	if err != nil {
		respondWithErr(w, r, err, "")
		return false
	}
	return true
}
