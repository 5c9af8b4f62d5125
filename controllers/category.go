package controllers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"go-shop/models"
	"go-shop/store"
	"go-shop/utils"
)

// CategoryController serves category reads to everyone and writes to admins
type CategoryController struct {
	Catalog store.Catalog
}

func NewCategoryController(catalog store.Catalog) *CategoryController {
	return &CategoryController{Catalog: catalog}
}

// Slugify lowercases name and joins its words with hyphens
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '_':
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}

type categoryInput struct {
	Name string `json:"name" validate:"required,notblank"`
}

func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	categories, err := cc.Catalog.ListCategories(ctx)
	if err != nil {
		respondWithErr(w, r, err, "")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, categories)
}

func (cc *CategoryController) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	category, err := cc.Catalog.FindCategory(ctx, id)
	if err != nil {
		respondWithErr(w, r, err, "Category not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, category)
}

func (cc *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := decodeCategory(w, r)
	if !ok {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Catalog.CreateCategory(ctx, category); err != nil {
		respondCategoryErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, category)
}

func (cc *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}
	category, ok := decodeCategory(w, r)
	if !ok {
		return
	}
	category.ID = id

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Catalog.UpdateCategory(ctx, category); err != nil {
		respondCategoryErr(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, category)
}

// DeleteCategory also removes the category's products
func (cc *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Catalog.DeleteCategory(ctx, id); err != nil {
		respondWithErr(w, r, err, "Category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	var in categoryInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return nil, false
	}
	if msg := checkInput(&in, map[string]string{"name": "Name is required"}); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return nil, false
	}
	name := strings.TrimSpace(in.Name)
	slug := Slugify(name)
	if slug == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return nil, false
	}
	return &models.Category{Name: name, Slug: slug}, true
}

func respondCategoryErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrDuplicate) {
		utils.RespondWithError(w, http.StatusBadRequest, "Category with this name already exists")
		return
	}
	respondWithErr(w, r, err, "Category not found")
}
