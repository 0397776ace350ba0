package rest

import (
	"net/http"

	"github.com/abgdnv/shopfront/pkg/web"
)

// FindCategories returns the owner's categories in display order.
func (h *Handler) FindCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	categories, err := h.categories.FindSorted(r.Context(), ownerID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch categories")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved categories", "count", len(categories))
	web.RespondJSON(w, h.logger, http.StatusOK, categories)
}

func (h *Handler) FindCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	category, err := h.categories.FindByID(r.Context(), ownerID, id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve category")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, category)
}

// FindProductsByCategory returns the products of a category in display order.
func (h *Handler) FindProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := web.ParseID(w, r, h.logger, "categoryId")
	if !ok {
		return
	}
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	products, err := h.products.FindSortedInCategory(r.Context(), ownerID, categoryID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved products", "category_id", categoryID, "count", len(products))
	web.RespondJSON(w, h.logger, http.StatusOK, products)
}

func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	product, err := h.products.FindByID(r.Context(), ownerID, id)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve product")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, product)
}

// FindProductsByIDs returns the products listed in the ids query parameter, in that order.
func (h *Handler) FindProductsByIDs(w http.ResponseWriter, r *http.Request) {
	ids, ok := web.ParseUUIDList(w, r, h.logger, "ids")
	if !ok {
		return
	}
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	products, err := h.products.FindByIDs(r.Context(), ownerID, ids)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to fetch products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, products)
}
