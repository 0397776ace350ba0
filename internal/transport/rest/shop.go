package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/abgdnv/shopfront/internal/service"
	"github.com/abgdnv/shopfront/pkg/web"
)

const (
	shopFormField  = "shop"
	imageFormField = "image"
)

// FindShop returns the shop of the owner named in the path.
func (h *Handler) FindShop(w http.ResponseWriter, r *http.Request) {
	ownerID := strings.TrimSpace(r.PathValue("ownerId"))
	if ownerID == "" || len(ownerID) > web.MaxOwnerIDLength {
		web.RespondError(w, h.logger, http.StatusBadRequest, "ownerId is required")
		return
	}
	shop, err := h.shops.FindByOwner(r.Context(), ownerID)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to retrieve shop")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, shop)
}

// CreateShop creates the caller's shop from a multipart form: a "shop" JSON part and an optional "image" file.
func (h *Handler) CreateShop(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	var dto service.ShopCreateDto
	image, ok := h.parseShopForm(w, r, &dto)
	if !ok {
		return
	}
	created, err := h.shops.Create(r.Context(), ownerID, dto, image)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to create shop")
		return
	}
	h.logger.InfoContext(r.Context(), "Shop created successfully", "shop_id", created.ID)
	web.RespondJSON(w, h.logger, http.StatusCreated, map[string]any{"id": created.ID})
}

// UpdateShop applies a partial update to the caller's shop.
func (h *Handler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := web.GetOwnerID(w, r, h.logger)
	if !ok {
		return
	}
	var dto service.ShopUpdateDto
	image, ok := h.parseShopForm(w, r, &dto)
	if !ok {
		return
	}
	updated, err := h.shops.Update(r.Context(), ownerID, dto, image)
	if err != nil {
		h.respondServiceError(w, r, err, "Failed to update shop")
		return
	}
	h.logger.InfoContext(r.Context(), "Shop updated successfully", "shop_id", updated.ID)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

// parseShopForm decodes the "shop" part into dto and reads the optional image.
func (h *Handler) parseShopForm(w http.ResponseWriter, r *http.Request, dto any) (*service.Image, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			web.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		h.logger.WarnContext(r.Context(), "Error parsing multipart form", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid multipart form")
		return nil, false
	}

	payload := r.FormValue(shopFormField)
	if payload == "" {
		web.RespondError(w, h.logger, http.StatusBadRequest, "shop is required")
		return nil, false
	}
	if err := json.Unmarshal([]byte(payload), dto); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding shop data", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid shop data")
		return nil, false
	}

	file, header, err := r.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error reading image", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid image")
		return nil, false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error reading image", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid image")
		return nil, false
	}
	return &service.Image{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true
}
