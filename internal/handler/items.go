package handler

import (
	"net/http"

	"flipdeck-api/internal/model"
	"flipdeck-api/internal/store"
	"flipdeck-api/pkg/response"
)

// ItemHandler handles inventory item requests.
type ItemHandler struct {
	store *store.Store
}

// NewItemHandler creates a new item handler.
func NewItemHandler(s *store.Store) *ItemHandler {
	return &ItemHandler{store: s}
}

type itemRequest struct {
	Category    string  `json:"category" validate:"required"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	MarketValue float64 `json:"marketValue" validate:"omitempty,gte=0"`
	Date        string  `json:"date"`
	Source      string  `json:"source"`
}

func (req itemRequest) fields() store.ItemFields {
	return store.ItemFields{
		Category:    req.Category,
		Brand:       req.Brand,
		Model:       req.Model,
		Price:       req.Price,
		MarketValue: req.MarketValue,
		Date:        req.Date,
		Source:      req.Source,
	}
}

type itemUpdateRequest struct {
	itemRequest
	Status string `json:"status" validate:"omitempty,oneof=available used sold"`
	Force  bool   `json:"force"`
}

// List handles GET /api/v1/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.store.Items(store.ItemQuery{
		Status:   model.ItemStatus(q.Get("status")),
		Category: q.Get("category"),
		Search:   q.Get("q"),
		SortKey:  q.Get("sort"),
		Desc:     q.Get("order") == "desc",
	})
	response.OK(w, items)
}

// Create handles POST /api/v1/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	item, warn, err := h.store.AddItem(r.Context(), req.fields())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusCreated, item, warn)
}

// Get handles GET /api/v1/items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	item, err := h.store.Item(id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, item)
}

// Update handles PUT /api/v1/items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req itemUpdateRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	item, warn, err := h.store.UpdateItem(r.Context(), id, store.ItemUpdate{
		ItemFields: req.fields(),
		Status:     model.ItemStatus(req.Status),
		Force:      req.Force,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, item, warn)
}

// Delete handles DELETE /api/v1/items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	warn, err := h.store.DeleteItem(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, map[string]interface{}{"deleted": id}, warn)
}

type sellRequest struct {
	SoldPrice float64 `json:"soldPrice" validate:"required,gt=0"`
	Buyer     string  `json:"buyer"`
	Date      string  `json:"date"`
	Notes     string  `json:"notes"`
}

func (req sellRequest) fields() store.SaleFields {
	return store.SaleFields{
		SoldPrice: req.SoldPrice,
		Buyer:     req.Buyer,
		Date:      req.Date,
		Notes:     req.Notes,
	}
}

// Sell handles POST /api/v1/items/{id}/sell
func (h *ItemHandler) Sell(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req sellRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	sale, warn, err := h.store.SellItem(r.Context(), id, req.fields())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusCreated, sale, warn)
}

type comboSplitRequest struct {
	ItemIDs     []int64 `json:"itemIds" validate:"required,min=1,dive,gt=0"`
	TargetTotal float64 `json:"targetTotal" validate:"required,gt=0"`
}

// ComboSplit handles POST /api/v1/items/combo-split
func (h *ItemHandler) ComboSplit(w http.ResponseWriter, r *http.Request) {
	var req comboSplitRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	items, warn, err := h.store.ComboSplit(r.Context(), req.ItemIDs, req.TargetTotal)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, items, warn)
}
