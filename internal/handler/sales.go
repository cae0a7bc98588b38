package handler

import (
	"net/http"

	"flipdeck-api/internal/model"
	"flipdeck-api/internal/store"
	"flipdeck-api/pkg/response"
)

// SaleHandler handles sale record requests.
type SaleHandler struct {
	store *store.Store
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(s *store.Store) *SaleHandler {
	return &SaleHandler{store: s}
}

// List handles GET /api/v1/sales
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sales := h.store.Sales(store.SaleQuery{
		Type:    model.SaleType(q.Get("type")),
		SortKey: q.Get("sort"),
		Desc:    q.Get("order") == "desc",
	})
	response.OK(w, sales)
}

// Get handles GET /api/v1/sales/{id}
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	sale, err := h.store.Sale(id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, sale)
}

type saleUpdateRequest struct {
	SoldPrice float64 `json:"soldPrice" validate:"required,gt=0"`
	Buyer     string  `json:"buyer"`
	Date      string  `json:"date"`
	Notes     string  `json:"notes"`
}

// Update handles PUT /api/v1/sales/{id}
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req saleUpdateRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	sale, warn, err := h.store.UpdateSale(r.Context(), id, store.SaleUpdate{
		SoldPrice: req.SoldPrice,
		Buyer:     req.Buyer,
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, sale, warn)
}

// Delete handles DELETE /api/v1/sales/{id}
// Removes the record only; the sold item or build keeps its status.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	warn, err := h.store.DeleteSale(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, map[string]interface{}{"deleted": id}, warn)
}
