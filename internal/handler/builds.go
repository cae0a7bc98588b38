package handler

import (
	"net/http"

	"flipdeck-api/internal/calc"
	"flipdeck-api/internal/model"
	"flipdeck-api/internal/store"
	"flipdeck-api/pkg/response"
)

// BuildHandler handles build requests.
type BuildHandler struct {
	store *store.Store
}

// NewBuildHandler creates a new build handler.
func NewBuildHandler(s *store.Store) *BuildHandler {
	return &BuildHandler{store: s}
}

// buildView decorates a build with its derived figures. These are computed at
// response time from the component snapshots, never stored.
type buildView struct {
	model.Build
	TotalCost      float64 `json:"totalCost"`
	EstimatedValue float64 `json:"estimatedValue"`
	ExpectedProfit float64 `json:"expectedProfit"`
	Margin         float64 `json:"margin"`
}

func viewOf(b model.Build) buildView {
	return buildView{
		Build:          b,
		TotalCost:      calc.BuildCost(b),
		EstimatedValue: calc.EstimatedValue(b),
		ExpectedProfit: calc.ExpectedProfit(b),
		Margin:         calc.Margin(b),
	}
}

type buildRequest struct {
	Name        string  `json:"name" validate:"required"`
	TargetPrice float64 `json:"targetPrice" validate:"omitempty,gte=0"`
	Budget      float64 `json:"budget" validate:"omitempty,gte=0"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
}

func (req buildRequest) fields() store.BuildFields {
	return store.BuildFields{
		Name:        req.Name,
		TargetPrice: req.TargetPrice,
		Budget:      req.Budget,
		ImageURL:    req.ImageURL,
	}
}

// List handles GET /api/v1/builds
func (h *BuildHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	builds := h.store.Builds(store.BuildQuery{
		Status:  model.BuildStatus(q.Get("status")),
		SortKey: q.Get("sort"),
		Desc:    q.Get("order") == "desc",
	})

	views := make([]buildView, len(builds))
	for i, b := range builds {
		views[i] = viewOf(b)
	}
	response.OK(w, views)
}

// Create handles POST /api/v1/builds
func (h *BuildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	build, warn, err := h.store.AddBuild(r.Context(), req.fields())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusCreated, viewOf(build), warn)
}

// Get handles GET /api/v1/builds/{id}
func (h *BuildHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	build, err := h.store.Build(id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, viewOf(build))
}

// Update handles PUT /api/v1/builds/{id}
func (h *BuildHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req buildRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	build, warn, err := h.store.UpdateBuild(r.Context(), id, req.fields())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, viewOf(build), warn)
}

// Delete handles DELETE /api/v1/builds/{id}
func (h *BuildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	warn, err := h.store.DeleteBuild(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, map[string]interface{}{"deleted": id}, warn)
}

type attachRequest struct {
	ItemID int64 `json:"itemId" validate:"required,gt=0"`
}

// Attach handles POST /api/v1/builds/{id}/components
func (h *BuildHandler) Attach(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req attachRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err)
		return
	}

	build, warn, err := h.store.AttachComponent(r.Context(), id, req.ItemID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, viewOf(build), warn)
}

// Detach handles DELETE /api/v1/builds/{id}/components/{itemId}
func (h *BuildHandler) Detach(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	itemID, err := idParam(r, "itemId")
	if err != nil {
		response.Error(w, err)
		return
	}

	build, warn, err := h.store.DetachComponent(r.Context(), id, itemID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, viewOf(build), warn)
}

// Sell handles POST /api/v1/builds/{id}/sell
func (h *BuildHandler) Sell(w http.ResponseWriter, r *http.Request) {
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

	sale, warn, err := h.store.SellBuild(r.Context(), id, req.fields())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusCreated, sale, warn)
}
