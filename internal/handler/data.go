package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flipdeck-api/internal/store"
	"flipdeck-api/pkg/apierror"
	"flipdeck-api/pkg/response"
)

// DataHandler handles whole-store export, import and reset.
type DataHandler struct {
	store *store.Store
}

// NewDataHandler creates a new data handler.
func NewDataHandler(s *store.Store) *DataHandler {
	return &DataHandler{store: s}
}

// Export handles GET /api/v1/export. The body is the bare three-key document,
// not the usual response envelope, so the downloaded file can be fed straight
// back into import.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Export()

	filename := fmt.Sprintf("flipdeck_export_%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(snap)
}

// Import handles POST /api/v1/import. Full overwrite, never a merge.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.Error(w, apierror.BadRequest("failed to read request body"))
		return
	}
	defer r.Body.Close()

	warn, err := h.store.Import(r.Context(), body)
	if err != nil {
		response.Error(w, err)
		return
	}

	snap := h.store.Export()
	response.JSONWarn(w, http.StatusOK, map[string]interface{}{
		"imported": true,
		"items":    len(snap.Inventory),
		"builds":   len(snap.Builds),
		"sales":    len(snap.Sales),
	}, warn)
}

// Reset handles POST /api/v1/reset, wiping all three collections.
func (h *DataHandler) Reset(w http.ResponseWriter, r *http.Request) {
	warn, err := h.store.ResetAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWarn(w, http.StatusOK, map[string]interface{}{"reset": true}, warn)
}
