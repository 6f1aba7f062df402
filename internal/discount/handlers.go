package discount

import (
	"net/http"

	"github.com/agentur-schein/props-backend/internal/common"
)

// Handler serves the discount configuration endpoints. The storefront reads
// the same values the admin edits, so a single handler covers both surfaces.
type Handler struct {
	Svc *Service
}

// Get handles GET /api/discount-settings and GET /api/admin/discount-settings.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Svc.Get(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load discount settings", nil)
		return
	}
	common.JSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/admin/discount-settings.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in Settings
	if err := common.DecodeJSON(r, &in); err != nil {
		common.RenderError(w, err)
		return
	}
	saved, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"message":  "Discount settings updated successfully",
		"settings": saved,
	})
}
