package order

import (
	"net/http"

	"github.com/agentur-schein/props-backend/internal/common"
)

// Handler serves the public order endpoint.
type Handler struct {
	Svc *Service
}

// Create handles POST /api/orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.RenderError(w, err)
		return
	}
	o, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]string{"id": o.ID.String()})
}
