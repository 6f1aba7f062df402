package props

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agentur-schein/props-backend/internal/common"
)

// Handler exposes the public catalog endpoints.
type Handler struct {
	Svc *Service
}

// List handles GET /api/props.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.Svc.List(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list props", nil)
		return
	}
	common.JSON(w, http.StatusOK, all)
}

// Get handles GET /api/props/{propID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "propID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid prop id", nil)
		return
	}
	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if IsNotFound(err) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "prop not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load prop", nil)
		return
	}
	common.JSON(w, http.StatusOK, p)
}

// Create handles POST /api/props.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := common.DecodeJSON(r, &in); err != nil {
		common.RenderError(w, err)
		return
	}
	p, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, p)
}
