package props

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agentur-schein/props-backend/internal/common"
)

// AdminHandler exposes the admin catalog CRUD endpoints.
type AdminHandler struct {
	Svc *Service
}

// Create handles POST /api/admin/props.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	common.JSON(w, http.StatusOK, p)
}

// Update handles PUT /api/admin/props/{propID}.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "propID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid prop id", nil)
		return
	}
	var patch Patch
	if err := common.DecodeJSON(r, &patch); err != nil {
		common.RenderError(w, err)
		return
	}
	p, err := h.Svc.Update(r.Context(), id, patch)
	if err != nil {
		if IsNotFound(err) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "prop not found", nil)
			return
		}
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/admin/props/{propID}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "propID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid prop id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		if IsNotFound(err) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "prop not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete prop", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]string{"message": "Prop deleted successfully"})
}
