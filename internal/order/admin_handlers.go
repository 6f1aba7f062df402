package order

import (
	"net/http"
	"strconv"

	"github.com/agentur-schein/props-backend/internal/common"
)

// AdminHandler serves the admin order listing.
type AdminHandler struct {
	Svc *Service
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := common.ParsePagination(r, 20)
	if perPage > 100 {
		perPage = 100
	}
	orders, total, err := h.Svc.List(r.Context(), perPage, (page-1)*perPage)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list orders", nil)
		return
	}
	if orders == nil {
		orders = []Order{}
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": orders,
		"pagination": common.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: int(total),
		},
	})
}
