package invoice

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentur-schein/props-backend/internal/common"
	"github.com/agentur-schein/props-backend/internal/events"
	"github.com/agentur-schein/props-backend/internal/obs"
)

// Request is the generate-invoice payload. The discount fraction arrives
// precomputed from the cart so the invoice matches what the customer saw.
type Request struct {
	Items           []LineItem `json:"items"`
	DiscountPercent float64    `json:"discountPercent"`
}

// Handler serves POST /api/generate-invoice.
type Handler struct {
	Events *events.Bus
	Logger zerolog.Logger
	Now    func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Generate renders the invoice PDF and streams it back. The filename is
// duplicated in an X-Filename header because Content-Disposition is awkward
// to read from browser fetch responses.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := common.DecodeJSON(r, &req); err != nil {
		obs.InvoicesGeneratedTotal.WithLabelValues("error").Inc()
		common.RenderError(w, err)
		return
	}

	// One row per item; amounts accrue per row regardless of quantity,
	// matching the storefront's invoice preview.
	var subtotal, printCost float64
	for _, item := range req.Items {
		subtotal += item.Price
		printCost += item.PrintCost
	}
	discountAmount := (subtotal + printCost) * req.DiscountPercent

	issuedAt := h.now()
	doc := Document{
		Number:          Number(issuedAt),
		Date:            issuedAt,
		Items:           req.Items,
		Subtotal:        subtotal,
		PrintCost:       printCost,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  discountAmount,
		Total:           subtotal + printCost - discountAmount,
	}
	pdf, err := Render(doc)
	if err != nil {
		obs.InvoicesGeneratedTotal.WithLabelValues("error").Inc()
		h.Logger.Error().Err(err).Msg("invoice render failed")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to generate invoice", nil)
		return
	}

	if h.Events != nil {
		payload := map[string]any{"invoice_number": doc.Number, "total": doc.Total, "items": len(doc.Items)}
		if _, err := h.Events.Emit(r.Context(), events.TopicOrderInvoiced, uuid.New(), payload); err != nil {
			h.Logger.Warn().Err(err).Msg("emit order.invoiced")
		}
	}
	obs.InvoicesGeneratedTotal.WithLabelValues("ok").Inc()

	filename := doc.Number + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Filename", filename)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.Logger.Warn().Err(err).Msg("invoice write aborted")
	}
}
