package notify

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/agentur-schein/props-backend/internal/common"
	"github.com/agentur-schein/props-backend/internal/obs"
)

// PrintHandler serves the workshop print notification endpoints.
type PrintHandler struct {
	Store PrintStore
}

// List handles GET /api/print-notifications.
func (h *PrintHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.Store.List(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list print notifications", nil)
		return
	}
	if all == nil {
		all = []PrintNotification{}
	}
	common.JSON(w, http.StatusOK, all)
}

// JobSheet handles GET /api/print-notifications/{notificationID}/pdf. The
// sheet goes to the workshop printer alongside the physical prop.
func (h *PrintHandler) JobSheet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "notificationID"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid notification id", nil)
		return
	}
	n, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if err == ErrPrintNotFound {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "print notification not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load print notification", nil)
		return
	}

	pdf, err := renderJobSheet(n)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to render job sheet", nil)
		return
	}
	obs.PrintNotificationsTotal.Inc()

	filename := fmt.Sprintf("print-job-%s.pdf", n.ID)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Filename", filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func renderJobSheet(n PrintNotification) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "PRINT JOB")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	row("Prop:", n.PropName)
	row("Quantity:", fmt.Sprintf("%d", n.Quantity))
	row("Order:", n.OrderID.String())
	row("Requested:", n.CreatedAt.Format("2006-01-02 15:04"))

	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, "Agentur Schein Berlin")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render job sheet: %w", err)
	}
	return buf.Bytes(), nil
}
