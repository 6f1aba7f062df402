package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// LineItem is one invoice row. Amounts are dollars.
type LineItem struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	PrintCost float64 `json:"print_cost"`
}

// Document carries everything the PDF needs.
type Document struct {
	Number          string
	Date            time.Time
	Items           []LineItem
	Subtotal        float64
	PrintCost       float64
	DiscountPercent float64
	DiscountAmount  float64
	Total           float64
}

// Number formats an invoice number from a timestamp, e.g. INV-20260315093000.
func Number(at time.Time) string {
	return "INV-" + at.Format("20060102150405")
}

// usd formats a dollar amount with a thousands separator, matching the
// storefront's display format.
func usd(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	// insert commas into the integer part
	dot := len(s) - 3
	intPart := s[:dot]
	neg := false
	if len(intPart) > 0 && intPart[0] == '-' {
		neg = true
		intPart = intPart[1:]
	}
	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	prefix := "$"
	if neg {
		prefix = "-$"
	}
	return prefix + string(out) + s[dot:]
}

// Render produces the invoice PDF.
func Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.Cell(0, 12, "INVOICE")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Date: "+doc.Date.Format("2006-01-02"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Invoice #: "+doc.Number)
	pdf.Ln(14)

	const (
		nameW  = 90.0
		moneyW = 30.0
		rowH   = 9.0
	)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	pdf.CellFormat(nameW, rowH, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(moneyW, rowH, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(moneyW, rowH, "Print Cost", "1", 0, "C", true, 0, "")
	pdf.CellFormat(moneyW, rowH, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range doc.Items {
		pdf.CellFormat(nameW, rowH, item.Name, "1", 0, "C", false, 0, "")
		pdf.CellFormat(moneyW, rowH, usd(item.Price), "1", 0, "C", false, 0, "")
		pdf.CellFormat(moneyW, rowH, usd(item.PrintCost), "1", 0, "C", false, 0, "")
		pdf.CellFormat(moneyW, rowH, usd(item.Price+item.PrintCost), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(211, 211, 211)
	totalRow := func(label, value string) {
		pdf.CellFormat(nameW, rowH, "", "1", 0, "C", true, 0, "")
		pdf.CellFormat(moneyW, rowH, "", "1", 0, "C", true, 0, "")
		pdf.CellFormat(moneyW, rowH, label, "1", 0, "R", true, 0, "")
		pdf.CellFormat(moneyW, rowH, value, "1", 1, "R", true, 0, "")
	}
	totalRow("Subtotal:", usd(doc.Subtotal))
	totalRow("Total Print Cost:", usd(doc.PrintCost))
	if doc.DiscountPercent > 0 {
		totalRow(fmt.Sprintf("Discount (%d%%):", int(doc.DiscountPercent*100)), "-"+usd(doc.DiscountAmount))
	}
	totalRow("Total:", usd(doc.Total))

	pdf.SetY(-35)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, "Thank you for your business!")
	pdf.Ln(5)
	pdf.Cell(0, 5, "Agentur Schein Berlin")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
