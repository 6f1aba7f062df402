package invoice_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/agentur-schein/props-backend/internal/invoice"
)

func TestNumberFormat(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 30, 45, 0, time.UTC)
	require.Equal(t, "INV-20260315093045", invoice.Number(at))
}

func TestGenerateHeadersAndBody(t *testing.T) {
	issuedAt := time.Date(2026, 3, 15, 9, 30, 45, 0, time.UTC)
	h := &invoice.Handler{Logger: zerolog.Nop(), Now: func() time.Time { return issuedAt }}

	body := `{"items":[
		{"name":"Lightsaber","price":45000,"print_cost":499.99},
		{"name":"Goggles","price":4999.99,"print_cost":0}
	],"discountPercent":0.05}`
	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/generate-invoice", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.Equal(t, "INV-20260315093045.pdf", rec.Header().Get("X-Filename"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "INV-20260315093045.pdf")
	require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"), "response must be a PDF document")
}

func TestGenerateEmptyCart(t *testing.T) {
	h := &invoice.Handler{Logger: zerolog.Nop()}

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/generate-invoice", strings.NewReader(`{"items":[]}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestGenerateRejectsBadJSON(t *testing.T) {
	h := &invoice.Handler{Logger: zerolog.Nop()}

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/generate-invoice", strings.NewReader(`{`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
