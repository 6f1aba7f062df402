package props_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentur-schein/props-backend/internal/props"
)

func TestExportSnapshot(t *testing.T) {
	store := &memStore{}
	svc := newService(store)
	_, err := svc.Create(context.Background(), props.Input{
		Name: "Hoverboard", Description: "Pink board", Price: 12999.99, PrintCost: 299.99,
		Category: "Vehicles", Images: props.URLList{"https://a/board.jpg"},
	})
	require.NoError(t, err)

	exportedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	h := &props.TransferHandler{Svc: svc, Now: func() time.Time { return exportedAt }}

	rec := httptest.NewRecorder()
	h.Export(rec, httptest.NewRequest(http.MethodGet, "/api/admin/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot props.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Equal(t, props.SchemaVersion, snapshot.SchemaVersion)
	require.Equal(t, "2026-03-15T09:30:00Z", snapshot.ExportDate)
	require.Len(t, snapshot.Props, 1)
	require.Equal(t, 299.99, snapshot.Props[0].PrintCost)
	require.Equal(t, []string{"https://a/board.jpg"}, snapshot.Props[0].Images)
}

func TestImportReplacesCatalog(t *testing.T) {
	store := &memStore{}
	svc := newService(store)
	_, err := svc.Create(context.Background(), props.Input{
		Name: "Old", Description: "Stale", Price: 1, Category: "Misc",
	})
	require.NoError(t, err)

	h := &props.TransferHandler{Svc: svc}

	body := `{"schema_version":"1.1","props":[
		{"name":"Fedora","description":"Worn once","price":25000,"print_cost":149.99,
		 "category":"Costumes","images":["https://a/hat.jpg"]},
		{"name":"Goggles","description":"Steampunk","price":4999.99,"print_cost":0,
		 "category":"Accessories","images":[]}
	]}`
	rec := httptest.NewRecorder()
	h.Import(rec, httptest.NewRequest(http.MethodPost, "/api/admin/import", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Database imported successfully")

	all, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Fedora", all[0].Name)
}

func TestImportValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing schema version", `{"props":[]}`, "Missing schema version"},
		{
			"schema mismatch", `{"schema_version":"0.9","props":[]}`,
			"Schema version mismatch. Current: 1.1, Import: 0.9. Please update your import file.",
		},
		{"missing props", `{"schema_version":"1.1"}`, "Invalid data format"},
		{
			"missing fields",
			`{"schema_version":"1.1","props":[{"name":"x"}]}`,
			"Missing required fields",
		},
		{
			"bad price",
			`{"schema_version":"1.1","props":[{"name":"x","description":"d","price":0,"print_cost":0,"category":"c","images":[]}]}`,
			"Invalid price field",
		},
		{
			"bad print cost",
			`{"schema_version":"1.1","props":[{"name":"x","description":"d","price":1,"print_cost":-1,"category":"c","images":[]}]}`,
			"Invalid print cost field",
		},
		{
			"bad images",
			`{"schema_version":"1.1","props":[{"name":"x","description":"d","price":1,"print_cost":0,"category":"c","images":"nope"}]}`,
			"Invalid images field",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{}
			h := &props.TransferHandler{Svc: newService(store)}
			rec := httptest.NewRecorder()
			h.Import(rec, httptest.NewRequest(http.MethodPost, "/api/admin/import", strings.NewReader(tc.body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), tc.want)

			count, err := store.Count(context.Background())
			require.NoError(t, err)
			require.Zero(t, count, "failed import must not touch the catalog")
		})
	}
}
