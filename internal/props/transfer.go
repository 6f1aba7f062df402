package props

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agentur-schein/props-backend/internal/common"
	"github.com/agentur-schein/props-backend/internal/events"
	"github.com/agentur-schein/props-backend/internal/lock"
	"github.com/agentur-schein/props-backend/internal/obs"
)

// importLockKey serializes whole-catalog imports across API instances.
const importLockKey = "props:import:lock"

// SchemaVersion identifies the snapshot layout; imports with any other
// version are rejected so stale export files fail loudly.
const SchemaVersion = "1.1"

// Snapshot is the whole-catalog exchange format.
type Snapshot struct {
	SchemaVersion string         `json:"schema_version"`
	ExportDate    string         `json:"export_date"`
	Props         []SnapshotProp `json:"props"`
}

// SnapshotProp is one catalog entry in the exchange format; images are bare URLs.
type SnapshotProp struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	PrintCost   float64  `json:"print_cost"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// TransferHandler serves the admin export/import endpoints.
type TransferHandler struct {
	Svc    *Service
	Events *events.Bus
	Lock   *lock.Mutex
	Now    func() time.Time
}

func (h *TransferHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

// Export handles GET /api/admin/export.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	all, err := h.Svc.Store.List(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to export catalog", nil)
		return
	}
	snapshot := Snapshot{
		SchemaVersion: SchemaVersion,
		ExportDate:    h.now().Format(time.RFC3339),
		Props:         make([]SnapshotProp, 0, len(all)),
	}
	for _, p := range all {
		urls := make([]string, 0, len(p.Images))
		for _, img := range p.Images {
			urls = append(urls, img.URL)
		}
		snapshot.Props = append(snapshot.Props, SnapshotProp{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			PrintCost:   p.PrintCost,
			Category:    p.Category,
			Images:      urls,
		})
	}
	common.JSON(w, http.StatusOK, snapshot)
}

// Import handles POST /api/admin/import. The snapshot replaces the whole
// catalog; validation runs over every entry before anything is touched.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	var raw struct {
		SchemaVersion *string           `json:"schema_version"`
		Props         []json.RawMessage `json:"props"`
	}
	if err := common.DecodeJSON(r, &raw); err != nil {
		obs.CatalogImportsTotal.WithLabelValues("error").Inc()
		common.RenderError(w, err)
		return
	}
	if raw.SchemaVersion == nil {
		obs.CatalogImportsTotal.WithLabelValues("error").Inc()
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing schema version", nil)
		return
	}
	if *raw.SchemaVersion != SchemaVersion {
		obs.CatalogImportsTotal.WithLabelValues("error").Inc()
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST",
			fmt.Sprintf("Schema version mismatch. Current: %s, Import: %s. Please update your import file.", SchemaVersion, *raw.SchemaVersion), nil)
		return
	}
	if raw.Props == nil {
		obs.CatalogImportsTotal.WithLabelValues("error").Inc()
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid data format", nil)
		return
	}

	inputs := make([]Input, 0, len(raw.Props))
	for _, entry := range raw.Props {
		in, err := parseSnapshotProp(entry)
		if err != nil {
			obs.CatalogImportsTotal.WithLabelValues("error").Inc()
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
			return
		}
		inputs = append(inputs, in)
	}

	replace := func(ctx context.Context) error {
		return h.Svc.Store.ReplaceAll(ctx, inputs)
	}
	var err error
	if h.Lock != nil {
		err = h.Lock.Do(r.Context(), importLockKey, 30*time.Second, replace)
	} else {
		err = replace(r.Context())
	}
	if err != nil {
		obs.CatalogImportsTotal.WithLabelValues("error").Inc()
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to import catalog", nil)
		return
	}
	if err := h.Svc.Cache.Invalidate(r.Context()); err != nil {
		h.Svc.Logger.Warn().Err(err).Msg("props cache invalidation failed")
	}
	if h.Events != nil {
		if _, err := h.Events.Emit(r.Context(), events.TopicCatalogImported, uuid.New(), map[string]any{"count": len(inputs)}); err != nil {
			h.Svc.Logger.Warn().Err(err).Msg("emit catalog.imported")
		}
	}
	obs.CatalogImportsTotal.WithLabelValues("ok").Inc()
	common.JSON(w, http.StatusOK, map[string]string{"message": "Database imported successfully"})
}

// parseSnapshotProp validates one snapshot entry field by field, matching
// the permissive wire shapes the admin UI has produced over time.
func parseSnapshotProp(entry json.RawMessage) (Input, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return Input{}, fmt.Errorf("Invalid prop data format")
	}
	for _, key := range []string{"name", "description", "price", "print_cost", "category", "images"} {
		if _, ok := fields[key]; !ok {
			return Input{}, fmt.Errorf("Missing required fields")
		}
	}

	var in Input
	if err := json.Unmarshal(fields["name"], &in.Name); err != nil || in.Name == "" {
		return Input{}, fmt.Errorf("Invalid name field")
	}
	if err := json.Unmarshal(fields["description"], &in.Description); err != nil || in.Description == "" {
		return Input{}, fmt.Errorf("Invalid description field")
	}
	if err := json.Unmarshal(fields["price"], &in.Price); err != nil || in.Price <= 0 {
		return Input{}, fmt.Errorf("Invalid price field")
	}
	if err := json.Unmarshal(fields["print_cost"], &in.PrintCost); err != nil || in.PrintCost < 0 {
		return Input{}, fmt.Errorf("Invalid print cost field")
	}
	if err := json.Unmarshal(fields["category"], &in.Category); err != nil || in.Category == "" {
		return Input{}, fmt.Errorf("Invalid category field")
	}
	var urls []string
	if err := json.Unmarshal(fields["images"], &urls); err != nil {
		return Input{}, fmt.Errorf("Invalid images field")
	}
	in.Images = urls
	return in, nil
}
