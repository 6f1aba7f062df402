package notify

import (
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/agentur-schein/props-backend/internal/common"
)

// SettingsHandler serves GET|PUT /api/settings.
type SettingsHandler struct {
	Store    SettingsStore
	Validate *validator.Validate
}

// NewSettingsHandler constructs a SettingsHandler with its own validator.
func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{Store: store, Validate: validator.New()}
}

// Get returns the email configuration with the password stripped.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.Get(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load settings", nil)
		return
	}
	common.JSON(w, http.StatusOK, settings.Public())
}

// Update validates and saves the email configuration.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in Settings
	if err := common.DecodeJSON(r, &in); err != nil {
		common.RenderError(w, err)
		return
	}
	if err := h.Validate.Struct(in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid settings", nil)
		return
	}
	saved, err := h.Store.Update(r.Context(), in)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to save settings", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"message":  "Settings updated successfully",
		"settings": saved.Public(),
	})
}
