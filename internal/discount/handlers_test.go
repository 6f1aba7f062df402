package discount_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentur-schein/props-backend/internal/discount"
)

type memStore struct {
	saved *discount.Settings
}

func (m *memStore) Get(context.Context) (discount.Settings, error) {
	if m.saved == nil {
		def := discount.DefaultSettings()
		def.UpdatedAt = time.Now()
		m.saved = &def
	}
	return *m.saved, nil
}

func (m *memStore) Update(_ context.Context, s discount.Settings) (discount.Settings, error) {
	s.UpdatedAt = time.Now()
	m.saved = &s
	return s, nil
}

func TestGetCreatesDefaults(t *testing.T) {
	h := &discount.Handler{Svc: discount.NewService(&memStore{})}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/discount-settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got discount.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 5, got.Tier1Quantity)
	require.Equal(t, 0.05, got.Tier1Discount)
	require.Equal(t, 10, got.Tier2Quantity)
	require.Equal(t, 0.10, got.Tier2Discount)
}

func TestUpdatePersists(t *testing.T) {
	store := &memStore{}
	h := &discount.Handler{Svc: discount.NewService(store)}

	body := `{"tier1_quantity":3,"tier1_discount":0.07,"tier2_quantity":8,"tier2_discount":0.15}`
	rec := httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/admin/discount-settings", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Discount settings updated successfully")

	saved, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, saved.Tier1Quantity)
	require.Equal(t, 0.15, saved.Tier2Discount)
}

func TestUpdateValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"tier2 not above tier1",
			`{"tier1_quantity":10,"tier1_discount":0.05,"tier2_quantity":10,"tier2_discount":0.10}`,
			"tier2_quantity must be greater than tier1_quantity",
		},
		{
			"zero quantity",
			`{"tier1_quantity":0,"tier1_discount":0.05,"tier2_quantity":10,"tier2_discount":0.10}`,
			"tier1_quantity must be at least 1",
		},
		{
			"discount above one",
			`{"tier1_quantity":5,"tier1_discount":1.5,"tier2_quantity":10,"tier2_discount":0.10}`,
			"tier1_discount must be a fraction between 0 and 1",
		},
		{
			"negative discount",
			`{"tier1_quantity":5,"tier1_discount":0.05,"tier2_quantity":10,"tier2_discount":-0.1}`,
			"tier2_discount must be a fraction between 0 and 1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{}
			h := &discount.Handler{Svc: discount.NewService(store)}
			rec := httptest.NewRecorder()
			h.Update(rec, httptest.NewRequest(http.MethodPut, "/api/admin/discount-settings", strings.NewReader(tc.body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), tc.want)
			require.Nil(t, store.saved, "invalid settings must not be stored")
		})
	}
}

func TestSettingsTiers(t *testing.T) {
	s := discount.Settings{Tier1Quantity: 4, Tier1Discount: 0.02, Tier2Quantity: 9, Tier2Discount: 0.2}
	tiers := s.Tiers()
	require.Equal(t, 4, tiers.Tier1Quantity)
	require.Equal(t, 0.02, tiers.Tier1Discount)
	require.Equal(t, 9, tiers.Tier2Quantity)
	require.Equal(t, 0.2, tiers.Tier2Discount)
}
