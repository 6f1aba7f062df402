package props_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/agentur-schein/props-backend/internal/props"
)

type memStore struct {
	items []props.Prop
}

func (m *memStore) List(context.Context) ([]props.Prop, error) {
	return append([]props.Prop(nil), m.items...), nil
}

func (m *memStore) Get(_ context.Context, id uuid.UUID) (props.Prop, error) {
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return props.Prop{}, props.ErrNotFound
}

func (m *memStore) Create(_ context.Context, in props.Input) (props.Prop, error) {
	p := props.Prop{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		PrintCost:   in.PrintCost,
		Category:    in.Category,
		CreatedAt:   time.Now(),
		Images:      []props.Image{},
	}
	for i, url := range in.Images {
		if i == 5 {
			break
		}
		p.Images = append(p.Images, props.Image{ID: uuid.New(), URL: url, Position: i})
	}
	m.items = append(m.items, p)
	return p, nil
}

func (m *memStore) Update(_ context.Context, id uuid.UUID, patch props.Patch) (props.Prop, error) {
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		p := &m.items[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.PrintCost != nil {
			p.PrintCost = *patch.PrintCost
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Images != nil {
			p.Images = nil
			for j, url := range *patch.Images {
				p.Images = append(p.Images, props.Image{ID: uuid.New(), URL: url, Position: j})
			}
		}
		return *p, nil
	}
	return props.Prop{}, props.ErrNotFound
}

func (m *memStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return props.ErrNotFound
}

func (m *memStore) ReplaceAll(_ context.Context, inputs []props.Input) error {
	m.items = nil
	for _, in := range inputs {
		if _, err := m.Create(context.Background(), in); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore) Count(context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

func newService(store props.Store) *props.Service {
	return &props.Service{Store: store, Cache: props.NewCache(nil, 0), Logger: zerolog.Nop()}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func TestListAndGet(t *testing.T) {
	store := &memStore{}
	svc := newService(store)
	_, err := svc.Create(context.Background(), props.Input{
		Name: "Lightsaber", Description: "Elegant weapon", Price: 999.99, Category: "Weapons",
		Images: props.URLList{"https://example.com/saber.jpg"},
	})
	require.NoError(t, err)

	h := &props.Handler{Svc: svc}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/props", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []props.Prop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "Lightsaber", listed[0].Name)
	require.Len(t, listed[0].Images, 1)

	getRec := httptest.NewRecorder()
	getReq := withURLParam(httptest.NewRequest(http.MethodGet, "/api/props/"+listed[0].ID.String(), nil), "propID", listed[0].ID.String())
	h.Get(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	missRec := httptest.NewRecorder()
	missReq := withURLParam(httptest.NewRequest(http.MethodGet, "/api/props/"+uuid.NewString(), nil), "propID", uuid.NewString())
	h.Get(missRec, missReq)
	require.Equal(t, http.StatusNotFound, missRec.Code)
}

func TestCreateValidation(t *testing.T) {
	h := &props.Handler{Svc: newService(&memStore{})}

	body := `{"name":"","description":"x","price":10,"category":"c"}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/props", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	negative := `{"name":"n","description":"d","price":-5,"category":"c"}`
	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/props", strings.NewReader(negative)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAcceptsImageObjects(t *testing.T) {
	store := &memStore{}
	h := &props.AdminHandler{Svc: newService(store)}

	body := `{"name":"Hat","description":"Fedora","price":25000,"category":"Costumes",
		"images":["https://a/1.jpg",{"image_url":"https://a/2.jpg"}]}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/admin/props", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var created props.Prop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created.Images, 2)
	require.Equal(t, "https://a/2.jpg", created.Images[1].URL)
}

func TestAdminUpdateAndDelete(t *testing.T) {
	store := &memStore{}
	svc := newService(store)
	created, err := svc.Create(context.Background(), props.Input{
		Name: "Goggles", Description: "Night vision", Price: 4999.99, Category: "Accessories",
	})
	require.NoError(t, err)

	h := &props.AdminHandler{Svc: svc}

	update := `{"price":5999.99,"images":["https://a/new.jpg"]}`
	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/admin/props/"+created.ID.String(), strings.NewReader(update)), "propID", created.ID.String())
	h.Update(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated props.Prop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, 5999.99, updated.Price)
	require.Equal(t, "Goggles", updated.Name)
	require.Len(t, updated.Images, 1)

	delRec := httptest.NewRecorder()
	delReq := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/admin/props/"+created.ID.String(), nil), "propID", created.ID.String())
	h.Delete(delRec, delReq)
	require.Equal(t, http.StatusOK, delRec.Code)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestSeedIfEmpty(t *testing.T) {
	store := &memStore{}
	seeded, err := props.SeedIfEmpty(context.Background(), store)
	require.NoError(t, err)
	require.True(t, seeded)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(4), count)

	again, err := props.SeedIfEmpty(context.Background(), store)
	require.NoError(t, err)
	require.False(t, again)
}
