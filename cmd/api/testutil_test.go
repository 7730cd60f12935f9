package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"srok/internal/auth"
	"srok/internal/ratelimiter"
	"srok/internal/store"
	"srok/internal/uploads"
)

func newTestApp(t *testing.T, st store.Storage) *application {
	t.Helper()

	return &application{
		config: config{
			env:            "test",
			maxUploadBytes: 16 << 20,
			auth: authConfig{
				admin: adminConfig{username: "admin"},
				token: tokenConfig{secret: "test-secret", exp: time.Hour, iss: "srok"},
			},
			rateLimiter: ratelimiter.Config{
				RequestsPerTimeFrame: 100,
				TimeFrame:            time.Minute,
			},
		},
		store:         st,
		logger:        zap.NewNop().Sugar(),
		uploader:      &uploads.Saver{Root: t.TempDir()},
		authenticator: auth.NewJWTAuthenticator("test-secret", "srok", "srok", time.Hour),
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(100, time.Minute),
	}
}

// withURLParam injects a chi route parameter so handlers can be exercised
// without mounting the full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

type manufacturersMock struct {
	listFn   func(ctx context.Context) ([]store.Manufacturer, error)
	getFn    func(ctx context.Context, id int64) (*store.Manufacturer, error)
	createFn func(ctx context.Context, m *store.Manufacturer) error
	updateFn func(ctx context.Context, m *store.Manufacturer) error
	deleteFn func(ctx context.Context, id int64) (string, error)
}

func (m *manufacturersMock) List(ctx context.Context) ([]store.Manufacturer, error) {
	return m.listFn(ctx)
}

func (m *manufacturersMock) GetByID(ctx context.Context, id int64) (*store.Manufacturer, error) {
	return m.getFn(ctx, id)
}

func (m *manufacturersMock) Create(ctx context.Context, mf *store.Manufacturer) error {
	return m.createFn(ctx, mf)
}

func (m *manufacturersMock) Update(ctx context.Context, mf *store.Manufacturer) error {
	return m.updateFn(ctx, mf)
}

func (m *manufacturersMock) Delete(ctx context.Context, id int64) (string, error) {
	return m.deleteFn(ctx, id)
}

type productsMock struct {
	listFn   func(ctx context.Context, f store.Filter) ([]store.Product, error)
	getFn    func(ctx context.Context, id int64) (*store.Product, error)
	createFn func(ctx context.Context, p *store.Product) error
	updateFn func(ctx context.Context, p *store.Product) error
	deleteFn func(ctx context.Context, id int64) (string, error)
}

func (m *productsMock) List(ctx context.Context, f store.Filter) ([]store.Product, error) {
	return m.listFn(ctx, f)
}

func (m *productsMock) GetByID(ctx context.Context, id int64) (*store.Product, error) {
	return m.getFn(ctx, id)
}

func (m *productsMock) Create(ctx context.Context, p *store.Product) error {
	return m.createFn(ctx, p)
}

func (m *productsMock) Update(ctx context.Context, p *store.Product) error {
	return m.updateFn(ctx, p)
}

func (m *productsMock) Delete(ctx context.Context, id int64) (string, error) {
	return m.deleteFn(ctx, id)
}

type categoriesMock struct {
	listFn   func(ctx context.Context) ([]store.Category, error)
	createFn func(ctx context.Context, name string) (*store.Category, error)
	deleteFn func(ctx context.Context, id int64) (string, error)
}

func (m *categoriesMock) List(ctx context.Context) ([]store.Category, error) {
	return m.listFn(ctx)
}

func (m *categoriesMock) Create(ctx context.Context, name string) (*store.Category, error) {
	return m.createFn(ctx, name)
}

func (m *categoriesMock) Delete(ctx context.Context, id int64) (string, error) {
	return m.deleteFn(ctx, id)
}

type statsMock struct {
	overviewFn func(ctx context.Context) (*store.Overview, error)
}

func (m *statsMock) Overview(ctx context.Context) (*store.Overview, error) {
	return m.overviewFn(ctx)
}
