package main

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srok/internal/store"
)

func TestCreateManufacturerHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createFn   func(ctx context.Context, m *store.Manufacturer) error
		wantStatus int
	}{
		{
			name: "created",
			body: `{"name": "CamboChef", "description": "Khmer food producer"}`,
			createFn: func(_ context.Context, m *store.Manufacturer) error {
				require.Equal(t, "CamboChef", m.Name)
				m.ID = 1
				return nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate",
			body: `{"name": "CamboChef"}`,
			createFn: func(context.Context, *store.Manufacturer) error {
				return store.ErrDuplicateManufacturer
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing name",
			body:       `{"description": "nameless"}`,
			createFn:   nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"name": "CamboChef", "bogus": true}`,
			createFn:   nil,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, store.Storage{
				Manufacturers: &manufacturersMock{createFn: tt.createFn},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/manufacturers", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			app.createManufacturerHandler(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				body := decodeBody(t, rr)
				assert.Equal(t, float64(1), body["id"])
				assert.Equal(t, "Manufacturer added successfully", body["message"])
			}
		})
	}
}

func TestGetManufacturerHandler(t *testing.T) {
	app := newTestApp(t, store.Storage{
		Manufacturers: &manufacturersMock{
			getFn: func(_ context.Context, id int64) (*store.Manufacturer, error) {
				if id != 1 {
					return nil, store.ErrNotFound
				}
				return &store.Manufacturer{ID: 1, Name: "CamboChef"}, nil
			},
		},
	})

	t.Run("found", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/manufacturers/1", nil), "manufacturerID", "1")
		rr := httptest.NewRecorder()

		app.getManufacturerHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "CamboChef")
	})

	t.Run("not found", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/manufacturers/99", nil), "manufacturerID", "99")
		rr := httptest.NewRecorder()

		app.getManufacturerHandler(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "manufacturer not found", decodeBody(t, rr)["error"])
	})

	t.Run("invalid id", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/manufacturers/0", nil), "manufacturerID", "0")
		rr := httptest.NewRecorder()

		app.getManufacturerHandler(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateManufacturerHandler(t *testing.T) {
	buildForm := func(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	t.Run("keeps the stored logo without a new file", func(t *testing.T) {
		var updated *store.Manufacturer
		app := newTestApp(t, store.Storage{
			Manufacturers: &manufacturersMock{
				getFn: func(context.Context, int64) (*store.Manufacturer, error) {
					return &store.Manufacturer{ID: 1, Name: "CamboChef", LogoPath: "manufacturer-logos/cambochef_logo_1.png"}, nil
				},
				updateFn: func(_ context.Context, m *store.Manufacturer) error {
					updated = m
					return nil
				},
			},
		})

		body, contentType := buildForm(t, map[string]string{
			"name":        "CamboChef",
			"description": "updated description",
		})

		req := httptest.NewRequest(http.MethodPut, "/api/manufacturers/1", body)
		req.Header.Set("Content-Type", contentType)
		req = withURLParam(req, "manufacturerID", "1")
		rr := httptest.NewRecorder()

		app.updateManufacturerHandler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, updated)
		assert.Equal(t, "manufacturer-logos/cambochef_logo_1.png", updated.LogoPath)
		assert.Equal(t, "updated description", updated.Description)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		app := newTestApp(t, store.Storage{Manufacturers: &manufacturersMock{}})

		body, contentType := buildForm(t, map[string]string{"name": "   "})

		req := httptest.NewRequest(http.MethodPut, "/api/manufacturers/1", body)
		req.Header.Set("Content-Type", contentType)
		req = withURLParam(req, "manufacturerID", "1")
		rr := httptest.NewRecorder()

		app.updateManufacturerHandler(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "name is required", decodeBody(t, rr)["error"])
	})

	t.Run("missing manufacturer", func(t *testing.T) {
		app := newTestApp(t, store.Storage{
			Manufacturers: &manufacturersMock{
				getFn: func(context.Context, int64) (*store.Manufacturer, error) {
					return nil, store.ErrNotFound
				},
			},
		})

		body, contentType := buildForm(t, map[string]string{"name": "Ghost"})

		req := httptest.NewRequest(http.MethodPut, "/api/manufacturers/99", body)
		req.Header.Set("Content-Type", contentType)
		req = withURLParam(req, "manufacturerID", "99")
		rr := httptest.NewRecorder()

		app.updateManufacturerHandler(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteManufacturerHandler(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		deleteFn    func(ctx context.Context, id int64) (string, error)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "deleted",
			id:   "2",
			deleteFn: func(context.Context, int64) (string, error) {
				return "Kirisu", nil
			},
			wantStatus:  http.StatusOK,
			wantMessage: `Manufacturer "Kirisu" deleted successfully`,
		},
		{
			name: "in use",
			id:   "1",
			deleteFn: func(context.Context, int64) (string, error) {
				return "", &store.InUseError{Resource: "manufacturer", Name: "CamboChef", Count: 3}
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "not found",
			id:   "99",
			deleteFn: func(context.Context, int64) (string, error) {
				return "", store.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, store.Storage{
				Manufacturers: &manufacturersMock{deleteFn: tt.deleteFn},
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/manufacturers/"+tt.id, nil)
			req = withURLParam(req, "manufacturerID", tt.id)
			rr := httptest.NewRecorder()

			app.deleteManufacturerHandler(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeBody(t, rr)["message"])
			}
			if tt.wantStatus == http.StatusConflict {
				assert.Contains(t, decodeBody(t, rr)["error"], "cannot delete manufacturer")
			}
		})
	}
}
