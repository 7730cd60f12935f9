package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srok/internal/store"
)

func TestCreateCategoryHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createFn   func(ctx context.Context, name string) (*store.Category, error)
		wantStatus int
		wantError  string
	}{
		{
			name: "created",
			body: `{"name": "Dairy"}`,
			createFn: func(_ context.Context, name string) (*store.Category, error) {
				return &store.Category{ID: 1, Name: name, CreatedAt: time.Now()}, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "empty name",
			body: `{"name": "   "}`,
			createFn: func(context.Context, string) (*store.Category, error) {
				return nil, store.ErrEmptyCategoryName
			},
			wantStatus: http.StatusBadRequest,
			wantError:  store.ErrEmptyCategoryName.Error(),
		},
		{
			name: "duplicate",
			body: `{"name": "Dairy"}`,
			createFn: func(context.Context, string) (*store.Category, error) {
				return nil, store.ErrDuplicateCategory
			},
			wantStatus: http.StatusConflict,
			wantError:  store.ErrDuplicateCategory.Error(),
		},
		{
			name:       "malformed json",
			body:       `{"name": `,
			createFn:   nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			body: `{"name": "Dairy"}`,
			createFn: func(context.Context, string) (*store.Category, error) {
				return nil, errors.New("connection refused")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, store.Storage{
				Categories: &categoriesMock{createFn: tt.createFn},
			})

			req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			app.createCategoryHandler(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeBody(t, rr)["error"])
			}
			if tt.wantStatus == http.StatusCreated {
				body := decodeBody(t, rr)
				assert.Equal(t, float64(1), body["id"])
				assert.Equal(t, "Dairy", body["name"])
				assert.Equal(t, `Category "Dairy" created successfully`, body["message"])
			}
		})
	}
}

func TestDeleteCategoryHandler(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		deleteFn    func(ctx context.Context, id int64) (string, error)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "deleted",
			id:   "3",
			deleteFn: func(_ context.Context, id int64) (string, error) {
				require.Equal(t, int64(3), id)
				return "Seasonal", nil
			},
			wantStatus:  http.StatusOK,
			wantMessage: `Category "Seasonal" deleted successfully`,
		},
		{
			name: "not found",
			id:   "99",
			deleteFn: func(context.Context, int64) (string, error) {
				return "", store.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "in use",
			id:   "1",
			deleteFn: func(context.Context, int64) (string, error) {
				return "", &store.InUseError{Resource: "category", Name: "Condiments", Count: 4}
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid id",
			id:         "abc",
			deleteFn:   nil,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, store.Storage{
				Categories: &categoriesMock{deleteFn: tt.deleteFn},
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/categories/"+tt.id, nil)
			req = withURLParam(req, "categoryID", tt.id)
			rr := httptest.NewRecorder()

			app.deleteCategoryHandler(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeBody(t, rr)["message"])
			}
			if tt.wantStatus == http.StatusConflict {
				assert.Contains(t, decodeBody(t, rr)["error"], "4 product(s)")
			}
		})
	}
}

func TestListCategoriesHandler(t *testing.T) {
	app := newTestApp(t, store.Storage{
		Categories: &categoriesMock{
			listFn: func(context.Context) ([]store.Category, error) {
				return []store.Category{{ID: 1, Name: "Condiments"}, {ID: 2, Name: "Dairy"}}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rr := httptest.NewRecorder()

	app.listCategoriesHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Condiments")
	assert.Contains(t, rr.Body.String(), "Dairy")
}
