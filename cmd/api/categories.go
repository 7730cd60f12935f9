package main

import (
	"errors"
	"fmt"
	"net/http"

	"srok/internal/store"
)

type CreateCategoryPayload struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Categories.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateCategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	category, err := app.store.Categories.Create(r.Context(), payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyCategoryName):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, store.ErrDuplicateCategory):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusCreated, map[string]any{
		"id":      category.ID,
		"name":    category.Name,
		"message": fmt.Sprintf("Category %q created successfully", category.Name),
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "categoryID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	name, err := app.store.Categories.Delete(r.Context(), id)
	if err != nil {
		var inUse *store.InUseError
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("category not found"))
		case errors.As(err, &inUse):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Category %q deleted successfully", name),
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}
