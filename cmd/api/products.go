package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"srok/internal/store"
	"srok/internal/uploads"
)

type CreateProductPayload struct {
	Name           string `json:"name" validate:"required,max=255"`
	Category       string `json:"category" validate:"required,max=255"`
	ManufacturerID *int64 `json:"manufacturer_id" validate:"required"`
	Description    string `json:"description" validate:"max=2000"`
	ImagePath      string `json:"image_path" validate:"max=500"`
}

func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{
		Category:     r.URL.Query().Get("category"),
		Manufacturer: r.URL.Query().Get("manufacturer"),
		Search:       r.URL.Query().Get("search"),
	}

	products, err := app.store.Products.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.store.Products.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateProductPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product := &store.Product{
		Name:           payload.Name,
		Category:       payload.Category,
		Description:    payload.Description,
		ManufacturerID: payload.ManufacturerID,
		ImagePath:      payload.ImagePath,
	}

	if err := app.store.Products.Create(r.Context(), product); err != nil {
		switch {
		case errors.Is(err, store.ErrUnknownManufacturer):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusCreated, map[string]any{
		"id":      product.ID,
		"message": "Product added successfully",
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateProductHandler accepts a multipart form with the product fields plus
// an optional "image" file; without a new image the stored path is kept.
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, app.config.maxUploadBytes)
	if err := r.ParseMultipartForm(app.config.maxUploadBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	name := strings.TrimSpace(r.FormValue("name"))
	category := strings.TrimSpace(r.FormValue("category"))
	manufacturerIDStr := strings.TrimSpace(r.FormValue("manufacturer_id"))
	if name == "" || category == "" || manufacturerIDStr == "" {
		app.badRequestResponse(w, r, fmt.Errorf("name, category, and manufacturer_id are required"))
		return
	}

	manufacturerID, err := strconv.ParseInt(manufacturerIDStr, 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid manufacturer_id"))
		return
	}

	existing, err := app.store.Products.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	imagePath := existing.ImagePath
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()

		imagePath, err = app.uploader.Save(uploads.KindProductImage, name, header.Filename, file)
		if err != nil {
			if errors.Is(err, uploads.ErrUnsupportedType) || errors.Is(err, uploads.ErrNoFile) {
				app.badRequestResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
	}

	product := &store.Product{
		ID:             id,
		Name:           name,
		Category:       category,
		Description:    r.FormValue("description"),
		ManufacturerID: &manufacturerID,
		ImagePath:      imagePath,
	}

	if err := app.store.Products.Update(r.Context(), product); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
		case errors.Is(err, store.ErrUnknownManufacturer):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Product %q updated successfully", name),
		"id":      id,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	name, err := app.store.Products.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("product not found"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Product %q deleted successfully", name),
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}
