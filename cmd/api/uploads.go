package main

import (
	"errors"
	"fmt"
	"net/http"

	"srok/internal/uploads"
)

// uploadProductImageHandler stores a product image and returns the relative
// path the client persists on the product record.
func (app *application) uploadProductImageHandler(w http.ResponseWriter, r *http.Request) {
	app.handleUpload(w, r, uploads.KindProductImage, "image", "product_name", "product")
}

func (app *application) uploadManufacturerLogoHandler(w http.ResponseWriter, r *http.Request) {
	app.handleUpload(w, r, uploads.KindManufacturerLogo, "logo", "manufacturer_name", "manufacturer")
}

func (app *application) handleUpload(w http.ResponseWriter, r *http.Request, kind uploads.Kind, fileField, nameField, defaultName string) {
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

	file, header, err := r.FormFile(fileField)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("no %s file provided", fileField))
		return
	}
	defer file.Close()

	displayName := r.FormValue(nameField)
	if displayName == "" {
		displayName = defaultName
	}

	path, err := app.uploader.Save(kind, displayName, header.Filename, file)
	if err != nil {
		if errors.Is(err, uploads.ErrUnsupportedType) || errors.Is(err, uploads.ErrNoFile) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	message := "Image uploaded successfully"
	if kind == uploads.KindManufacturerLogo {
		message = "Logo uploaded successfully"
	}

	if err := writeJSON(w, http.StatusCreated, map[string]any{
		"message":   message,
		"file_path": path,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}
