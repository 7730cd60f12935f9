package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"srok/internal/store"
	"srok/internal/uploads"
)

type CreateManufacturerPayload struct {
	Name                  string `json:"name" validate:"required,max=255"`
	Description           string `json:"description" validate:"max=2000"`
	LogoPath              string `json:"logo_path" validate:"max=500"`
	BusinessName          string `json:"business_name" validate:"max=255"`
	BusinessAddress       string `json:"business_address" validate:"max=500"`
	BusinessContact       string `json:"business_contact" validate:"max=255"`
	BusinessSocialNetwork string `json:"business_social_network" validate:"max=255"`
}

func (app *application) listManufacturersHandler(w http.ResponseWriter, r *http.Request) {
	manufacturers, err := app.store.Manufacturers.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, manufacturers); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getManufacturerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "manufacturerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	manufacturer, err := app.store.Manufacturers.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("manufacturer not found"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, manufacturer); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) createManufacturerHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateManufacturerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	manufacturer := &store.Manufacturer{
		Name:                  payload.Name,
		Description:           payload.Description,
		LogoPath:              payload.LogoPath,
		BusinessName:          payload.BusinessName,
		BusinessAddress:       payload.BusinessAddress,
		BusinessContact:       payload.BusinessContact,
		BusinessSocialNetwork: payload.BusinessSocialNetwork,
	}

	if err := app.store.Manufacturers.Create(r.Context(), manufacturer); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateManufacturer):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusCreated, map[string]any{
		"id":      manufacturer.ID,
		"message": "Manufacturer added successfully",
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateManufacturerHandler accepts a multipart form with the manufacturer
// fields plus an optional "logo" file; without a new logo the stored path is
// kept.
func (app *application) updateManufacturerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "manufacturerID")
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
	if name == "" {
		app.badRequestResponse(w, r, fmt.Errorf("name is required"))
		return
	}

	existing, err := app.store.Manufacturers.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("manufacturer not found"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	logoPath := existing.LogoPath
	if file, header, err := r.FormFile("logo"); err == nil {
		defer file.Close()

		logoPath, err = app.uploader.Save(uploads.KindManufacturerLogo, name, header.Filename, file)
		if err != nil {
			if errors.Is(err, uploads.ErrUnsupportedType) || errors.Is(err, uploads.ErrNoFile) {
				app.badRequestResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
	}

	manufacturer := &store.Manufacturer{
		ID:                    id,
		Name:                  name,
		Description:           r.FormValue("description"),
		LogoPath:              logoPath,
		BusinessName:          r.FormValue("business_name"),
		BusinessAddress:       r.FormValue("business_address"),
		BusinessContact:       r.FormValue("business_contact"),
		BusinessSocialNetwork: r.FormValue("business_social_network"),
	}

	if err := app.store.Manufacturers.Update(r.Context(), manufacturer); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("manufacturer not found"))
		case errors.Is(err, store.ErrDuplicateManufacturer):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Manufacturer %q updated successfully", name),
		"id":      id,
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteManufacturerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "manufacturerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	name, err := app.store.Manufacturers.Delete(r.Context(), id)
	if err != nil {
		var inUse *store.InUseError
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, fmt.Errorf("manufacturer not found"))
		case errors.As(err, &inUse):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Manufacturer %q deleted successfully", name),
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
