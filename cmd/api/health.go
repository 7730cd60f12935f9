package main

import (
	"net/http"
	"time"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":    "healthy",
		"env":       app.config.env,
		"version":   version,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) apiInfoHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"name":    "Srok Products API",
		"version": version,
		"endpoints": map[string]string{
			"GET /api/health":                      "Health check",
			"GET /api/info":                        "API information",
			"GET /api/manufacturers":               "Get all manufacturers",
			"GET /api/manufacturers/{id}":          "Get specific manufacturer by ID",
			"POST /api/manufacturers":              "Add new manufacturer",
			"PUT /api/manufacturers/{id}":          "Update manufacturer (form, optional logo file)",
			"DELETE /api/manufacturers/{id}":       "Delete manufacturer by ID (if no products reference it)",
			"GET /api/products":                    "Get all products (supports ?category=, ?manufacturer=, ?search=)",
			"GET /api/products/{id}":               "Get specific product by ID",
			"POST /api/products":                   "Add new product",
			"PUT /api/products/{id}":               "Update product (form, optional image file)",
			"DELETE /api/products/{id}":            "Delete product by ID",
			"GET /api/categories":                  "Get all categories",
			"POST /api/categories":                 "Add new category",
			"DELETE /api/categories/{id}":          "Delete category by ID (if no products use it)",
			"GET /api/stats":                       "Get database statistics",
			"POST /api/upload/product-image":       "Upload product image file",
			"POST /api/upload/manufacturer-logo":   "Upload manufacturer logo file",
			"POST /api/login":                      "Authenticate admin user",
		},
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getStatsHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := app.store.Stats.Overview(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, overview); err != nil {
		app.internalServerError(w, r, err)
	}
}
