package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"srok/internal/auth"
	"srok/internal/ratelimiter"
	"srok/internal/store"
	"srok/internal/uploads"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	uploader      *uploads.Saver
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr           string
	env            string
	db             dbConfig
	uploadDir      string
	publicDir      string
	maxUploadBytes int64
	auth           authConfig
	rateLimiter    ratelimiter.Config
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type authConfig struct {
	basic basicConfig
	admin adminConfig
	token tokenConfig
}

type basicConfig struct {
	user string
	pass string
}

// adminConfig carries the administrative credential pair from the
// environment; the password is stored as a bcrypt hash, never plaintext.
type adminConfig struct {
	username     string
	passwordHash string
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/info", app.apiInfoHandler)
		r.Post("/login", app.loginHandler)

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/manufacturers", func(r chi.Router) {
			r.Get("/", app.listManufacturersHandler)
			r.Get("/{manufacturerID}", app.getManufacturerHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createManufacturerHandler)
				r.Put("/{manufacturerID}", app.updateManufacturerHandler)
				r.Delete("/{manufacturerID}", app.deleteManufacturerHandler)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", app.listProductsHandler)
			r.Get("/{productID}", app.getProductHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createProductHandler)
				r.Put("/{productID}", app.updateProductHandler)
				r.Delete("/{productID}", app.deleteProductHandler)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", app.listCategoriesHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Post("/", app.createCategoryHandler)
				r.Delete("/{categoryID}", app.deleteCategoryHandler)
			})
		})

		r.Get("/stats", app.getStatsHandler)

		r.Route("/upload", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Post("/product-image", app.uploadProductImageHandler)
			r.Post("/manufacturer-logo", app.uploadManufacturerLogoHandler)
		})
	})

	// demo admin UI plus the uploaded images themselves
	if app.config.publicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(app.config.publicDir)))
	}

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
