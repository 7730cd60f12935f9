package main

import (
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	_ "github.com/lib/pq"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"srok/internal/auth"
	"srok/internal/db"
	"srok/internal/ratelimiter"
	"srok/internal/store"
	"srok/internal/uploads"
)

var version = "1.0.0"

func envString(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
		fmt.Println("Invalid", key, "- defaulting to", fallback)
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
		fmt.Println("Invalid", key, "- defaulting to", fallback)
	}
	return fallback
}

// NewLogger creates a zap console logger with colored levels.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	cfg := config{
		addr:           envString("ADDR", ":8080"),
		env:            envString("ENV", "development"),
		uploadDir:      envString("UPLOAD_DIR", "."),
		publicDir:      envString("PUBLIC_DIR", "./public"),
		maxUploadBytes: 16 << 20, // 16MB, rejected before any file write
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxOpenConns: envInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleConns: envInt("DB_MAX_IDLE_CONNS", 30),
			maxIdleTime:  envString("DB_MAX_IDLE_TIME", "15m"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			admin: adminConfig{
				username:     os.Getenv("ADMIN_USERNAME"),
				passwordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				exp:    time.Hour * 24,
				iss:    "srok",
			},
		},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: envInt("RATELIMITER_REQUESTS_COUNT", 200),
			TimeFrame:            5 * time.Second,
			Enabled:              envBool("RATE_LIMITER_ENABLED", false),
		},
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	database, err := db.New(
		cfg.db.addr,
		cfg.db.maxOpenConns,
		cfg.db.maxIdleConns,
		cfg.db.maxIdleTime,
	)
	if err != nil {
		logger.Fatal(err)
	}
	defer database.Close()
	logger.Info("database connection pool established")

	storage := store.NewStorage(database)

	uploader := &uploads.Saver{Root: cfg.uploadDir}

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         storage,
		uploader:      uploader,
		authenticator: jwtAuthenticator,
		rateLimiter:   rateLimiter,
	}

	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return database.Stats()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
