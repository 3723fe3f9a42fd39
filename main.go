package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jdevop33/NorthKoreanUnity/libs/mailer"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	storageBackendPostgres = "postgres"
	storageBackendMemory   = "memory"

	geoProviderTag   = "tag"
	geoProviderIPAPI = "ipapi"

	geoLookupTimeout = 2 * time.Second

	devCORSOriginLocalhost = "http://localhost:3000"
	devCORSOriginLoopback  = "http://127.0.0.1:3000"

	trustedProxyLoopbackIPv4 = "127.0.0.1"
	trustedProxyLoopbackIPv6 = "::1"
)

type Config struct {
	Addr                string
	Env                 string
	StorageBackend      string
	DatabaseURL         string
	PublicBaseURL       string
	ContactEmailTo      string
	GeoProvider         string
	ResendAPIKey        string
	MailerFromAddresses map[string]string
}

type App struct {
	cfg *Config
	db  *sql.DB
	log *slog.Logger

	store     ContentStore
	countries CountryResolver
	mailer    *mailer.Mailer
}

type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func main() {
	if err := loadDotEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var db *sql.DB
	if cfg.StorageBackend == storageBackendPostgres {
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			panic(err)
		}
		defer db.Close()

		if err := db.PingContext(context.Background()); err != nil {
			panic(err)
		}
	}

	var mailProvider mailer.Provider
	if cfg.ResendAPIKey != "" {
		mailProvider = mailer.NewResendProvider(cfg.ResendAPIKey)
		logger.Info("mailer initialized", "provider", "resend")
	} else {
		mailProvider = mailer.NewLogProvider(logger)
		logger.Info("mailer initialized", "provider", "log")
	}
	mailClient := mailer.New(mailProvider, cfg.MailerFromAddresses[mailProvider.Name()])

	tagResolver := &LanguageTagResolver{}
	var countries CountryResolver = tagResolver
	if cfg.GeoProvider == geoProviderIPAPI {
		// Real IP geolocation is opt-in and time-bounded; the tag-derived
		// guess remains the fallback so resolution never blocks on the
		// network being slow.
		countries = &FallbackCountryResolver{
			Primary:   &IPAPIResolver{Client: &http.Client{Timeout: geoLookupTimeout}},
			Secondary: tagResolver,
		}
	}

	app := &App{
		cfg:       cfg,
		db:        db,
		log:       logger,
		countries: countries,
		mailer:    mailClient,
	}

	ctx := context.Background()
	if db != nil {
		app.store = NewPGStore(db)
		if err := app.runMigrations(ctx); err != nil {
			panic(err)
		}
		if err := InitMessageCache(ctx, db); err != nil {
			app.log.Error("failed to initialize message cache", "err", err)
		}
	} else {
		app.store = NewMemStore()
	}

	if err := app.seedContent(ctx); err != nil {
		panic(err)
	}

	logger.Info(
		"runtime configuration",
		"env", cfg.Env,
		"addr", cfg.Addr,
		"storage_backend", cfg.StorageBackend,
		"geo_provider", cfg.GeoProvider,
	)

	r := app.newRouter()

	app.log.Info("starting gin API", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		panic(err)
	}
}

func (a *App) newRouter() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies([]string{trustedProxyLoopbackIPv4, trustedProxyLoopbackIPv6}); err != nil {
		panic(err)
	}
	r.Use(gin.Recovery())
	r.Use(a.loggingMiddleware())
	r.Use(a.corsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/cultural-heritage", a.listHeritageItemsHandler)
		api.GET("/cultural-heritage/:id", a.getHeritageItemHandler)
		api.POST("/cultural-heritage", a.createHeritageItemHandler)

		api.GET("/prompt-templates", a.listPromptTemplatesHandler)
		api.GET("/prompt-templates/:id", a.getPromptTemplateHandler)
		api.POST("/prompt-templates", a.createPromptTemplateHandler)

		api.GET("/locale", a.resolveLocaleHandler)
		api.POST("/locale", a.switchLocaleHandler)
		api.GET("/translations", translationsHandler)

		api.POST("/contact", a.contactHandler)
	}

	return r
}

func loadConfig() (*Config, error) {
	backend := strings.TrimSpace(os.Getenv("STORAGE_BACKEND"))
	if backend == "" {
		backend = storageBackendPostgres
	}
	if backend != storageBackendPostgres && backend != storageBackendMemory {
		return nil, fmt.Errorf("STORAGE_BACKEND must be 'postgres' or 'memory'")
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		host := valueFromEnvKeys("PGHOST", "POSTGRES_HOST")
		if host == "" {
			host = "127.0.0.1"
		}
		port := valueFromEnvKeys("PGPORT", "POSTGRES_PORT")
		if port == "" {
			port = "5432"
		}
		dbname := valueFromEnvKeys("PGDATABASE", "POSTGRES_DB")
		user := valueFromEnvKeys("PGUSER", "POSTGRES_USER")
		password := valueFromEnvKeys("PGPASSWORD", "POSTGRES_PASSWORD")
		sslmode := valueFromEnvKeys("PGSSLMODE", "POSTGRES_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		if dbname != "" && user != "" {
			databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, dbname, sslmode)
		}
	}
	if backend == storageBackendPostgres && databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or PG*/POSTGRES_* variables must be configured (or set STORAGE_BACKEND=memory)")
	}

	geoProvider := strings.TrimSpace(os.Getenv("GEO_PROVIDER"))
	if geoProvider == "" {
		geoProvider = geoProviderTag
	}
	if geoProvider != geoProviderTag && geoProvider != geoProviderIPAPI {
		return nil, fmt.Errorf("GEO_PROVIDER must be 'tag' or 'ipapi'")
	}

	publicBase := strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL"))
	if publicBase == "" {
		publicBase = "https://northkoreanunity.org"
	}
	publicBase = strings.TrimRight(publicBase, "/")

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = strings.TrimSpace(os.Getenv("NODE_ENV"))
	}
	if env == "" {
		env = "development"
	}

	cfg := &Config{
		Addr:           valueOrDefault("GIN_ADDR", ":8080"),
		Env:            env,
		StorageBackend: backend,
		DatabaseURL:    databaseURL,
		PublicBaseURL:  publicBase,
		ContactEmailTo: valueOrDefault("CONTACT_EMAIL_TO", "hello@northkoreanunity.local"),
		GeoProvider:    geoProvider,
		ResendAPIKey:   strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		MailerFromAddresses: map[string]string{
			"resend": valueOrDefault("MAILER_FROM_ADDRESS_RESEND", "noreply@mail.northkoreanunity.org"),
			"log":    valueOrDefault("MAILER_FROM_ADDRESS_LOG", "noreply@northkoreanunity.local"),
		},
	}

	return cfg, nil
}

func loadDotEnvFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), "\"")
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func valueFromEnvKeys(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}

func (a *App) runMigrations(ctx context.Context) error {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return err
	}

	if _, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		var exists bool
		if err := a.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE filename = $1)`, file).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		content, err := migrationFiles.ReadFile(filepath.Join("migrations", file))
		if err != nil {
			return err
		}

		tx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, file); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		a.log.Info("applied migration", "file", file)
	}

	return nil
}

func (a *App) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}

func (a *App) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if a.isAllowedCORSOrigin(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *App) isAllowedCORSOrigin(origin string) bool {
	if origin == "" || a.cfg == nil {
		return false
	}
	if a.cfg.PublicBaseURL != "" && origin == a.cfg.PublicBaseURL {
		return true
	}
	if !strings.EqualFold(a.cfg.Env, "development") {
		return false
	}
	return origin == devCORSOriginLocalhost || origin == devCORSOriginLoopback
}

func writeAPIError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Code, "message": apiErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
}
