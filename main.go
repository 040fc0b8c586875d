package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	apihttp "talentdesk/internal/api/http"
	"talentdesk/internal/audit"
	"talentdesk/internal/auth"
	calendarrepo "talentdesk/internal/calendar/infrastructure/postgres"
	calendarhttp "talentdesk/internal/calendar/interfaces/http"
	"talentdesk/internal/eventbus"
	importerapp "talentdesk/internal/importer/application"
	importerhttp "talentdesk/internal/importer/interfaces/http"
	"talentdesk/internal/notify"
	"talentdesk/internal/observability/metrics"
	talentrepo "talentdesk/internal/talent/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	talentChecker := auth.NewTalentChecker(db)
	auditRepo := audit.NewRepository(db)

	talentDirectory := talentrepo.NewTalentRepository(db)
	eventRepo := calendarrepo.NewEventRepository(db)

	bus := eventbus.New()
	if cfg.NotifyWebhookURL != "" {
		channel, err := notify.NewWebhookChannel(cfg.NotifyWebhookURL)
		if err != nil {
			logger.Fatalf("notify channel error: %v", err)
		}
		notify.NewImportNotifier(channel, logger).Register(bus)
	}

	importPolicy, err := importerapp.LoadPolicy()
	if err != nil {
		logger.Fatalf("import policy error: %v", err)
	}
	importService := importerapp.NewService(
		talentDirectory,
		eventRepo,
		importPolicy,
		logger,
		importerapp.WithPublisher(bus),
	)

	go func() {
		ticker := time.NewTicker(cfg.SessionSweepInterval)
		defer ticker.Stop()
		for now := range ticker.C {
			metrics.AddSessionsExpired(importService.Sweep(now))
		}
	}()

	importHandler, err := importerhttp.NewHandler(importService, talentChecker, auditRepo)
	if err != nil {
		logger.Fatalf("import handler error: %v", err)
	}
	exportHandler, err := calendarhttp.NewExportHandler(talentDirectory, eventRepo)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}

	authPolicy := auth.NewDefaultPolicy(
		[]string{"/healthz", "/metrics"},
		nil,
	)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), authPolicy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/imports", importHandler)
	mux.Handle("/api/v1/imports/", importHandler)
	mux.Handle("/api/v1/events", apihttp.NewEventsHandler(db))
	mux.Handle("/api/v1/talents", apihttp.NewTalentsHandler(db))
	mux.Handle("/api/v1/talents/", exportHandler)
	mux.Handle("/api/v1/exports/events.csv", apihttp.NewExportEventsCSVHandler(db))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL          string
	HTTPAddr             string
	JWTSecret            string
	NotifyWebhookURL     string
	SessionSweepInterval time.Duration
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:          getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:             getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:            getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		NotifyWebhookURL:     getenvDefault("NOTIFY_WEBHOOK_URL", ""),
		SessionSweepInterval: getenvDuration("IMPORT_SESSION_SWEEP_INTERVAL", time.Minute),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
