package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/maplebear-saf/saf-server/allocation"
	"github.com/maplebear-saf/saf-server/cliparse"
	"github.com/maplebear-saf/saf-server/db"
	"github.com/maplebear-saf/saf-server/middleware"
	"github.com/maplebear-saf/saf-server/refresh"
	"github.com/maplebear-saf/saf-server/router"

	"github.com/maplebear-saf/saf-server/auth"
)

func main() {
	var err error

	// Load .env for local development; absence is fine
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	authSvc := auth.NewService(dbConn, cfg.JWTSecret)

	// Scheduled refresh job, only when a collector is configured
	var job *refresh.Job
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.CollectorURL != "" && cfg.SchoolsCSVPath != "" {
		job = &refresh.Job{
			Collector:      allocation.NewHTTPCollector(cfg.CollectorURL),
			SchoolsCSVPath: cfg.SchoolsCSVPath,
			SnapshotPath:   cfg.SnapshotPath,
			Interval:       cfg.SyncInterval,
		}
		go job.Run(ctx)
	} else {
		slog.Info("refresh job disabled (COLLECTOR_URL or SCHOOLS_CSV_PATH not set)")
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, authSvc, job)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
