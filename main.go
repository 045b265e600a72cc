package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/votebox/cliparse"
	"github.com/danielhkuo/votebox/db"
	"github.com/danielhkuo/votebox/election"
	"github.com/danielhkuo/votebox/middleware"
	"github.com/danielhkuo/votebox/router"
)

func main() {
	var err error

	// Optional .env; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the configured store (schema is created on open)
	store, err := db.Open(cfg)
	if err != nil {
		slog.Error("database open failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Database ready", "type", cfg.DatabaseType)

	svc := election.NewService(store)

	if cfg.SeedDemo {
		n, err := seedOrClose(context.Background(), store, svc.Now())
		if err != nil {
			slog.Error("demo seed failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Demo data loaded", "elections", n)
	}

	if cfg.AdminKey == "" {
		slog.Warn("ADMIN_KEY not set; admin routes are open")
	}

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(cfg.CORSOrigin, mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
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

// seedOrClose loads the demo data and closes the store if that fails, since
// the caller exits without running deferred calls.
func seedOrClose(ctx context.Context, store election.Store, now time.Time) (int, error) {
	n, err := election.SeedDemo(ctx, store, now)
	if err != nil {
		if cerr := store.Close(); cerr != nil {
			slog.Warn("store close failed", "error", cerr)
		}
		return 0, err
	}
	return n, nil
}
