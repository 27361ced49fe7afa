// openjobseu — EU/UK remote job compliance feed.
//
// Wiring order: config → Postgres → Redis → schema → startup compliance
// repair → cron scheduler → HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aergaroth/openjobseu/internal/api"
	"github.com/aergaroth/openjobseu/internal/compliance"
	"github.com/aergaroth/openjobseu/internal/config"
	"github.com/aergaroth/openjobseu/internal/db"
	"github.com/aergaroth/openjobseu/internal/ingest"
	"github.com/aergaroth/openjobseu/internal/pipeline"
	"github.com/aergaroth/openjobseu/internal/scheduler"
	"github.com/aergaroth/openjobseu/internal/store"
)

const version = "0.3.0"

const (
	bootstrapBatchSize  = 1000
	bootstrapMaxBatches = 100
	sourceHTTPTimeout   = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[openjobseu] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[openjobseu] Postgres error: %v", err)
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[openjobseu] Redis error: %v", err)
	}
	defer rdb.Close()

	st := store.New(pool)
	if err := st.InitSchema(ctx); err != nil {
		log.Fatalf("[openjobseu] Schema error: %v", err)
	}

	// Repair rows persisted under an older ruleset before serving anything.
	if _, err := compliance.RunResolutionForExistingDB(ctx, st, bootstrapBatchSize, bootstrapMaxBatches); err != nil {
		log.Printf("[openjobseu] Compliance bootstrap error: %v (continuing)", err)
	}

	client := &http.Client{Timeout: sourceHTTPTimeout}
	sources := []ingest.Source{
		ingest.NewWeWorkRemotelySource(cfg.WWRFeedURL, client),
		ingest.NewRemotiveSource(cfg.RemotiveAPIURL, client),
		ingest.NewRemoteOKSource(cfg.RemoteOKAPIURL, client),
	}
	for _, board := range cfg.GreenhouseBoards {
		sources = append(sources, ingest.NewGreenhouseSource(board, client))
	}

	tick := pipeline.New(st, rdb, sources)
	sched := scheduler.New(tick, cfg.TickIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[openjobseu] Scheduler error: %v", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.New(st, version).Routes(),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Printf("[openjobseu] Listening on :%s", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("[openjobseu] Shutting down on %s", sig)
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[openjobseu] Shutdown error: %v", err)
		}
	case err := <-errCh:
		log.Fatalf("[openjobseu] Server error: %v", err)
	}
}
