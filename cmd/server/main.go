package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"haul-and-hoard/server/internal/config"
	"haul-and-hoard/server/internal/items"
	"haul-and-hoard/server/internal/net/feed"
	"haul-and-hoard/server/internal/sim"
	"haul-and-hoard/server/internal/telemetry"
	"haul-and-hoard/server/internal/world"
	"haul-and-hoard/server/logging"
	"haul-and-hoard/server/logging/sinks"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags)
	if err := run(*configPath, logger); err != nil {
		logger.Fatalf("fatal: %v", err)
	}
}

func run(configPath string, logger *log.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	router, cleanup, err := buildRouter(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	metrics := &logging.Metrics{}
	tl := telemetry.WrapLogger(logger)
	tm := telemetry.WrapMetrics(metrics)

	w, err := world.New(cfg.WorldConfigValue(), world.Deps{
		Publisher:  router,
		Items:      items.DefaultManifest(),
		Structures: world.DefaultStructureManifest(),
	})
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}

	for _, placement := range cfg.Structures {
		_, err := w.PlaceStructure(
			world.StructureType(placement.Type),
			world.TilePos{X: placement.X, Y: placement.Y},
			world.FacingDirection(placement.Facing),
		)
		if err != nil {
			return fmt.Errorf("seed structure %s at (%d,%d): %w", placement.Type, placement.X, placement.Y, err)
		}
	}

	hub := feed.NewHub(feed.HubConfig{TickRate: cfg.TickRate}, tl, tm)
	defer hub.Close()

	engine := sim.NewWorldEngine(w, tl, tm)
	loop := sim.NewLoop(engine, sim.LoopConfig{
		TickRate:        cfg.TickRate,
		CatchupMaxTicks: cfg.CatchupMaxTicks,
	}, sim.LoopHooks{
		OnTick: func(snapshot world.Snapshot) {
			hub.Broadcast(feed.FrameFromSnapshot(snapshot))
		},
	}, tl, tm)

	mux := http.NewServeMux()
	mux.Handle("/ws", feed.NewHandler(hub, feed.HandlerConfig{Logger: tl}))
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusOK)
		fmt.Fprintln(rw, "ok")
	})
	mux.HandleFunc("/diagnostics", func(rw http.ResponseWriter, _ *http.Request) {
		stats := router.Stats()
		payload := map[string]any{
			"tick":           engine.CurrentTick(),
			"subscribers":    hub.SubscriberCount(),
			"events_total":   stats.EventsTotal,
			"events_dropped": stats.DroppedTotal,
			"metrics":        metrics.Snapshot(),
		}
		rw.Header().Set("Content-Type", "application/json")
		json.NewEncoder(rw).Encode(payload)
	})

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		logger.Printf("listening on %s, ticking at %d Hz", cfg.ListenAddr, cfg.TickRate)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("simulation loop: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Printf("shutting down")
	case runErr = <-errCh:
		logger.Printf("shutting down after error: %v", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	if err := router.Close(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func buildRouter(cfg config.Config) (*logging.Router, func(), error) {
	logCfg := cfg.LoggingConfigValue()

	var named []logging.NamedSink
	var closers []func()
	if logCfg.HasSink("console") {
		named = append(named, logging.NamedSink{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout)})
	}
	if logCfg.HasSink("json") && logCfg.JSON.FilePath != "" {
		file, err := os.OpenFile(logCfg.JSON.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open event log: %w", err)
		}
		closers = append(closers, func() { file.Close() })
		named = append(named, logging.NamedSink{Name: "json", Sink: sinks.NewJSONSink(file, logCfg.JSON.FlushInterval)})
	}
	if logCfg.HasSink("archive") && logCfg.Archive.Dir != "" {
		named = append(named, logging.NamedSink{Name: "archive", Sink: sinks.NewArchiveSink(logCfg.Archive.Dir, logCfg.Archive.Prefix)})
	}

	router, err := logging.NewRouter(nil, logCfg, named)
	if err != nil {
		for _, closeFn := range closers {
			closeFn()
		}
		return nil, nil, err
	}
	cleanup := func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
	return router, cleanup, nil
}
