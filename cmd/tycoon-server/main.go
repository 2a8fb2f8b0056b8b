package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tycoon/internal/api"
	"tycoon/internal/config"
	"tycoon/internal/sim"
	"tycoon/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadServerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("open save store failed", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	studio, err := bootStudio(ctx, cfg, st, logger)
	if err != nil {
		logger.Error("studio init failed", "err", err)
		os.Exit(1)
	}

	host := api.NewHost(studio, st, cfg.Seed, logger)
	server := api.New(host, logger)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.AutoAdvance {
		go tickLoop(ctx, cfg, host, logger)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := host.Save(shutdownCtx, cfg.AutosaveSlot); err != nil {
			logger.Error("shutdown autosave failed", "err", err)
		}
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("tycoon server listening", "addr", cfg.Addr, "tick_every", cfg.TickEvery.String(), "auto_advance", cfg.AutoAdvance)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// bootStudio restores the autosave slot when one exists, otherwise founds a
// fresh studio from config.
func bootStudio(ctx context.Context, cfg config.ServerConfig, st *store.Store, logger *slog.Logger) (*sim.Studio, error) {
	blob, err := st.Load(ctx, cfg.AutosaveSlot)
	switch {
	case err == nil:
		studio, err := sim.RestoreStudio(blob, cfg.Seed, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("restored autosave", "slot", cfg.AutosaveSlot)
		return studio, nil
	case errors.Is(err, store.ErrNoSave):
		studio, err := sim.NewStudio(sim.NewStudioInput{
			Name:           cfg.StudioName,
			Difficulty:     sim.Difficulty(cfg.Difficulty),
			Specialization: sim.Specialization(cfg.Specialization),
			FounderName:    cfg.FounderName,
		}, cfg.Seed, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("founded new studio", "name", cfg.StudioName, "difficulty", cfg.Difficulty)
		return studio, nil
	default:
		return nil, err
	}
}

// tickLoop drives the simulation in real time. Paused sessions are skipped;
// game over stops the loop until a new game or load replaces the session.
func tickLoop(ctx context.Context, cfg config.ServerConfig, host *api.Host, logger *slog.Logger) {
	ticker := time.NewTicker(cfg.TickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := host.Advance()
			if err != nil {
				if errors.Is(err, sim.ErrInvalidState) || errors.Is(err, sim.ErrGameOver) {
					continue
				}
				logger.Error("tick failed", "err", err)
				continue
			}
			if report.Boundaries.Month {
				saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				if err := host.Save(saveCtx, cfg.AutosaveSlot); err != nil {
					logger.Error("autosave failed", "err", err)
				}
				cancel()
			}
		}
	}
}
