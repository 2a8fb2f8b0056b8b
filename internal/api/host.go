package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"tycoon/internal/sim"
	"tycoon/internal/store"
)

// Host owns the one studio session the daemon serves. It swaps the studio on
// new-game and load, persists snapshots through the store, and fans day
// reports out to stream subscribers.
type Host struct {
	mu     sync.RWMutex
	studio *sim.Studio

	store *store.Store
	seed  int64
	log   *slog.Logger
	hub   *hub
}

func NewHost(studio *sim.Studio, st *store.Store, seed int64, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		studio: studio,
		store:  st,
		seed:   seed,
		log:    logger.With("component", "host"),
		hub:    newHub(logger),
	}
}

func (h *Host) Studio() *sim.Studio {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.studio
}

// NewGame replaces the running session with a fresh studio.
func (h *Host) NewGame(in sim.NewStudioInput) error {
	studio, err := sim.NewStudio(in, h.seed, h.log)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.studio = studio
	h.mu.Unlock()
	return nil
}

// Advance runs one simulated day and pushes the report to stream clients.
func (h *Host) Advance() (sim.DayReport, error) {
	report, err := h.Studio().AdvanceDay()
	if err != nil {
		return sim.DayReport{}, err
	}
	h.hub.broadcast(report)
	return report, nil
}

func (h *Host) Save(ctx context.Context, slot string) error {
	blob, err := h.Studio().Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return h.store.Save(ctx, slot, blob)
}

// Load restores a snapshot from a slot and makes it the running session.
func (h *Host) Load(ctx context.Context, slot string) error {
	blob, err := h.store.Load(ctx, slot)
	if err != nil {
		return err
	}
	studio, err := sim.RestoreStudio(blob, h.seed, h.log)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.studio = studio
	h.mu.Unlock()
	return nil
}

func (h *Host) Saves(ctx context.Context) ([]store.SlotInfo, error) {
	return h.store.List(ctx)
}
