package sim

import (
	"encoding/json"
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"time"
)

const snapshotVersion = 1

type snapshot struct {
	Version int         `json:"version"`
	SavedAt time.Time   `json:"saved_at"`
	State   studioState `json:"state"`
}

// Snapshot serializes the full studio state. The blob round-trips through
// RestoreStudio; hosts decide where it lives.
func (s *Studio) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Marshal(snapshot{
		Version: snapshotVersion,
		SavedAt: time.Now().UTC(),
		State:   s.state,
	})
}

// RestoreStudio rebuilds a studio from a snapshot blob. The RNG is reseeded;
// save/load is not expected to replay identical random streams.
func RestoreStudio(data []byte, seed int64, logger *slog.Logger) (*Studio, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("snapshot version %d: %w", snap.Version, ErrInvalidState)
	}
	state := snap.State
	if state.Name == "" {
		return nil, fmt.Errorf("snapshot missing studio name: %w", ErrInvalidState)
	}
	if state.Ledger.Skills == nil {
		state.Ledger.Skills = make(map[string]float64)
	}
	if state.UnlockedGenres == nil {
		state.UnlockedGenres = startingUnlocks(genreLockedIDs())
	}
	if state.UnlockedPlatforms == nil {
		state.UnlockedPlatforms = startingUnlocks(platformLockedIDs())
	}
	if state.Research.Available == nil {
		state.Research.Available = make(map[string]bool)
	}
	if state.Research.Completed == nil {
		state.Research.Completed = make(map[string]bool)
	}

	s := &Studio{
		log:   logger.With("component", "sim"),
		rand:  mathrand.New(mathrand.NewSource(seed)),
		state: state,
	}
	s.log.Info("studio restored", "name", state.Name, "saved_at", snap.SavedAt)
	return s, nil
}
