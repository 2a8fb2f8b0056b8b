package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// ErrNoSave is returned when a slot holds no snapshot.
var ErrNoSave = errors.New("no save in slot")

// Store keeps full-state snapshots in a SQLite file, one row per named slot.
// Snapshots are zstd-compressed; a save either fully replaces the slot or
// leaves it untouched.
type Store struct {
	db  *sql.DB
	log *slog.Logger

	enc *zstd.Encoder
	dec *zstd.Decoder
}

type SlotInfo struct {
	Slot      string    `json:"slot"`
	SizeBytes int64     `json:"size_bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	slot       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create save directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open save database: %w", err)
	}
	// modernc sqlite is happiest with a single writer connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init compressor: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init decompressor: %w", err)
	}
	return &Store{
		db:  db,
		log: logger.With("component", "store"),
		enc: enc,
		dec: dec,
	}, nil
}

func (s *Store) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}

// Save writes a snapshot blob into the named slot, replacing any previous
// snapshot there.
func (s *Store) Save(ctx context.Context, slot string, blob []byte) error {
	if slot == "" {
		return fmt.Errorf("slot name is required")
	}
	packed := s.enc.EncodeAll(blob, nil)
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (slot, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slot, packed, now, now)
	if err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}
	s.log.Info("snapshot saved", "slot", slot, "bytes", len(packed))
	return nil
}

// Load reads back the snapshot in the named slot.
func (s *Store) Load(ctx context.Context, slot string) ([]byte, error) {
	var packed []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE slot = ?`, slot).Scan(&packed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("slot %q: %w", slot, ErrNoSave)
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", slot, err)
	}
	blob, err := s.dec.DecodeAll(packed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress slot %q: %w", slot, err)
	}
	return blob, nil
}

func (s *Store) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", slot, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("slot %q: %w", slot, ErrNoSave)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]SlotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slot, length(data), updated_at FROM saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []SlotInfo
	for rows.Next() {
		var info SlotInfo
		if err := rows.Scan(&info.Slot, &info.SizeBytes, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
