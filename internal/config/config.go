package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig drives the daemon: where it listens, where saves live, and how
// fast wall-clock time maps onto simulated days.
type ServerConfig struct {
	Addr            string
	DBPath          string
	TickEvery       time.Duration
	Seed            int64
	AutoAdvance     bool
	AutosaveSlot    string
	StudioName      string
	Difficulty      string
	Specialization  string
	FounderName     string
	ShutdownTimeout time.Duration
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadServerFromEnv() (ServerConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("TYCOON_ADDR", ":8080")
	}

	cfg := ServerConfig{
		Addr:            addr,
		DBPath:          envDefault("TYCOON_DB_PATH", "tycoon.db"),
		TickEvery:       envDurationDefault("TYCOON_TICK_EVERY", 5*time.Second),
		Seed:            envInt64Default("TYCOON_SEED", 0),
		AutoAdvance:     envBoolDefault("TYCOON_AUTO_ADVANCE", true),
		AutosaveSlot:    envDefault("TYCOON_AUTOSAVE_SLOT", "autosave"),
		StudioName:      envDefault("TYCOON_STUDIO_NAME", "New Studio"),
		Difficulty:      envDefault("TYCOON_DIFFICULTY", "normal"),
		Specialization:  envDefault("TYCOON_SPECIALIZATION", "developer"),
		FounderName:     envDefault("TYCOON_FOUNDER_NAME", "Founder"),
		ShutdownTimeout: envDurationDefault("TYCOON_SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if path := strings.TrimSpace(os.Getenv("TYCOON_CONFIG_FILE")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}
	if cfg.TickEvery <= 0 {
		return cfg, fmt.Errorf("tick interval must be positive, got %s", cfg.TickEvery)
	}
	if cfg.DBPath == "" {
		return cfg, fmt.Errorf("save database path is required")
	}
	return cfg, nil
}

// fileConfig mirrors the YAML override file. Every field is optional; set
// fields win over environment values.
type fileConfig struct {
	Addr           string         `yaml:"addr"`
	DBPath         string         `yaml:"db_path"`
	TickEvery      *time.Duration `yaml:"tick_every"`
	Seed           *int64         `yaml:"seed"`
	AutoAdvance    *bool          `yaml:"auto_advance"`
	AutosaveSlot   string         `yaml:"autosave_slot"`
	StudioName     string         `yaml:"studio_name"`
	Difficulty     string         `yaml:"difficulty"`
	Specialization string         `yaml:"specialization"`
	FounderName    string         `yaml:"founder_name"`
}

func (c *ServerConfig) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if fc.Addr != "" {
		c.Addr = fc.Addr
	}
	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.TickEvery != nil {
		c.TickEvery = *fc.TickEvery
	}
	if fc.Seed != nil {
		c.Seed = *fc.Seed
	}
	if fc.AutoAdvance != nil {
		c.AutoAdvance = *fc.AutoAdvance
	}
	if fc.AutosaveSlot != "" {
		c.AutosaveSlot = fc.AutosaveSlot
	}
	if fc.StudioName != "" {
		c.StudioName = fc.StudioName
	}
	if fc.Difficulty != "" {
		c.Difficulty = fc.Difficulty
	}
	if fc.Specialization != "" {
		c.Specialization = fc.Specialization
	}
	if fc.FounderName != "" {
		c.FounderName = fc.FounderName
	}
	return nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("TYC_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
