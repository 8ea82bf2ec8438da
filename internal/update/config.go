package update

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/kalenobrien15/taskroulette/internal/ledger"
	"github.com/kalenobrien15/taskroulette/internal/session"
)

// RuntimeConfig carries the tunables read once at startup. Everything has a
// working default; environment variables override individual fields.
type RuntimeConfig struct {
	DBPath           string
	Mute             bool
	SpinCost         int
	SkipCost         int
	MilestoneDivisor int
	StreakThreshold  int
	ReelWindow       int
}

func DefaultRuntimeConfig() RuntimeConfig {
	costs := session.DefaultCostPolicy()
	awards := ledger.DefaultAwardConfig()
	return RuntimeConfig{
		DBPath:           defaultDBPath(),
		Mute:             false,
		SpinCost:         costs.SpinCost,
		SkipCost:         costs.SkipCost,
		MilestoneDivisor: awards.MilestoneDivisor,
		StreakThreshold:  awards.StreakThreshold,
		ReelWindow:       5,
	}
}

// RuntimeConfigFromEnv layers TASKROULETTE_* environment overrides on top of
// the defaults.
func RuntimeConfigFromEnv() RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	if path := os.Getenv("TASKROULETTE_DB_PATH"); path != "" {
		cfg.DBPath = path
	}
	cfg.Mute = getEnvBool("TASKROULETTE_MUTE", cfg.Mute)
	cfg.SpinCost = getEnvInt("TASKROULETTE_SPIN_COST", cfg.SpinCost)
	cfg.SkipCost = getEnvInt("TASKROULETTE_SKIP_COST", cfg.SkipCost)
	cfg.MilestoneDivisor = getEnvInt("TASKROULETTE_MILESTONE_DIVISOR", cfg.MilestoneDivisor)
	cfg.StreakThreshold = getEnvInt("TASKROULETTE_STREAK_THRESHOLD", cfg.StreakThreshold)
	cfg.ReelWindow = getEnvInt("TASKROULETTE_REEL_WINDOW", cfg.ReelWindow)
	return cfg
}

// SessionConfig maps the runtime tunables onto the session's config.
func (c RuntimeConfig) SessionConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.Costs = session.CostPolicy{SpinCost: c.SpinCost, SkipCost: c.SkipCost}
	cfg.Awards = ledger.AwardConfig{MilestoneDivisor: c.MilestoneDivisor, StreakThreshold: c.StreakThreshold}
	return cfg
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskroulette.db"
	}
	return filepath.Join(home, ".taskroulette", "taskroulette.db")
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
