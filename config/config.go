// Package config loads the CLI's policy settings that sit outside the
// DM06 algorithm itself: queue presizing, log level, the default for the
// approximate cross-check, and Prometheus registration. It mirrors
// the on-disk YAML config loader pattern used elsewhere in the retrieval
// pack (cmd/aleutian/config/loader.go): a package-level singleton loaded
// once, defaults applied when the file is absent.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Engine holds the tuning knobs read by cmd/dlsimplex before constructing
// a simplex.Engine.
type Engine struct {
	// GriggioQueueCapacityHint presizes the Griggio and Bland queues'
	// backing slices (passed as NewEngine's queueCapacityHint) to avoid
	// reallocation on the first few asserts.
	GriggioQueueCapacityHint int `yaml:"griggio_queue_capacity_hint"`
	// LogLevel controls the injected zap.Logger's level: "debug",
	// "info", "warn", or "error".
	LogLevel string `yaml:"log_level"`
	// EnableApproxCrossCheck is the default for the CLI's --approx-check
	// flag: whether to run the gonum-backed float64 sanity check after
	// UpdateInconsistentVars when the flag isn't passed explicitly.
	EnableApproxCrossCheck bool `yaml:"enable_approx_cross_check"`
	// MetricsEnabled toggles Prometheus registration for Stats.
	MetricsEnabled bool `yaml:"metrics_enabled"`
}

func defaults() Engine {
	return Engine{
		GriggioQueueCapacityHint: 64,
		LogLevel:                 "info",
		EnableApproxCrossCheck:   false,
		MetricsEnabled:           true,
	}
}

var (
	Global  Engine
	once    sync.Once
	loadErr error
)

// Load populates Global from ~/.dlsimplex/config.yaml, writing out a
// default file if none exists yet. Safe to call more than once; only the
// first call does any I/O.
func Load() error {
	once.Do(func() {
		loadErr = loadInternal()
	})
	return loadErr
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dlsimplex", "config.yaml"), nil
}

func loadInternal() error {
	Global = defaults()

	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return writeDefault(path)
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, &Global)
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := yaml.Marshal(Global)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
