// Package config holds pipeline-tuning configuration: validation
// severity, geometry limits, the face-mapping convention, and
// cache/worker-pool sizing (Ambient Stack "Configuration"). It mirrors
// the teacher's AppConfig/appconfig.go load-save idiom, scoped to the
// import pipeline rather than a UI.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds every tunable knob the DSTV import and cut-execution
// pipeline exposes.
type Config struct {
	// Validation
	ValidationSeverity string  `json:"validation_severity"` // "basic", "standard", "strict"
	MaxProfileLength   float64 `json:"max_profile_length_mm"`
	MaxHoleDiameter    float64 `json:"max_hole_diameter_mm"`

	// Face-mapping convention (D1): "dominant" (v=web, o=top-flange,
	// u=bottom-flange, h=front) or "alternate" (v/o swapped).
	FaceMappingConvention string `json:"face_mapping_convention"`

	// CSG / geometry cache
	CacheMaxSizeBytes int64  `json:"cache_max_size_bytes"`
	CacheMaxEntries   int    `json:"cache_max_entries"`
	CacheTTLSeconds   int    `json:"cache_ttl_seconds"`
	CacheEviction     string `json:"cache_eviction_policy"` // "lru", "lfu", "fifo"

	// Worker pool
	PoolMinWorkers int `json:"pool_min_workers"`
	PoolMaxWorkers int `json:"pool_max_workers"` // 0 = hardware concurrency, capped at 4

	// CSG performance mode default: "fast", "balanced", "quality"
	PerformanceMode string `json:"performance_mode"`
	MaxVertices     int    `json:"max_vertices"`
}

// Default returns a Config populated with the pipeline's documented
// defaults (§4.I, §4.J, §4.K, §5 validation severities).
func Default() Config {
	return Config{
		ValidationSeverity:    "standard",
		MaxProfileLength:      20000,
		MaxHoleDiameter:       500,
		FaceMappingConvention: "dominant",

		CacheMaxSizeBytes: 100 * 1024 * 1024,
		CacheMaxEntries:   1000,
		CacheTTLSeconds:   300,
		CacheEviction:     "lru",

		PoolMinWorkers: 1,
		PoolMaxWorkers: 0,

		PerformanceMode: "balanced",
		MaxVertices:     100000,
	}
}

// DefaultConfigDir returns the default directory for pipeline
// configuration: ~/.dstvcut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".dstvcut")
}

// DefaultConfigPath returns the default path for the pipeline config
// file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Save persists cfg to path as indented JSON, creating missing parent
// directories.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a Config from path. If the file does not exist, it returns
// Default with no error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
