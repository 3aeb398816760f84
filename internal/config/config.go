// Package config implements OptimizerConfig, the JSON-file-persisted
// tuning knobs for a run: kerf, min-trim, grain policy, priority,
// accuracy factor, and the scheduler/selector tunables.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/cutstock/internal/placement"
	"github.com/piwi3910/cutstock/internal/ranking"
)

// OptimizerConfig holds every per-run tunable named in spec.md §6 and
// the selector/scheduler Open Question decisions.
type OptimizerConfig struct {
	Kerf    float64 `json:"kerf" mapstructure:"kerf"`
	MinTrim float64 `json:"min_trim" mapstructure:"min_trim"`

	ConsiderGrain        bool             `json:"consider_grain" mapstructure:"consider_grain"`
	OptimizationPriority ranking.Priority `json:"optimization_priority" mapstructure:"optimization_priority"`
	AccuracyFactor       int              `json:"accuracy_factor" mapstructure:"accuracy_factor"`
	UseSingleStockUnit   bool             `json:"use_single_stock_unit" mapstructure:"use_single_stock_unit"`

	MaxSimultaneousThreads int `json:"max_simultaneous_threads" mapstructure:"max_simultaneous_threads"`
	ThreadCheckIntervalMs  int `json:"thread_check_interval_ms" mapstructure:"thread_check_interval_ms"`

	Selector  SelectorConfig  `json:"selector" mapstructure:"selector"`
	Scheduler SchedulerConfig `json:"scheduler" mapstructure:"scheduler"`
}

// SelectorConfig holds the stock-selector tunables from the Open
// Question decisions: the initial combination-length hint and the
// enumeration ceiling.
type SelectorConfig struct {
	LengthHint     int `json:"length_hint" mapstructure:"length_hint"`
	GeneratorLimit int `json:"generator_limit" mapstructure:"generator_limit"`
}

// SchedulerConfig holds the scheduler fan-out tunables: the
// "extra permutations with an all-fit solution already found" budget,
// the distinct-group permutation cap (how many of the largest groups
// GroupPermutations actually permutes; the subgroup-split threshold and
// size scale dynamically with demand size instead, as max(tiles/100,
// 1)), and the thread-eligibility heuristic's floor/min-samples.
type SchedulerConfig struct {
	ExtraPermutationsWithSolution int     `json:"extra_permutations_with_solution" mapstructure:"extra_permutations_with_solution"`
	DistinctGroupPermutationCap   int     `json:"distinct_group_permutation_cap" mapstructure:"distinct_group_permutation_cap"`
	AxisEligibilityFloor          float64 `json:"axis_eligibility_floor" mapstructure:"axis_eligibility_floor"`
	AxisEligibilityMinSamples     int     `json:"axis_eligibility_min_samples" mapstructure:"axis_eligibility_min_samples"`
}

// DefaultOptimizerConfig returns the engine's out-of-the-box tuning.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		Kerf:                   3,
		MinTrim:                10,
		ConsiderGrain:          true,
		OptimizationPriority:   ranking.PriorityMostTiles,
		AccuracyFactor:         10,
		UseSingleStockUnit:     false,
		MaxSimultaneousThreads: 4,
		ThreadCheckIntervalMs:  100,
		Selector: SelectorConfig{
			LengthHint:     1,
			GeneratorLimit: 1000,
		},
		Scheduler: SchedulerConfig{
			ExtraPermutationsWithSolution: 150,
			DistinctGroupPermutationCap:   7,
			AxisEligibilityFloor:          0,
			AxisEligibilityMinSamples:     3,
		},
	}
}

// GrainPolicy translates ConsiderGrain into the placement package's
// policy enum.
func (c OptimizerConfig) GrainPolicy() placement.GrainPolicy {
	if c.ConsiderGrain {
		return placement.Respect
	}
	return placement.Ignore
}

// DefaultConfigDir returns ~/.cutstock, creating no directory itself.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cutstock")
}

// DefaultConfigPath returns ~/.cutstock/config.json.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Save persists cfg to path as indented JSON, creating parent
// directories as needed.
func Save(path string, cfg OptimizerConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads an OptimizerConfig from path. If the file does not exist,
// it returns DefaultOptimizerConfig with no error.
func Load(path string) (OptimizerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultOptimizerConfig(), nil
		}
		return OptimizerConfig{}, err
	}
	var cfg OptimizerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return OptimizerConfig{}, err
	}
	return cfg, nil
}
