package config

import "runtime"

// Worker-count resolution chain (highest priority first):
//   1. CLI flag (--workers)
//   2. Environment variable (FRACCALC_WORKERS)
//   3. Adaptive hardware estimation (this file)

// ApplyAdaptiveDefaults fills in configuration values that scale with the
// host when they are still at their zero default, preserving any
// user-specified overrides via command-line flags or environment.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkerCount()
	}
	return cfg
}

// EstimateWorkerCount provides a heuristic worker count for batch
// evaluation without running benchmarks. Expressions are tiny CPU-bound
// tasks, so past a point extra workers only add scheduling overhead.
func EstimateWorkerCount() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 8:
		return numCPU
	case numCPU <= 16:
		return 12
	default:
		return 16
	}
}
