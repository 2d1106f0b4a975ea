package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_word_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	calculators []ports.SimilarityCalculator
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterCalculator adds a calculator to be warmed up
func (wm *Manager) RegisterCalculator(calc ports.SimilarityCalculator) {
	wm.calculators = append(wm.calculators, calc)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components and returns
// the number of pairs scored.
func (wm *Manager) WarmUp(ctx context.Context) int {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.calculators)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	// Create a context with timeout if duration is specified
	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	wm.warmUpNormalizers(warmupCtx)
	scored := wm.warmUpCalculators(warmupCtx)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
		"pairs_scored", scored,
	)
	return scored
}

// warmUpNormalizers runs warmup for all registered normalizers
func (wm *Manager) warmUpNormalizers(ctx context.Context) {
	if len(wm.normalizers) == 0 {
		return
	}

	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	wm.run(ctx, func(j int) {
		pair := samplePairs[j%len(samplePairs)]
		for _, normalizer := range wm.normalizers {
			_ = normalizer.Normalize(pair[0])
			_ = normalizer.Normalize(pair[1])
		}
	})
}

// warmUpCalculators runs warmup for all registered calculators
func (wm *Manager) warmUpCalculators(ctx context.Context) int {
	if len(wm.calculators) == 0 {
		return 0
	}

	wm.logger.Debug("Warming up calculators", "count", len(wm.calculators))

	var mu sync.Mutex
	total := 0
	wm.run(ctx, func(j int) {
		pair := samplePairs[j%len(samplePairs)]
		for _, calculator := range wm.calculators {
			_, _ = calculator.Compute(ctx, pair[0], pair[1])
		}
		mu.Lock()
		total += len(wm.calculators)
		mu.Unlock()
	})
	return total
}

// run executes fn Iterations times on each of Concurrency goroutines,
// stopping early when ctx is done.
func (wm *Manager) run(ctx context.Context, fn func(iteration int)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fn(routineID + j)
			}
		}(i)
	}
	wg.Wait()
}

// samplePairs mixes variant, near-miss and unrelated pairs of varied length.
var samplePairs = [][2]string{
	{"Tim", "Tim's"},
	{"Apple", "Apple's"},
	{"Lobster", "Lobsters"},
	{"Gordon", "Apple"},
	{"Apple", "The Apple Bank"},
	{"Balcony Technology", "Pipe Technologies"},
	{"International Business Machines", "International Business Machine's"},
	{"", "Bestbuy"},
}
