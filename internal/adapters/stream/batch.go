package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_word_similarity/internal/ports"
)

// Constants for parallel processing
const (
	// MaxJobQueueSize limits the number of pending jobs
	MaxJobQueueSize = 32

	// LinesPerJob is the number of pairs handed to a worker at once
	LinesPerJob = 64

	// MaxLineSize bounds a single input line
	MaxLineSize = 1024 * 1024
)

// Scorer is the part of the scoring API the batch processor needs.
type Scorer interface {
	Predict(word1, word2 string) float64
}

// BatchConfig configures a Processor.
type BatchConfig struct {
	// Workers is the number of scoring goroutines (0 = runtime.NumCPU()).
	Workers int
	// Precision is the number of decimals written for each score.
	Precision int
}

// DefaultBatchConfig returns the default batch configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{Workers: 0, Precision: 6}
}

// Processor scores "word1<TAB>word2" lines and writes
// "word1<TAB>word2<TAB>score" lines in input order.
type Processor struct {
	scorer Scorer
	logger ports.Logger
	config BatchConfig
}

// NewProcessor creates a batch processor.
func NewProcessor(scorer Scorer, logger ports.Logger, config BatchConfig) *Processor {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Precision < 0 {
		config.Precision = DefaultBatchConfig().Precision
	}
	return &Processor{scorer: scorer, logger: logger, config: config}
}

var _ ports.BatchProcessor = (*Processor)(nil)

type pairJob struct {
	ID    int
	Pairs [][2]string
}

type pairJobResult struct {
	ID     int
	Pairs  [][2]string
	Scores []float64
}

// Process implements ports.BatchProcessor.
func (p *Processor) Process(ctx context.Context, reader io.Reader, writer io.Writer) (ports.BatchStats, error) {
	startTime := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan pairJob, MaxJobQueueSize)
	results := make(chan pairJobResult, p.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < p.config.Workers; i++ {
		wg.Add(1)
		go p.worker(ctx, jobs, results, &wg)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var stats ports.BatchStats
	readErr := make(chan error, 1)
	go func() {
		defer close(jobs)
		readErr <- p.readPairs(ctx, reader, jobs, &stats)
	}()

	writeErr := p.writeInOrder(writer, results, &stats)
	if writeErr != nil {
		cancel()
	}
	// Drain so workers and the reader can exit.
	for range results {
	}
	err := <-readErr

	stats.ProcessingTime = time.Since(startTime)
	if writeErr != nil {
		return stats, writeErr
	}
	if err != nil {
		return stats, err
	}
	if ctx.Err() != nil {
		return stats, ctx.Err()
	}

	p.logger.Info("Batch scoring completed",
		"pairs", stats.Pairs,
		"skipped", stats.Skipped,
		"bytes", stats.BytesProcessed,
		"duration", stats.ProcessingTime,
	)
	return stats, nil
}

func (p *Processor) readPairs(ctx context.Context, reader io.Reader, jobs chan<- pairJob, stats *ports.BatchStats) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	var pending [][2]string
	jobID := 0
	send := func() error {
		if len(pending) == 0 {
			return nil
		}
		select {
		case jobs <- pairJob{ID: jobID, Pairs: pending}:
			jobID++
			pending = nil
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		stats.BytesProcessed += int64(len(line)) + 1
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			stats.Skipped++
			continue
		}
		word1, word2, ok := strings.Cut(line, "\t")
		if !ok {
			return fmt.Errorf("batch: line %d: expected two tab-separated words", lineNo)
		}
		pending = append(pending, [2]string{word1, word2})
		if len(pending) == LinesPerJob {
			if err := send(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("batch: read input: %w", err)
	}
	return send()
}

func (p *Processor) worker(ctx context.Context, jobs <-chan pairJob, results chan<- pairJobResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range jobs {
		scores := make([]float64, len(job.Pairs))
		for i, pair := range job.Pairs {
			scores[i] = p.scorer.Predict(pair[0], pair[1])
		}
		select {
		case results <- pairJobResult{ID: job.ID, Pairs: job.Pairs, Scores: scores}:
		case <-ctx.Done():
			return
		}
	}
}

// writeInOrder buffers out-of-order results until their predecessors arrive.
func (p *Processor) writeInOrder(writer io.Writer, results <-chan pairJobResult, stats *ports.BatchStats) error {
	bw := bufio.NewWriter(writer)
	pending := make(map[int]pairJobResult)
	next := 0
	for res := range results {
		pending[res.ID] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			for i, pair := range r.Pairs {
				line := pair[0] + "\t" + pair[1] + "\t" +
					strconv.FormatFloat(r.Scores[i], 'f', p.config.Precision, 64) + "\n"
				if _, err := bw.WriteString(line); err != nil {
					return fmt.Errorf("batch: write output: %w", err)
				}
				stats.Pairs++
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("batch: write output: %w", err)
	}
	return nil
}
