package ports

import (
	"context"
	"io"
	"time"
)

// BatchProcessor scores word pairs read from a stream.
type BatchProcessor interface {
	// Process reads tab-separated pairs from reader and writes scored lines to writer.
	Process(ctx context.Context, reader io.Reader, writer io.Writer) (BatchStats, error)
}

// BatchStats summarizes one batch run.
type BatchStats struct {
	Pairs          int
	Skipped        int
	BytesProcessed int64
	ProcessingTime time.Duration
}
