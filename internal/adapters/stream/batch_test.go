package stream

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_word_similarity/internal/adapters/logger"
)

// lengthScorer scores a pair by the length of its first word.
type lengthScorer struct{}

func (lengthScorer) Predict(word1, word2 string) float64 { return float64(len(word1)) }

func TestProcessWritesInInputOrder(t *testing.T) {
	var in strings.Builder
	var want strings.Builder
	for i := 0; i < 1000; i++ {
		w := strings.Repeat("x", i%17)
		fmt.Fprintf(&in, "%s\tpair%d\n", w, i)
		fmt.Fprintf(&want, "%s\tpair%d\t%d\n", w, i, len(w))
	}

	proc := NewProcessor(lengthScorer{}, logger.NewNopLogger(), BatchConfig{Workers: 8, Precision: 0})
	var out strings.Builder
	stats, err := proc.Process(context.Background(), strings.NewReader(in.String()), &out)
	require.NoError(t, err)

	assert.Equal(t, want.String(), out.String())
	assert.Equal(t, 1000, stats.Pairs)
	assert.Equal(t, int64(in.Len()), stats.BytesProcessed)
}

func TestProcessSkipsBlankLines(t *testing.T) {
	proc := NewProcessor(lengthScorer{}, logger.NewNopLogger(), BatchConfig{Workers: 2, Precision: 1})
	var out strings.Builder
	stats, err := proc.Process(context.Background(), strings.NewReader("Tim\tTim's\r\n\n  \nApple\tApple's\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, "Tim\tTim's\t3.0\nApple\tApple's\t5.0\n", out.String())
	assert.Equal(t, 2, stats.Pairs)
	assert.Equal(t, 2, stats.Skipped)
}

func TestProcessKeepsEmptyWords(t *testing.T) {
	proc := NewProcessor(lengthScorer{}, logger.NewNopLogger(), BatchConfig{Workers: 1, Precision: 0})
	var out strings.Builder
	_, err := proc.Process(context.Background(), strings.NewReader("\tApple\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "\tApple\t0\n", out.String())
}

func TestProcessRejectsMalformedLine(t *testing.T) {
	proc := NewProcessor(lengthScorer{}, logger.NewNopLogger(), DefaultBatchConfig())
	var out strings.Builder
	_, err := proc.Process(context.Background(), strings.NewReader("Tim\tTim's\nno tab here\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := NewProcessor(lengthScorer{}, logger.NewNopLogger(), DefaultBatchConfig())
	var in strings.Builder
	for i := 0; i < 10000; i++ {
		in.WriteString("a\tb\n")
	}
	var out strings.Builder
	_, err := proc.Process(ctx, strings.NewReader(in.String()), &out)
	assert.ErrorIs(t, err, context.Canceled)
}
