package wordsimilarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_word_similarity/pkg/wordsim"
)

func TestPredictSimilarity(t *testing.T) {
	assert.InDelta(t, 0.838, PredictSimilarity("Apple", "Apple's"), 1e-3)
	assert.Greater(t, PredictSimilarity("Tim", "Tim's"), PredictSimilarity("Tim", "Gordon"))
}

func TestNewWithLoggingReturnsCloser(t *testing.T) {
	scorer, closeLog, err := NewWithLogging()
	require.NoError(t, err)
	require.NotNil(t, closeLog)

	assert.Equal(t, PredictSimilarity("Lobster", "Lobsters"), scorer.Predict("Lobster", "Lobsters"))
	assert.NoError(t, closeLog())
}

func TestNewWithLoggingRejectsBadOptions(t *testing.T) {
	scorer, closeLog, err := NewWithLogging(wordsim.WithNGramSize(0))
	assert.Error(t, err)
	assert.Nil(t, scorer)
	assert.Nil(t, closeLog)
}
