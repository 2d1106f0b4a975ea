package ports

import (
	"context"

	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
)

// SimilarityCalculator defines the interface for scoring a word pair.
type SimilarityCalculator interface {
	Compute(ctx context.Context, word1, word2 string) (domain.Result, error)
}

// FeatureExtractor turns a word pair into the model's feature vector.
type FeatureExtractor interface {
	Extract(pair domain.StringPair) domain.FeatureVector
}
