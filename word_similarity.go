// word_similarity.go
// Package wordsimilarity predicts a similarity score in [0,1] for a pair of
// short strings. Four string features
//
//	[jaccard(3-grams), dice(3-grams), lcs, possessive]
//
// are standardized and fed to a logistic regression model:
//
//	score = sigmoid(intercept + Σ coef[i] * (feature[i] - mean[i]) / scale[i])
//
// Variant pairs such as "Apple"/"Apple's" or "Lobster"/"Lobsters" score high,
// unrelated pairs score low.
package wordsimilarity

import (
	"github.com/baditaflorin/go_word_similarity/pkg/wordsim"
)

// PredictSimilarity scores a pair with the shipped model.
func PredictSimilarity(word1, word2 string) float64 {
	return wordsim.PredictSimilarity(word1, word2)
}

// New creates a scorer with the provided functional options.
func New(opts ...wordsim.Option) (*wordsim.Scorer, error) {
	return wordsim.New(opts...)
}

// NewWithLogging creates a scorer that logs to stdout through the default
// logger. The logger writes asynchronously; the caller owns it and must call
// the returned close function before exiting or buffered lines are lost.
func NewWithLogging(opts ...wordsim.Option) (*wordsim.Scorer, func() error, error) {
	lg, err := createDefaultLogger()
	if err != nil {
		return nil, nil, err
	}
	scorer, err := wordsim.New(append([]wordsim.Option{wordsim.WithLogger(lg)}, opts...)...)
	if err != nil {
		lg.Close()
		return nil, nil, err
	}
	return scorer, lg.Close, nil
}
