package similarity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/baditaflorin/go_word_similarity/internal/core/classifier"
	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
	"github.com/baditaflorin/go_word_similarity/internal/ports"
)

// Name is reported in every Result.
const Name = "word_similarity"

// DefaultThreshold is the score at which a pair is reported as Passed.
const DefaultThreshold = 0.5

// SimilarityConfig holds configuration for the similarity calculator.
type SimilarityConfig struct {
	Threshold float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() SimilarityConfig {
	return SimilarityConfig{
		Threshold: DefaultThreshold,
	}
}

// Validate checks if the configuration is valid.
func (c SimilarityConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return domain.NewConfigurationError("similarity.SimilarityConfig.Validate",
			"threshold must be between 0 and 1", nil)
	}
	return nil
}

// Calculator runs feature extraction followed by classification.
type Calculator struct {
	config     SimilarityConfig
	logger     ports.Logger
	extractor  ports.FeatureExtractor
	classifier *classifier.Classifier
}

// NewCalculator creates a new similarity calculator.
func NewCalculator(config SimilarityConfig, logger ports.Logger, extractor ports.FeatureExtractor, clf *classifier.Classifier) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if extractor == nil || clf == nil {
		return nil, errors.New("similarity: extractor and classifier are required")
	}

	return &Calculator{
		config:     config,
		logger:     logger,
		extractor:  extractor,
		classifier: clf,
	}, nil
}

// Predict returns the similarity score for the pair. It never fails.
func (c *Calculator) Predict(word1, word2 string) float64 {
	return c.classifier.Predict(c.extractor.Extract(domain.StringPair{Word1: word1, Word2: word2}))
}

// Features returns the feature vector for the pair.
func (c *Calculator) Features(word1, word2 string) domain.FeatureVector {
	return c.extractor.Extract(domain.StringPair{Word1: word1, Word2: word2})
}

// Compute scores the pair and returns the intermediate values alongside it.
// It fails only when ctx is already done, so a zero score is never ambiguous.
func (c *Calculator) Compute(ctx context.Context, word1, word2 string) (domain.Result, error) {
	c.logger.Debug("Starting similarity computation",
		"word1", word1,
		"word2", word2,
	)

	select {
	case <-ctx.Done():
		c.logger.Error("Computation cancelled", "error", ctx.Err())
		return domain.Result{}, fmt.Errorf("similarity: compute %q/%q: %w", word1, word2, ctx.Err())
	default:
	}

	details := make(map[string]interface{})

	features := c.extractor.Extract(domain.StringPair{Word1: word1, Word2: word2})
	scaled := c.classifier.Standardize(features)
	logit := c.classifier.Logit(scaled)
	score := classifier.Sigmoid(logit)
	passed := score >= c.config.Threshold

	// Edit distance is reported for inspection only; the model does not use it.
	details["levenshtein"] = levenshtein.ComputeDistance(strings.ToLower(word1), strings.ToLower(word2))
	details["features"] = features.Map()
	details["threshold"] = c.config.Threshold

	c.logger.Debug("Computed similarity",
		"score", score,
		"logit", logit,
		"passed", passed,
		"details", details,
	)

	return domain.Result{
		Name:      Name,
		Score:     score,
		Passed:    passed,
		Features:  features,
		Scaled:    scaled,
		Logit:     logit,
		Threshold: c.config.Threshold,
		Details:   details,
	}, nil
}
