package features

import (
	"fmt"

	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
	"github.com/baditaflorin/go_word_similarity/internal/ports"
)

// ExtractorConfig holds configuration for the feature extractor.
type ExtractorConfig struct {
	NGramSize int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		NGramSize: DefaultNGramSize,
	}
}

// Validate checks if the configuration is valid.
func (c ExtractorConfig) Validate() error {
	if c.NGramSize < 1 {
		return domain.NewConfigurationError("features.ExtractorConfig.Validate",
			fmt.Sprintf("n-gram size must be at least 1, got %d", c.NGramSize), nil)
	}
	return nil
}

// Extractor computes the four similarity features for a word pair.
type Extractor struct {
	config     ExtractorConfig
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewExtractor creates a new feature extractor.
func NewExtractor(config ExtractorConfig, logger ports.Logger, normalizer ports.Normalizer) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Extractor{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// Extract case-folds both words and returns the feature vector in the fixed
// feature order.
func (e *Extractor) Extract(pair domain.StringPair) domain.FeatureVector {
	s1 := e.normalizer.Normalize(pair.Word1)
	s2 := e.normalizer.Normalize(pair.Word2)

	var v domain.FeatureVector
	v[domain.FeatureJaccard] = jaccard(s1, s2, e.config.NGramSize)
	v[domain.FeatureDice] = dice(s1, s2, e.config.NGramSize)
	v[domain.FeatureLCS] = lcs(s1, s2)
	v[domain.FeaturePossessive] = possessive(s1, s2)

	e.logger.Debug("Extracted features",
		"word1", s1,
		"word2", s2,
		"features", v,
	)
	return v
}
