// Package wordsim predicts how likely two short strings (names, brand
// tokens) are variants of each other, such as possessive or plural forms.
//
//	scorer, err := wordsim.New()
//	score := scorer.Predict("Apple", "Apple's") // ~0.84
package wordsim

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_word_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_word_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_word_similarity/internal/adapters/params"
	"github.com/baditaflorin/go_word_similarity/internal/core/classifier"
	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
	"github.com/baditaflorin/go_word_similarity/internal/core/features"
	"github.com/baditaflorin/go_word_similarity/internal/core/similarity"
	"github.com/baditaflorin/go_word_similarity/internal/ports"
	"github.com/baditaflorin/go_word_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// Re-exported model types.
type (
	Params        = domain.Params
	FeatureVector = domain.FeatureVector
	Result        = domain.Result
)

// Scorer computes similarity scores. It is immutable after construction and
// safe for concurrent use.
type Scorer struct {
	calculator *similarity.Calculator
	extractor  *features.Extractor
	classifier *classifier.Classifier
	logger     ports.Logger
	normalizer ports.Normalizer
}

// Option defines a functional option for configuring a Scorer.
type Option func(*scorerConfig)

type scorerConfig struct {
	Params       *domain.Params
	ParamsFile   string
	NGramSize    int
	Threshold    float64
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithParams sets the trained model parameters.
func WithParams(p Params) Option {
	return func(cfg *scorerConfig) {
		cfg.Params = &p
	}
}

// WithParamsFile loads the trained model parameters from a JSON or YAML artifact.
// It cannot be combined with WithParams.
func WithParamsFile(path string) Option {
	return func(cfg *scorerConfig) {
		cfg.ParamsFile = path
	}
}

// WithNGramSize sets the n-gram length used by the jaccard and dice features.
// The shipped model was trained with 3.
func WithNGramSize(n int) Option {
	return func(cfg *scorerConfig) {
		cfg.NGramSize = n
	}
}

// WithThreshold sets the score at which Explain reports a pair as Passed.
func WithThreshold(th float64) Option {
	return func(cfg *scorerConfig) {
		cfg.Threshold = th
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *scorerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithOptimizedNormalizer uses the pooled ASCII case-folding normalizer.
func WithOptimizedNormalizer() Option {
	return func(cfg *scorerConfig) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.OptimizedNormalizerType)
	}
}

// WithWarmUp enables warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *scorerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *scorerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a Scorer. Without options it uses the shipped model and
// discards log output.
func New(opts ...Option) (*Scorer, error) {
	config := &scorerConfig{
		NGramSize:    features.DefaultNGramSize,
		Threshold:    similarity.DefaultThreshold,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		config.Logger = logger.NewNopLogger()
	}
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	if config.Params != nil && config.ParamsFile != "" {
		return nil, domain.NewConfigurationError("wordsim.New",
			"WithParams and WithParamsFile are mutually exclusive", nil)
	}

	p := params.Default()
	switch {
	case config.Params != nil:
		p = *config.Params
	case config.ParamsFile != "":
		loaded, err := params.LoadFile(config.ParamsFile)
		if err != nil {
			return nil, err
		}
		config.Logger.Info("Loaded model parameters", "path", config.ParamsFile)
		p = loaded
	}

	clf, err := classifier.New(p)
	if err != nil {
		return nil, err
	}
	extractor, err := features.NewExtractor(features.ExtractorConfig{NGramSize: config.NGramSize}, config.Logger, config.Normalizer)
	if err != nil {
		return nil, err
	}
	calculator, err := similarity.NewCalculator(similarity.SimilarityConfig{Threshold: config.Threshold}, config.Logger, extractor, clf)
	if err != nil {
		return nil, err
	}

	s := &Scorer{
		calculator: calculator,
		extractor:  extractor,
		classifier: clf,
		logger:     config.Logger,
		normalizer: config.Normalizer,
	}
	if config.WarmUp {
		s.WarmUp(context.Background(), config.WarmUpConfig)
	}
	return s, nil
}

// Predict returns the similarity score in [0,1] for the pair.
func (s *Scorer) Predict(word1, word2 string) float64 {
	return s.calculator.Predict(word1, word2)
}

// Features returns the feature vector [jaccard, dice, lcs, possessive].
func (s *Scorer) Features(word1, word2 string) FeatureVector {
	return s.calculator.Features(word1, word2)
}

// Explain returns the score together with the features, standardized
// features and logit that produced it. It returns ctx.Err() (wrapped) when
// ctx is done before scoring starts.
func (s *Scorer) Explain(ctx context.Context, word1, word2 string) (Result, error) {
	return s.calculator.Compute(ctx, word1, word2)
}

// Params returns the model parameters in use.
func (s *Scorer) Params() Params {
	return s.classifier.Params()
}

// WarmUp exercises the scoring path concurrently before serving traffic.
func (s *Scorer) WarmUp(ctx context.Context, config warmup.WarmupConfig) int {
	warmupMgr := warmup.NewManager(s.logger, config)
	warmupMgr.RegisterCalculator(s.calculator)
	warmupMgr.RegisterNormalizer(s.normalizer)
	return warmupMgr.WarmUp(ctx)
}

var (
	defaultOnce   sync.Once
	defaultScorer *Scorer
)

// Default returns a shared Scorer over the shipped model.
func Default() *Scorer {
	defaultOnce.Do(func() {
		s, err := New()
		if err != nil {
			// The shipped parameters are constants validated by tests.
			panic(err)
		}
		defaultScorer = s
	})
	return defaultScorer
}

// PredictSimilarity scores a pair with the shipped model.
func PredictSimilarity(word1, word2 string) float64 {
	return Default().Predict(word1, word2)
}
