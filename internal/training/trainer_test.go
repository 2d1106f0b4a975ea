package training

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_word_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_word_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_word_similarity/internal/adapters/params"
	"github.com/baditaflorin/go_word_similarity/internal/core/classifier"
	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
	"github.com/baditaflorin/go_word_similarity/internal/core/features"
)

func newTrainer(t *testing.T, cfg Config) (*Trainer, *features.Extractor) {
	t.Helper()
	extractor, err := features.NewExtractor(features.DefaultConfig(), logger.NewNopLogger(), normalizer.NewDefaultNormalizer())
	require.NoError(t, err)
	trainer, err := NewTrainer(cfg, logger.NewNopLogger(), extractor)
	require.NoError(t, err)
	return trainer, extractor
}

func TestFitReproducesShippedModel(t *testing.T) {
	trainer, _ := newTrainer(t, DefaultConfig())
	report, err := trainer.Fit(context.Background(), DefaultCorpus)
	require.NoError(t, err)
	assert.True(t, report.Converged)

	shipped := params.Default()
	for i := range shipped.Scaler.Mean {
		assert.InDelta(t, shipped.Scaler.Mean[i], report.Params.Scaler.Mean[i], 1e-9, "mean[%d]", i)
		assert.InDelta(t, shipped.Scaler.Scale[i], report.Params.Scaler.Scale[i], 1e-9, "scale[%d]", i)
		assert.InDelta(t, shipped.Classifier.Coef[i], report.Params.Classifier.Coef[i], 5e-3, "coef[%d]", i)
	}
	assert.InDelta(t, shipped.Classifier.Intercept, report.Params.Classifier.Intercept, 5e-3)
}

func TestFitSeparatesCorpus(t *testing.T) {
	trainer, extractor := newTrainer(t, DefaultConfig())
	report, err := trainer.Fit(context.Background(), DefaultCorpus)
	require.NoError(t, err)

	clf, err := classifier.New(report.Params)
	require.NoError(t, err)

	var pos, neg float64
	var nPos, nNeg int
	for _, ex := range DefaultCorpus {
		score := clf.Predict(extractor.Extract(domain.StringPair{Word1: ex.Word1, Word2: ex.Word2}))
		if ex.Label == 1 {
			pos += score
			nPos++
		} else {
			neg += score
			nNeg++
		}
	}
	assert.Greater(t, pos/float64(nPos), neg/float64(nNeg))
	assert.Less(t, report.Loss, 0.693)
}

func TestFitRejectsBadCorpus(t *testing.T) {
	trainer, _ := newTrainer(t, DefaultConfig())

	_, err := trainer.Fit(context.Background(), nil)
	assert.Error(t, err)

	_, err = trainer.Fit(context.Background(), []LabeledPair{{"a", "b", 1}, {"c", "d", 1}})
	assert.ErrorContains(t, err, "both positive and negative")

	_, err = trainer.Fit(context.Background(), []LabeledPair{{"a", "b", 2}})
	assert.ErrorContains(t, err, "is not 0 or 1")
}

func TestFitHonorsCancellation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 0
	trainer, _ := newTrainer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := trainer.Fit(ctx, DefaultCorpus)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFitScaler(t *testing.T) {
	X := []domain.FeatureVector{{0, 1, 5, 2}, {2, 3, 5, 4}}
	s := FitScaler(X)
	assert.Equal(t, domain.FeatureVector{1, 2, 5, 3}, s.Mean)
	// Constant feature gets scale 1.
	assert.Equal(t, domain.FeatureVector{1, 1, 1, 1}, s.Scale)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.C = 0
	assert.ErrorIs(t, cfg.Validate(), domain.ErrConfiguration)

	cfg = DefaultConfig()
	cfg.MaxIter = 0
	assert.ErrorIs(t, cfg.Validate(), domain.ErrConfiguration)
}
