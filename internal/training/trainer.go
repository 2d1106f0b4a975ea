// Package training fits the similarity model offline. It produces the
// domain.Params artifact the scoring path consumes and is never called while
// serving.
package training

import (
	"context"
	"fmt"
	"math"

	"github.com/baditaflorin/go_word_similarity/internal/core/classifier"
	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
	"github.com/baditaflorin/go_word_similarity/internal/ports"
)

// Config controls the gradient descent fit.
type Config struct {
	// C is the inverse L2 regularization strength.
	C            float64
	LearningRate float64
	MaxIter      int
	// Tolerance stops the fit once the largest gradient component drops below it.
	Tolerance float64
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		C:            1.0,
		LearningRate: 0.1,
		MaxIter:      10000,
		Tolerance:    1e-6,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	const op = "training.Config.Validate"
	if c.C <= 0 {
		return domain.NewConfigurationError(op, "C must be greater than 0", nil)
	}
	if c.LearningRate <= 0 {
		return domain.NewConfigurationError(op, "learning rate must be greater than 0", nil)
	}
	if c.MaxIter < 1 {
		return domain.NewConfigurationError(op, "max iterations must be at least 1", nil)
	}
	return nil
}

// Report describes a finished fit.
type Report struct {
	Params     domain.Params
	Iterations int
	Loss       float64
	Converged  bool
}

// Trainer fits a standardized logistic regression over extracted features.
type Trainer struct {
	config    Config
	logger    ports.Logger
	extractor ports.FeatureExtractor
}

// NewTrainer creates a new trainer.
func NewTrainer(config Config, logger ports.Logger, extractor ports.FeatureExtractor) (*Trainer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Trainer{config: config, logger: logger, extractor: extractor}, nil
}

// Fit extracts features from corpus, fits the scaler and the classifier, and
// returns the resulting parameters.
func (t *Trainer) Fit(ctx context.Context, corpus []LabeledPair) (Report, error) {
	if len(corpus) == 0 {
		return Report{}, fmt.Errorf("training: empty corpus")
	}
	positives := 0
	for _, ex := range corpus {
		if ex.Label != 0 && ex.Label != 1 {
			return Report{}, fmt.Errorf("training: label %d for %q/%q is not 0 or 1", ex.Label, ex.Word1, ex.Word2)
		}
		positives += ex.Label
	}
	if positives == 0 || positives == len(corpus) {
		return Report{}, fmt.Errorf("training: corpus needs both positive and negative examples")
	}

	t.logger.Info("Computing features", "pairs", len(corpus))
	X := make([]domain.FeatureVector, len(corpus))
	y := make([]float64, len(corpus))
	for i, ex := range corpus {
		X[i] = t.extractor.Extract(domain.StringPair{Word1: ex.Word1, Word2: ex.Word2})
		y[i] = float64(ex.Label)
	}

	scaler := FitScaler(X)
	scaled := make([]domain.FeatureVector, len(X))
	for i, x := range X {
		for j := range x {
			scaled[i][j] = (x[j] - scaler.Mean[j]) / scaler.Scale[j]
		}
	}

	report, err := t.fitLogistic(ctx, scaled, y)
	if err != nil {
		return Report{}, err
	}
	report.Params.Scaler = scaler

	if err := report.Params.Validate(); err != nil {
		return Report{}, err
	}
	t.logger.Info("Training finished",
		"iterations", report.Iterations,
		"loss", report.Loss,
		"converged", report.Converged,
	)
	return report, nil
}

// FitScaler computes per-feature mean and population standard deviation.
// Constant features get a scale of 1 so standardization stays defined.
func FitScaler(X []domain.FeatureVector) domain.ScalerParams {
	var s domain.ScalerParams
	if len(X) == 0 {
		for i := range s.Scale {
			s.Scale[i] = 1
		}
		return s
	}
	n := float64(len(X))
	for _, x := range X {
		for j := range x {
			s.Mean[j] += x[j]
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}
	for _, x := range X {
		for j := range x {
			d := x[j] - s.Mean[j]
			s.Scale[j] += d * d
		}
	}
	for j := range s.Scale {
		s.Scale[j] = math.Sqrt(s.Scale[j] / n)
		if s.Scale[j] < 1e-12 {
			s.Scale[j] = 1
		}
	}
	return s
}

// fitLogistic minimizes 0.5*|w|^2 + C*Σ logloss by batch gradient descent.
// The intercept is not penalized.
func (t *Trainer) fitLogistic(ctx context.Context, X []domain.FeatureVector, y []float64) (Report, error) {
	var w domain.FeatureVector
	var b float64
	lr := t.config.LearningRate / (t.config.C * float64(len(X)))

	report := Report{}
	for iter := 1; iter <= t.config.MaxIter; iter++ {
		if iter%1000 == 0 {
			select {
			case <-ctx.Done():
				return Report{}, ctx.Err()
			default:
			}
		}

		var gw domain.FeatureVector
		var gb float64
		for i, x := range X {
			p := classifier.Sigmoid(b + dot(w, x))
			r := t.config.C * (p - y[i])
			for j := range x {
				gw[j] += r * x[j]
			}
			gb += r
		}
		maxGrad := math.Abs(gb)
		for j := range w {
			gw[j] += w[j]
			maxGrad = math.Max(maxGrad, math.Abs(gw[j]))
		}

		report.Iterations = iter
		if maxGrad < t.config.Tolerance {
			report.Converged = true
			break
		}
		for j := range w {
			w[j] -= lr * gw[j]
		}
		b -= lr * gb
	}

	report.Loss = logLoss(X, y, w, b)
	report.Params.Classifier = domain.ClassifierParams{Coef: w, Intercept: b}
	return report, nil
}

func dot(a, b domain.FeatureVector) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// logLoss is the mean negative log-likelihood, without the penalty term.
func logLoss(X []domain.FeatureVector, y []float64, w domain.FeatureVector, b float64) float64 {
	const eps = 1e-15
	var loss float64
	for i, x := range X {
		p := classifier.Sigmoid(b + dot(w, x))
		p = math.Min(math.Max(p, eps), 1-eps)
		loss -= y[i]*math.Log(p) + (1-y[i])*math.Log(1-p)
	}
	return loss / float64(len(X))
}
