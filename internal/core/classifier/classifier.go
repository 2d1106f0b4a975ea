// Package classifier evaluates a standardized logistic regression model over
// the similarity feature vector.
package classifier

import (
	"math"

	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
)

// Classifier holds validated, read-only model parameters. It is safe for
// concurrent use.
type Classifier struct {
	params domain.Params
}

// New validates params and returns a classifier over them. A zero scale
// entry is reported as a domain.ConfigurationError.
func New(params domain.Params) (*Classifier, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{params: params}, nil
}

// Params returns a copy of the model parameters.
func (c *Classifier) Params() domain.Params {
	return c.params
}

// Standardize applies (x - mean) / scale per feature.
func (c *Classifier) Standardize(features domain.FeatureVector) domain.FeatureVector {
	var scaled domain.FeatureVector
	for i := range features {
		scaled[i] = (features[i] - c.params.Scaler.Mean[i]) / c.params.Scaler.Scale[i]
	}
	return scaled
}

// Logit returns intercept + coef·scaled.
func (c *Classifier) Logit(scaled domain.FeatureVector) float64 {
	z := c.params.Classifier.Intercept
	for i := range scaled {
		z += c.params.Classifier.Coef[i] * scaled[i]
	}
	return z
}

// Predict returns the probability that the pair behind features is a variant pair.
func (c *Classifier) Predict(features domain.FeatureVector) float64 {
	return Sigmoid(c.Logit(c.Standardize(features)))
}

// Sigmoid returns 1/(1+e^-z), evaluated so that large |z| saturates to 0 or 1
// instead of overflowing. A NaN logit scores 0.
func Sigmoid(z float64) float64 {
	if math.IsNaN(z) {
		return 0
	}
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
