package domain

import (
	"fmt"
	"math"
)

// ScalerParams holds the per-feature standardization learned at training time.
type ScalerParams struct {
	Mean  FeatureVector
	Scale FeatureVector
}

// ClassifierParams holds the logistic regression weights.
type ClassifierParams struct {
	Coef      FeatureVector
	Intercept float64
}

// Params is the complete trained model. It is built once and treated as
// read-only afterwards.
type Params struct {
	Classifier ClassifierParams
	Scaler     ScalerParams
}

// Validate rejects parameters the classifier cannot evaluate.
func (p Params) Validate() error {
	const op = "domain.Params.Validate"
	if !finite(p.Classifier.Intercept) {
		return NewConfigurationError(op, "intercept is not finite", nil)
	}
	for i, name := range FeatureNames {
		if !finite(p.Classifier.Coef[i]) {
			return NewConfigurationError(op, fmt.Sprintf("coef[%s] is not finite", name), nil)
		}
		if !finite(p.Scaler.Mean[i]) {
			return NewConfigurationError(op, fmt.Sprintf("scaler_mean[%s] is not finite", name), nil)
		}
		if !finite(p.Scaler.Scale[i]) {
			return NewConfigurationError(op, fmt.Sprintf("scaler_scale[%s] is not finite", name), nil)
		}
		if p.Scaler.Scale[i] == 0 {
			return NewConfigurationError(op, fmt.Sprintf("scaler_scale[%s] is zero", name), nil)
		}
		// Subnormal scales pass the zero check but overflow on division.
		if !finite(1/p.Scaler.Scale[i]) || !finite(p.Classifier.Coef[i]/p.Scaler.Scale[i]) {
			return NewConfigurationError(op, fmt.Sprintf("scaler_scale[%s] is too small", name), nil)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
