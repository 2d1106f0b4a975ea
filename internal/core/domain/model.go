package domain

// Feature indices. Extractor output, scaler entries and coefficients all use
// this order; a trained model is only valid against it.
const (
	FeatureJaccard = iota
	FeatureDice
	FeatureLCS
	FeaturePossessive

	FeatureCount
)

// FeatureNames maps each feature index to its wire name.
var FeatureNames = [FeatureCount]string{
	FeatureJaccard:    "jaccard",
	FeatureDice:       "dice",
	FeatureLCS:        "lcs",
	FeaturePossessive: "possessive",
}

// FeatureVector holds one value per feature in the fixed feature order.
type FeatureVector [FeatureCount]float64

// Map returns the vector keyed by feature name.
func (v FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames {
		m[name] = v[i]
	}
	return m
}

// StringPair is the input to a single scoring call.
type StringPair struct {
	Word1 string
	Word2 string
}

// Result holds the outcome of a similarity prediction.
type Result struct {
	Name     string
	Score    float64
	Passed   bool
	Features FeatureVector
	// Scaled is the standardized feature vector fed to the linear model.
	Scaled    FeatureVector
	Logit     float64
	Threshold float64
	Details   map[string]interface{}
}
