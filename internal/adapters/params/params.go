// Package params loads and stores trained model parameters.
//
// The artifact is a flat record with four keys, each array in the fixed
// feature order [jaccard, dice, lcs, possessive]:
//
//	{"coef": [...], "intercept": -0.79, "scaler_mean": [...], "scaler_scale": [...]}
//
// JSON and YAML encodings are supported.
package params

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
)

// Format selects the artifact encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Artifact is the persisted shape of domain.Params.
type Artifact struct {
	Coef        []float64 `json:"coef" yaml:"coef"`
	Intercept   float64   `json:"intercept" yaml:"intercept"`
	ScalerMean  []float64 `json:"scaler_mean" yaml:"scaler_mean"`
	ScalerScale []float64 `json:"scaler_scale" yaml:"scaler_scale"`
}

// Default returns the parameters of the shipped model.
func Default() domain.Params {
	return domain.Params{
		Classifier: domain.ClassifierParams{
			Coef:      domain.FeatureVector{0.6806876906244687, 0.6377520833850591, 0.6617739811501231, 0.6617739811501231},
			Intercept: -0.7960397626745217,
		},
		Scaler: domain.ScalerParams{
			Mean:  domain.FeatureVector{0.31212042788129746, 0.39237943955685894, 0.4572420634920635, 0.4572420634920635},
			Scale: domain.FeatureVector{0.3074975786341642, 0.3596572915443685, 0.2910227624475045, 0.2910227624475045},
		},
	}
}

// FormatFromPath infers the artifact format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", domain.NewConfigurationError("params.FormatFromPath",
			fmt.Sprintf("unsupported artifact extension %q", filepath.Ext(path)), nil)
	}
}

// LoadFile reads and validates an artifact from disk.
func LoadFile(path string) (domain.Params, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return domain.Params{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return domain.Params{}, fmt.Errorf("open params artifact: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads an artifact and converts it to validated domain.Params.
func Decode(r io.Reader, format Format) (domain.Params, error) {
	const op = "params.Decode"

	var a Artifact
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&a); err != nil {
			return domain.Params{}, domain.NewConfigurationError(op, "malformed json artifact", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&a); err != nil {
			return domain.Params{}, domain.NewConfigurationError(op, "malformed yaml artifact", err)
		}
	default:
		return domain.Params{}, domain.NewConfigurationError(op, fmt.Sprintf("unknown format %q", format), nil)
	}
	return a.Params()
}

// Params converts the artifact, rejecting arrays whose length is not the
// feature count.
func (a Artifact) Params() (domain.Params, error) {
	const op = "params.Artifact.Params"

	var p domain.Params
	for _, field := range []struct {
		name string
		src  []float64
		dst  *domain.FeatureVector
	}{
		{"coef", a.Coef, &p.Classifier.Coef},
		{"scaler_mean", a.ScalerMean, &p.Scaler.Mean},
		{"scaler_scale", a.ScalerScale, &p.Scaler.Scale},
	} {
		if len(field.src) != domain.FeatureCount {
			return domain.Params{}, domain.NewConfigurationError(op,
				fmt.Sprintf("%s has %d entries, want %d", field.name, len(field.src), domain.FeatureCount), nil)
		}
		copy(field.dst[:], field.src)
	}
	p.Classifier.Intercept = a.Intercept

	if err := p.Validate(); err != nil {
		return domain.Params{}, err
	}
	return p, nil
}

// FromParams builds the persisted shape of p.
func FromParams(p domain.Params) Artifact {
	return Artifact{
		Coef:        append([]float64(nil), p.Classifier.Coef[:]...),
		Intercept:   p.Classifier.Intercept,
		ScalerMean:  append([]float64(nil), p.Scaler.Mean[:]...),
		ScalerScale: append([]float64(nil), p.Scaler.Scale[:]...),
	}
}

// Encode writes p to w in the given format.
func Encode(w io.Writer, p domain.Params, format Format) error {
	a := FromParams(p)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("encode json artifact: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("encode yaml artifact: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml artifact: %w", err)
		}
	default:
		return domain.NewConfigurationError("params.Encode", fmt.Sprintf("unknown format %q", format), nil)
	}
	return nil
}

// WriteFile encodes p to path, choosing the format from the extension.
func WriteFile(path string, p domain.Params) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create params artifact: %w", err)
	}
	if err := Encode(f, p, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
