package params

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, Default(), format))

			got, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, Default(), got)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	src := `{
		"coef": [1, 2, 3, 4],
		"intercept": -0.5,
		"scaler_mean": [0.1, 0.2, 0.3, 0.4],
		"scaler_scale": [1, 1, 1, 2]
	}`
	p, err := Decode(strings.NewReader(src), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, domain.FeatureVector{1, 2, 3, 4}, p.Classifier.Coef)
	assert.Equal(t, -0.5, p.Classifier.Intercept)
	assert.Equal(t, domain.FeatureVector{0.1, 0.2, 0.3, 0.4}, p.Scaler.Mean)
	assert.Equal(t, 2.0, p.Scaler.Scale[domain.FeaturePossessive])
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format Format
		msg    string
	}{
		{
			name:   "short coef",
			src:    `{"coef":[1,2,3],"intercept":0,"scaler_mean":[0,0,0,0],"scaler_scale":[1,1,1,1]}`,
			format: FormatJSON,
			msg:    "coef has 3 entries, want 4",
		},
		{
			name:   "long mean",
			src:    "coef: [1,2,3,4]\nintercept: 0\nscaler_mean: [0,0,0,0,0]\nscaler_scale: [1,1,1,1]\n",
			format: FormatYAML,
			msg:    "scaler_mean has 5 entries, want 4",
		},
		{
			name:   "missing scale",
			src:    `{"coef":[1,2,3,4],"intercept":0,"scaler_mean":[0,0,0,0]}`,
			format: FormatJSON,
			msg:    "scaler_scale has 0 entries",
		},
		{
			name:   "zero scale",
			src:    `{"coef":[1,2,3,4],"intercept":0,"scaler_mean":[0,0,0,0],"scaler_scale":[1,0,1,1]}`,
			format: FormatJSON,
			msg:    "scaler_scale[dice] is zero",
		},
		{
			name:   "malformed",
			src:    `{"coef":`,
			format: FormatJSON,
			msg:    "malformed json artifact",
		},
		{
			name:   "unknown format",
			src:    `{}`,
			format: Format("toml"),
			msg:    "unknown format",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.src), tc.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"model.json", "model.yaml", "model.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, Default()))
		got, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile("model.pkl")
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
