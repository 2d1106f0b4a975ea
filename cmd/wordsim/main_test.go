package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_word_similarity/internal/adapters/params"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "", "score", "Apple", "Apple's")
	require.NoError(t, err)
	assert.Equal(t, "Pair: 'Apple' vs. 'Apple's' (lengths: 5, 7): Score = 0.838\n", out)
}

func TestScoreCommandJSON(t *testing.T) {
	out, err := run(t, "", "score", "-o", "json", "Tim", "Gordon")
	require.NoError(t, err)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.InDelta(t, 0.0139, resp["score"], 1e-3)
	assert.Equal(t, false, resp["passed"])
}

func TestFeaturesCommand(t *testing.T) {
	out, err := run(t, "", "features", "Tim", "Tim's")
	require.NoError(t, err)
	assert.Contains(t, out, "jaccard    0.333333")
	assert.Contains(t, out, "possessive 0.600000")
}

func TestBatchCommand(t *testing.T) {
	out, err := run(t, "Tim\tTim's\nTim\tGordon\n", "batch", "--precision", "3")
	require.NoError(t, err)
	assert.Equal(t, "Tim\tTim's\t0.523\nTim\tGordon\t0.014\n", out)
}

func TestTrainAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	_, err := run(t, "", "train", "--out", path)
	require.NoError(t, err)

	p, err := params.LoadFile(path)
	require.NoError(t, err)
	assert.InDelta(t, params.Default().Classifier.Intercept, p.Classifier.Intercept, 5e-3)

	out, err := run(t, "", "--params", path, "score", "Lobster", "Lobsters")
	require.NoError(t, err)
	assert.Contains(t, out, "Score = 0.96")
}

func TestParamsCommand(t *testing.T) {
	out, err := run(t, "", "params")
	require.NoError(t, err)
	assert.Contains(t, out, "coef:")
	assert.Contains(t, out, "scaler_scale:")

	_, err = run(t, "", "params", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
