package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_word_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_word_similarity/pkg/wordsim"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	scorer, err := wordsim.New()
	require.NoError(t, err)
	return newServer(scorer, logger.NewNopLogger(), 3)
}

func doRequest(s *server, method, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.SetBodyString(body)
	}
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	s.requestHandler(ctx)
	return ctx
}

func TestHealth(t *testing.T) {
	ctx := doRequest(newTestServer(t), fasthttp.MethodGet, "/health", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"status":"ok"`)
	assert.NotEmpty(t, ctx.Response.Header.Peek("X-Request-ID"))
}

func TestSimilarity(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(s, fasthttp.MethodPost, "/similarity", `{"word1":"Apple","word2":"Apple's"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp SimilarityResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, s.scorer.Predict("Apple", "Apple's"), resp.Score)
	assert.True(t, resp.Passed)
	assert.InDelta(t, 0.6, resp.Features["jaccard"], 1e-12)
	assert.Len(t, resp.Scaled, 4)
}

func TestSimilarityAcceptsEmptyWords(t *testing.T) {
	ctx := doRequest(newTestServer(t), fasthttp.MethodPost, "/similarity", `{"word1":"","word2":""}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp SimilarityResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, 1.0, resp.Features["possessive"])
	assert.GreaterOrEqual(t, resp.Score, 0.0)
	assert.LessOrEqual(t, resp.Score, 1.0)
}

func TestFeatures(t *testing.T) {
	ctx := doRequest(newTestServer(t), fasthttp.MethodPost, "/features", `{"word1":"Tim","word2":"Tim's"}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp FeaturesResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.InDelta(t, 0.5, resp.Features["dice"], 1e-12)
	assert.InDelta(t, 0.6, resp.Features["lcs"], 1e-12)
}

func TestBatch(t *testing.T) {
	s := newTestServer(t)
	ctx := doRequest(s, fasthttp.MethodPost, "/batch",
		`{"pairs":[{"word1":"Tim","word2":"Tim's"},{"word1":"Tim","word2":"Gordon"}]}`)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp BatchResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	require.Len(t, resp.Scores, 2)
	assert.Equal(t, s.scorer.Predict("Tim", "Tim's"), resp.Scores[0])
	assert.Greater(t, resp.Scores[0], resp.Scores[1])
}

func TestBatchTooLarge(t *testing.T) {
	pairs := make([]string, 4)
	for i := range pairs {
		pairs[i] = fmt.Sprintf(`{"word1":"a%d","word2":"b"}`, i)
	}
	body := `{"pairs":[` + strings.Join(pairs, ",") + `]}`
	ctx := doRequest(newTestServer(t), fasthttp.MethodPost, "/batch", body)
	assert.Equal(t, fasthttp.StatusRequestEntityTooLarge, ctx.Response.StatusCode())
}

func TestParams(t *testing.T) {
	ctx := doRequest(newTestServer(t), fasthttp.MethodGet, "/params", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var resp ParamsResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, []string{"jaccard", "dice", "lcs", "possessive"}, resp.FeatureOrder)
	assert.Len(t, resp.Coef, 4)
}

func TestErrors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name, method, path, body string
		status                   int
	}{
		{"wrong method", fasthttp.MethodGet, "/similarity", "", fasthttp.StatusMethodNotAllowed},
		{"bad json", fasthttp.MethodPost, "/similarity", `{"word1":`, fasthttp.StatusBadRequest},
		{"unknown path", fasthttp.MethodGet, "/nope", "", fasthttp.StatusNotFound},
		{"params post", fasthttp.MethodPost, "/params", "{}", fasthttp.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(s, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("WORDSIM_PORT", "9090")
	t.Setenv("WORDSIM_THRESHOLD", "0.7")

	cfg, err := loadConfig(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 0.7, cfg.Threshold)
	assert.True(t, cfg.WarmUp)

	cfg, err = loadConfig([]string{"-port", "7070", "-warm-up=false"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.False(t, cfg.WarmUp)
}

func TestLoadConfigHelpAndErrors(t *testing.T) {
	var out bytes.Buffer
	_, err := loadConfig([]string{"-h"}, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "-max-batch-pairs")

	out.Reset()
	_, err = loadConfig([]string{"-port", "nope"}, &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "invalid value")
}
