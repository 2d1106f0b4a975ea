package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
	"github.com/baditaflorin/go_word_similarity/internal/ports"
	"github.com/baditaflorin/go_word_similarity/pkg/wordsim"
)

// PairRequest is the body of /similarity and /features.
type PairRequest struct {
	Word1 string `json:"word1"`
	Word2 string `json:"word2"`
}

// BatchRequest is the body of /batch.
type BatchRequest struct {
	Pairs []PairRequest `json:"pairs"`
}

// SimilarityResponse is returned by /similarity.
type SimilarityResponse struct {
	Word1     string             `json:"word1"`
	Word2     string             `json:"word2"`
	Score     float64            `json:"score"`
	Passed    bool               `json:"passed"`
	Threshold float64            `json:"threshold"`
	Logit     float64            `json:"logit"`
	Features  map[string]float64 `json:"features"`
	Scaled    map[string]float64 `json:"scaled_features"`
	Details   map[string]any     `json:"details,omitempty"`
}

// FeaturesResponse is returned by /features.
type FeaturesResponse struct {
	Word1    string             `json:"word1"`
	Word2    string             `json:"word2"`
	Features map[string]float64 `json:"features"`
}

// BatchResponse is returned by /batch; Scores[i] belongs to Pairs[i] of the request.
type BatchResponse struct {
	Scores         []float64 `json:"scores"`
	ProcessingTime string    `json:"processing_time"`
}

// ParamsResponse is returned by /params.
type ParamsResponse struct {
	FeatureOrder []string  `json:"feature_order"`
	Coef         []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
	ScalerMean   []float64 `json:"scaler_mean"`
	ScalerScale  []float64 `json:"scaler_scale"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type server struct {
	scorer        *wordsim.Scorer
	logger        ports.Logger
	maxBatchPairs int
}

func newServer(scorer *wordsim.Scorer, logger ports.Logger, maxBatchPairs int) *server {
	if maxBatchPairs <= 0 {
		maxBatchPairs = DefaultMaxBatchPairs
	}
	return &server{scorer: scorer, logger: logger, maxBatchPairs: maxBatchPairs}
}

// requestHandler is the main fasthttp request handler
func (s *server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	requestID := uuid.NewString()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("X-Request-ID", requestID)

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/similarity":
		s.handleSimilarity(ctx)
	case "/features":
		s.handleFeatures(ctx)
	case "/batch":
		s.handleBatch(ctx)
	case "/params":
		s.handleParams(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) handleSimilarity(ctx *fasthttp.RequestCtx) {
	var req PairRequest
	if !s.decodePost(ctx, &req) {
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := s.scorer.Explain(c, req.Word1, req.Word2)
	if err != nil {
		s.logger.Error("Similarity request aborted", "error", err)
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		s.writeJSONError(ctx, err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, SimilarityResponse{
		Word1:     req.Word1,
		Word2:     req.Word2,
		Score:     result.Score,
		Passed:    result.Passed,
		Threshold: result.Threshold,
		Logit:     result.Logit,
		Features:  result.Features.Map(),
		Scaled:    result.Scaled.Map(),
		Details:   result.Details,
	})
}

func (s *server) handleFeatures(ctx *fasthttp.RequestCtx) {
	var req PairRequest
	if !s.decodePost(ctx, &req) {
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, FeaturesResponse{
		Word1:    req.Word1,
		Word2:    req.Word2,
		Features: s.scorer.Features(req.Word1, req.Word2).Map(),
	})
}

func (s *server) handleBatch(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	var req BatchRequest
	if !s.decodePost(ctx, &req) {
		return
	}
	if len(req.Pairs) > s.maxBatchPairs {
		ctx.SetStatusCode(fasthttp.StatusRequestEntityTooLarge)
		s.writeJSONError(ctx, "Too many pairs in batch")
		return
	}

	scores := make([]float64, len(req.Pairs))
	for i, p := range req.Pairs {
		scores[i] = s.scorer.Predict(p.Word1, p.Word2)
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, BatchResponse{
		Scores:         scores,
		ProcessingTime: time.Since(startTime).String(),
	})
}

func (s *server) handleParams(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}
	p := s.scorer.Params()
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, ParamsResponse{
		FeatureOrder: domain.FeatureNames[:],
		Coef:         p.Classifier.Coef[:],
		Intercept:    p.Classifier.Intercept,
		ScalerMean:   p.Scaler.Mean[:],
		ScalerScale:  p.Scaler.Scale[:],
	})
}

// decodePost accepts only POST requests with a JSON body.
func (s *server) decodePost(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return false
	}
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
