package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/go_word_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_word_similarity/pkg/wordsim"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(2)
	}

	lg, err := createLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.FromExisting(lg)
	defer log.Close()

	log.Info("Starting similarity HTTP server",
		"port", cfg.Port,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"concurrency", cfg.Concurrency,
		"params", cfg.ParamsFile,
	)

	// Parameters are loaded once here; a bad artifact is fatal.
	opts := []wordsim.Option{
		wordsim.WithLogger(lg),
		wordsim.WithOptimizedNormalizer(),
		wordsim.WithThreshold(cfg.Threshold),
		wordsim.WithWarmUp(cfg.WarmUp),
	}
	if cfg.ParamsFile != "" {
		opts = append(opts, wordsim.WithParamsFile(cfg.ParamsFile))
	}
	scorer, err := wordsim.New(opts...)
	if err != nil {
		log.Error("Failed to initialize scorer", "error", err)
		os.Exit(1)
	}
	log.Info("Scorer initialized",
		"warm_up", cfg.WarmUp,
		"cpus", runtime.NumCPU(),
	)

	srv := newServer(scorer, log, cfg.MaxBatchPairs)

	server := &fasthttp.Server{
		Handler:               srv.requestHandler,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		MaxRequestBodySize:    cfg.MaxRequestSize,
		Concurrency:           cfg.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Name:                  "WordSimilarityServer",
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// createLogger creates and configures a logger
func createLogger(logFile string) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	cfg := logger.DefaultConfig(output, true)
	cfg.MaxFileSize = 100 * 1024 * 1024 // 100MB
	lg, err := l.NewStandardFactory().CreateLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return lg, nil
}
