package main

import (
	"flag"
	"io"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultConcurrency    = 0               // 0 means fasthttp's default
	DefaultMaxBatchPairs  = 10000
)

// Config holds the server settings. Flags override environment variables,
// which may come from a .env file.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int
	Concurrency    int
	MaxBatchPairs  int
	WarmUp         bool
	LogFile        string
	ParamsFile     string
	Threshold      float64
}

// loadConfig parses args. Usage and parse errors are written to output;
// -h yields flag.ErrHelp.
func loadConfig(args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)
	cfg := Config{}
	fs.IntVar(&cfg.Port, "port", getEnvInt("WORDSIM_PORT", DefaultPort), "HTTP server port")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", getEnvDuration("WORDSIM_READ_TIMEOUT", DefaultReadTimeout), "HTTP read timeout")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", getEnvDuration("WORDSIM_WRITE_TIMEOUT", DefaultWriteTimeout), "HTTP write timeout")
	fs.IntVar(&cfg.MaxRequestSize, "max-request-size", getEnvInt("WORDSIM_MAX_REQUEST_SIZE", DefaultMaxRequestSize), "Maximum request size in bytes")
	fs.IntVar(&cfg.Concurrency, "concurrency", getEnvInt("WORDSIM_CONCURRENCY", DefaultConcurrency), "Maximum number of concurrent connections (0 = default)")
	fs.IntVar(&cfg.MaxBatchPairs, "max-batch-pairs", getEnvInt("WORDSIM_MAX_BATCH_PAIRS", DefaultMaxBatchPairs), "Maximum pairs accepted by /batch")
	fs.BoolVar(&cfg.WarmUp, "warm-up", getEnvBool("WORDSIM_WARM_UP", true), "Perform scorer warm-up on startup")
	fs.StringVar(&cfg.LogFile, "log-file", os.Getenv("WORDSIM_LOG_FILE"), "Log file path (empty = stdout)")
	fs.StringVar(&cfg.ParamsFile, "params", os.Getenv("WORDSIM_PARAMS"), "Model parameter artifact (.json/.yaml); empty = shipped model")
	fs.Float64Var(&cfg.Threshold, "threshold", getEnvFloat("WORDSIM_THRESHOLD", 0.5), "Score at which a pair is reported as passed")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
