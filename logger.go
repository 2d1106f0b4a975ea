// logger.go
// Package wordsimilarity provides shared utilities for the go_word_similarity package.
package wordsimilarity

import (
	"os"

	"github.com/baditaflorin/go_word_similarity/internal/adapters/logger"
	"github.com/baditaflorin/l"
)

// createDefaultLogger creates and returns a default logger instance.
func createDefaultLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(logger.DefaultConfig(os.Stdout, false))
}
