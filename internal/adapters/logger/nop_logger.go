package logger

import "github.com/baditaflorin/go_word_similarity/internal/ports"

// NopLogger discards everything. Library defaults and tests use it.
type NopLogger struct{}

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() ports.Logger { return NopLogger{} }

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Close() error                 { return nil }
