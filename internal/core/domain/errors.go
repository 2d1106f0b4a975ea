package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports malformed trained parameters or settings.
// It is raised at load time and is never produced by the scoring path.
type ConfigurationError struct {
	Op  string // where it happened (package.Function)
	Msg string
	Err error // underlying cause (optional)
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("configuration: %s: %s", e.Op, e.Msg)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrConfiguration) match any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func NewConfigurationError(op, msg string, err error) error {
	return &ConfigurationError{Op: op, Msg: msg, Err: err}
}
