package contracts

import (
	"errors"
	"fmt"
)

// Configuration mistakes are fatal and kept apart from data gaps,
// which only exclude instruments.
var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnknownWeighting   = errors.New("unknown weighting method")
	ErrUnknownScoreSource = errors.New("unknown score source")
)

// ConfigError describes which setting is wrong
type ConfigError struct {
	Field   string
	Message string
	Err     error // one of the sentinels above
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match the sentinel, defaulting to ErrInvalidConfig
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrInvalidConfig {
		return []error{ErrInvalidConfig}
	}
	return []error{e.Err, ErrInvalidConfig}
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
