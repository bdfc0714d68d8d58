package circularity

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by Analyze on an engine that was never built by New
var ErrNotInitialized = errors.New("circularity: engine not initialized")

// DataLoadError reports that the reference dataset could not be read or is unusable
type DataLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "circularity: failed to load reference dataset"
	if e.Source != "" {
		msg += fmt.Sprintf(" %q", e.Source)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// ConfigurationError reports an engine setting that cannot be honoured
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("circularity: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}
