package network

import (
	"errors"
	"fmt"
)

// Sentinel errors for the speedtest.net boundary. Every failure the
// client library can produce is folded into this closed set before it
// leaves the package; callers match with errors.Is.
var (
	ErrConfigRetrieval  = errors.New("configuration retrieval failed")
	ErrServerList       = errors.New("server list retrieval failed")
	ErrNoMatchedServers = errors.New("no matched servers")
	ErrMeasurement      = errors.New("speed test failed")
)

// NewConfigError wraps ErrConfigRetrieval with the library failure
func NewConfigError(err error) error {
	return fmt.Errorf("%w: %v", ErrConfigRetrieval, err)
}

// NewServerListError wraps ErrServerList with the library failure
func NewServerListError(err error) error {
	return fmt.Errorf("%w: %v", ErrServerList, err)
}

// NewMeasurementError wraps ErrMeasurement with the failing operation
func NewMeasurementError(op string, err error) error {
	return fmt.Errorf("%w: %s - %v", ErrMeasurement, op, err)
}
