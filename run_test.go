package main

import (
	"errors"
	"testing"

	"github.com/rammah83/Internet-Speed-Test/internal/network"
)

func TestDiagnostic(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		want       string
		recognized bool
	}{
		{
			name:       "config retrieval",
			err:        network.NewConfigError(errors.New("http 500")),
			want:       "Error: Unable to retrieve configuration from Speedtest.net.",
			recognized: true,
		},
		{
			name:       "no matched servers",
			err:        network.ErrNoMatchedServers,
			want:       "Error: No matched servers for testing.",
			recognized: true,
		},
		{
			name:       "server list",
			err:        network.NewServerListError(errors.New("timeout")),
			want:       "Error: Unable to retrieve speed test server list.",
			recognized: true,
		},
		{
			name:       "measurement",
			err:        network.NewMeasurementError("download", errors.New("conn reset")),
			want:       "Speedtest failed: speed test failed: download - conn reset",
			recognized: true,
		},
		{
			name:       "unclassified",
			err:        errors.New("disk full"),
			want:       "An unexpected error occurred: disk full",
			recognized: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, recognized := diagnostic(tt.err)
			if got != tt.want {
				t.Errorf("diagnostic() = %q, want %q", got, tt.want)
			}
			if recognized != tt.recognized {
				t.Errorf("diagnostic() recognized = %v, want %v", recognized, tt.recognized)
			}
		})
	}
}
