package network

import (
	"errors"
	"net"
	"testing"
	"time"
)

func TestProbeStats(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		times      []float64
		wantMin    float64
		wantAvg    float64
		wantMax    float64
		wantJitter float64
		wantLoss   float64
	}{
		{
			name:       "two probes",
			count:      2,
			times:      []float64{10, 20},
			wantMin:    10,
			wantAvg:    15,
			wantMax:    20,
			wantJitter: 5,
			wantLoss:   0,
		},
		{
			name:       "identical probes",
			count:      3,
			times:      []float64{7, 7, 7},
			wantMin:    7,
			wantAvg:    7,
			wantMax:    7,
			wantJitter: 0,
			wantLoss:   0,
		},
		{
			name:       "partial loss",
			count:      4,
			times:      []float64{12, 14},
			wantMin:    12,
			wantAvg:    13,
			wantMax:    14,
			wantJitter: 1,
			wantLoss:   50,
		},
		{
			name:     "total loss",
			count:    5,
			times:    nil,
			wantLoss: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := probeStats("example.test:443", tt.count, tt.times)
			if got.MinMs != tt.wantMin {
				t.Errorf("MinMs = %v, want %v", got.MinMs, tt.wantMin)
			}
			if got.AvgMs != tt.wantAvg {
				t.Errorf("AvgMs = %v, want %v", got.AvgMs, tt.wantAvg)
			}
			if got.MaxMs != tt.wantMax {
				t.Errorf("MaxMs = %v, want %v", got.MaxMs, tt.wantMax)
			}
			if got.JitterMs != tt.wantJitter {
				t.Errorf("JitterMs = %v, want %v", got.JitterMs, tt.wantJitter)
			}
			if got.Loss != tt.wantLoss {
				t.Errorf("Loss = %v, want %v", got.Loss, tt.wantLoss)
			}
			if got.Success != len(tt.times) {
				t.Errorf("Success = %v, want %v", got.Success, len(tt.times))
			}
		})
	}
}

func TestTCPProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	stats := TCPProbe(ln.Addr().String(), 3, time.Second)
	if stats.Success != 3 {
		t.Errorf("expected 3 successful probes, got %d", stats.Success)
	}
	if stats.Loss != 0 {
		t.Errorf("expected no loss, got %.1f%%", stats.Loss)
	}
	if stats.MinMs > stats.AvgMs || stats.AvgMs > stats.MaxMs {
		t.Errorf("expected min <= avg <= max, got %v/%v/%v", stats.MinMs, stats.AvgMs, stats.MaxMs)
	}
}

func TestTCPProbeUnreachable(t *testing.T) {
	// Grab a free port and close it again so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	stats := TCPProbe(addr, 2, 500*time.Millisecond)
	if stats.Success != 0 {
		t.Errorf("expected 0 successful probes, got %d", stats.Success)
	}
	if stats.Loss != 100 {
		t.Errorf("expected 100%% loss, got %.1f%%", stats.Loss)
	}
}

func TestMeasureDNS(t *testing.T) {
	res, err := MeasureDNS("localhost")
	if err != nil {
		// Some environments resolve localhost oddly; log, don't fail.
		t.Logf("DNS localhost failed: %v", err)
	} else {
		if res.Millis < 0 {
			t.Errorf("expected non-negative resolution time, got %f", res.Millis)
		}
		if len(res.Addresses) == 0 {
			t.Error("expected at least one address for localhost")
		}
	}

	if _, err := MeasureDNS("invalid.host.local.test.example"); err == nil {
		t.Error("expected error for invalid host, got success")
	}
}

func TestClassifyInterface(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"eth0", "ethernet"},
		{"enp3s0", "ethernet"},
		{"eno1", "ethernet"},
		{"en0", "ethernet"},
		{"wlan0", "wifi"},
		{"wlp2s0", "wifi"},
		{"wg0", "vpn"},
		{"tun0", "vpn"},
		{"utun3", "vpn"},
		{"tailscale0", "vpn"},
		{"ppp0", "vpn"},
		{"docker0", "other"},
		{"br-4f2a", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyInterface(tt.name); got != tt.want {
				t.Errorf("classifyInterface(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestProxyConfigured(t *testing.T) {
	for _, key := range []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"} {
		t.Setenv(key, "")
	}

	if got := ProxyConfigured(); got != "" {
		t.Errorf("expected no proxy, got %q", got)
	}

	t.Setenv("HTTPS_PROXY", "http://proxy.example:3128")
	if got := ProxyConfigured(); got != "http://proxy.example:3128" {
		t.Errorf("expected configured proxy, got %q", got)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"config", NewConfigError(errors.New("http 500")), ErrConfigRetrieval},
		{"server list", NewServerListError(errors.New("timeout")), ErrServerList},
		{"measurement", NewMeasurementError("download", errors.New("connection reset")), ErrMeasurement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected %v to match %v", tt.err, tt.sentinel)
			}
		})
	}

	if errors.Is(NewMeasurementError("upload", errors.New("x")), ErrServerList) {
		t.Error("measurement error must not match the server list sentinel")
	}
}

func TestClientWithoutServer(t *testing.T) {
	c := NewClient()

	if _, err := c.Ping(); err == nil {
		t.Error("expected error for ping without a selected server")
	}
	if _, err := c.Download(); err == nil {
		t.Error("expected error for download without a selected server")
	}
	if _, err := c.Upload(); err == nil {
		t.Error("expected error for upload without a selected server")
	}
}
