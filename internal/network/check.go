package network

import (
	"net"
	"time"

	"github.com/rammah83/Internet-Speed-Test/internal/config"
)

// ProbeStats aggregates repeated TCP connect probes against one target.
type ProbeStats struct {
	Target   string
	Count    int
	Success  int
	MinMs    float64
	AvgMs    float64
	MaxMs    float64
	JitterMs float64
	Loss     float64 // percent
}

// TCPProbe dials target (host:port) count times and reports the latency
// spread. No elevated privileges required.
func TCPProbe(target string, count int, timeout time.Duration) ProbeStats {
	var times []float64

	for i := 0; i < count; i++ {
		start := time.Now()
		conn, err := net.DialTimeout("tcp", target, timeout)
		elapsed := float64(time.Since(start)) / float64(time.Millisecond)

		if err == nil {
			conn.Close()
			times = append(times, elapsed)
		}

		// Pause between probes so repeated dials do not hammer the host
		if i < count-1 {
			time.Sleep(config.ProbeDelay)
		}
	}

	return probeStats(target, count, times)
}

// probeStats computes the spread over the successful probe times.
// Jitter is the mean absolute deviation from the average.
func probeStats(target string, count int, times []float64) ProbeStats {
	stats := ProbeStats{
		Target:  target,
		Count:   count,
		Success: len(times),
	}
	if count > 0 {
		stats.Loss = float64(count-len(times)) / float64(count) * 100.0
	}
	if len(times) == 0 {
		return stats
	}

	var total float64
	stats.MinMs = times[0]
	for _, t := range times {
		total += t
		if t < stats.MinMs {
			stats.MinMs = t
		}
		if t > stats.MaxMs {
			stats.MaxMs = t
		}
	}
	stats.AvgMs = total / float64(len(times))

	var deviation float64
	for _, t := range times {
		diff := t - stats.AvgMs
		if diff < 0 {
			diff = -diff
		}
		deviation += diff
	}
	stats.JitterMs = deviation / float64(len(times))

	return stats
}

// DNSTiming holds the outcome of a timed name resolution.
type DNSTiming struct {
	Host      string
	Millis    float64
	Addresses []string
}

// MeasureDNS resolves host and reports how long the lookup took.
func MeasureDNS(host string) (DNSTiming, error) {
	start := time.Now()
	ips, err := net.LookupIP(host)
	res := DNSTiming{
		Host:   host,
		Millis: float64(time.Since(start)) / float64(time.Millisecond),
	}
	if err != nil {
		return res, err
	}
	for _, ip := range ips {
		res.Addresses = append(res.Addresses, ip.String())
	}
	return res, nil
}
