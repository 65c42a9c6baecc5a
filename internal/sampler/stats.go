package sampler

import "math"

// mean returns the arithmetic mean of values, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the sample standard deviation (N-1 divisor). Fewer
// than two values yield 0.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func summarize(samples []Sample) Summary {
	pings := make([]float64, 0, len(samples))
	downloads := make([]float64, 0, len(samples))
	uploads := make([]float64, 0, len(samples))
	for _, s := range samples {
		pings = append(pings, s.PingMs)
		downloads = append(downloads, s.DownloadMbps)
		uploads = append(uploads, s.UploadMbps)
	}

	return Summary{
		Ping:     Metric{Mean: mean(pings), StdDev: stdDev(pings)},
		Download: Metric{Mean: mean(downloads), StdDev: stdDev(downloads)},
		Upload:   Metric{Mean: mean(uploads), StdDev: stdDev(uploads)},
	}
}
