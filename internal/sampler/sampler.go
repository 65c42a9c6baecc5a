package sampler

import (
	"time"
)

// Tester is the slice of the speed test client the sampler drives.
// network.Client satisfies it; tests substitute a scripted fake.
type Tester interface {
	Ping() (float64, error)     // round trip time in milliseconds
	Download() (float64, error) // bits per second
	Upload() (float64, error)   // bits per second
}

// Reporter receives progress notifications while a run is measuring.
type Reporter interface {
	RoundStarted(round, total int)
	RoundDone(round, total int, s Sample)
}

// Sample holds the measurements of one round. Throughput is stored in
// Mbps; the tester reports bits per second.
type Sample struct {
	PingMs       float64 `json:"ping_ms"`
	DownloadMbps float64 `json:"download_mbps"`
	UploadMbps   float64 `json:"upload_mbps"`
}

// Metric is the aggregate of one measurement series.
type Metric struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summary aggregates all samples of a run.
type Summary struct {
	Ping     Metric `json:"ping_ms"`
	Download Metric `json:"download_mbps"`
	Upload   Metric `json:"upload_mbps"`
}

// Result is a finished run.
type Result struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Rounds    int           `json:"rounds"`
	Samples   []Sample      `json:"samples"`
	Summary   Summary       `json:"summary"`
}

// Run drives rounds measurement rounds against t and aggregates the
// samples. Each round measures ping, then download, then upload. The
// first failure aborts the run with no partial result.
func Run(t Tester, rounds int, rep Reporter) (*Result, error) {
	res := &Result{
		StartedAt: time.Now(),
		Rounds:    rounds,
	}

	for round := 1; round <= rounds; round++ {
		rep.RoundStarted(round, rounds)

		ping, err := t.Ping()
		if err != nil {
			return nil, err
		}
		download, err := t.Download()
		if err != nil {
			return nil, err
		}
		upload, err := t.Upload()
		if err != nil {
			return nil, err
		}

		s := Sample{
			PingMs:       ping,
			DownloadMbps: download / 1000000.0,
			UploadMbps:   upload / 1000000.0,
		}
		res.Samples = append(res.Samples, s)
		rep.RoundDone(round, rounds, s)
	}

	res.Summary = summarize(res.Samples)
	res.Duration = time.Since(res.StartedAt)

	return res, nil
}
