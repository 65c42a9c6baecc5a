package main

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rammah83/Internet-Speed-Test/internal/network"
	"github.com/rammah83/Internet-Speed-Test/internal/sampler"
)

const metricsPrefix = "speedtest_"

var (
	metricLabels = []string{"type"}
	serverLabels = []string{"id", "name", "country", "sponsor"}

	pingDesc     = prometheus.NewDesc(metricsPrefix+"ping_ms", "Round trip time to the test server in millis", metricLabels, nil)
	downloadDesc = prometheus.NewDesc(metricsPrefix+"download_mbps", "Download throughput in Mbps", metricLabels, nil)
	uploadDesc   = prometheus.NewDesc(metricsPrefix+"upload_mbps", "Upload throughput in Mbps", metricLabels, nil)
	serverDesc   = prometheus.NewDesc(metricsPrefix+"server_info", "Details of the selected test server", serverLabels, nil)
	lastRunDesc  = prometheus.NewDesc(metricsPrefix+"last_run_timestamp_seconds", "Unix time of the most recent completed run", nil, nil)
	runsDesc     = prometheus.NewDesc(metricsPrefix+"runs_total", "Completed speed test runs since start", nil, nil)
	failuresDesc = prometheus.NewDesc(metricsPrefix+"failures_total", "Failed speed test runs since start", nil, nil)
	upDesc       = prometheus.NewDesc(metricsPrefix+"up", "1 if the most recent run succeeded", nil, nil)
)

// lastRun holds the most recent sampling outcome for the collector.
// Failed cycles keep the previous result exported; the timestamp and
// the up gauge show its staleness.
type lastRun struct {
	mu       sync.Mutex
	server   *network.ServerInfo
	result   *sampler.Result
	runs     uint64
	failures uint64
	healthy  bool
}

func (l *lastRun) success(server *network.ServerInfo, res *sampler.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.server = server
	l.result = res
	l.runs++
	l.healthy = true
}

func (l *lastRun) failure() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures++
	l.healthy = false
}

type speedtestCollector struct {
	state *lastRun
}

func (c *speedtestCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- pingDesc
	ch <- downloadDesc
	ch <- uploadDesc
	ch <- serverDesc
	ch <- lastRunDesc
	ch <- runsDesc
	ch <- failuresDesc
	ch <- upDesc
}

func (c *speedtestCollector) Collect(ch chan<- prometheus.Metric) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	ch <- prometheus.MustNewConstMetric(runsDesc, prometheus.CounterValue, float64(c.state.runs))
	ch <- prometheus.MustNewConstMetric(failuresDesc, prometheus.CounterValue, float64(c.state.failures))

	up := 0.0
	if c.state.healthy {
		up = 1.0
	}
	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, up)

	if c.state.result == nil {
		return
	}

	s := c.state.result.Summary
	ch <- prometheus.MustNewConstMetric(pingDesc, prometheus.GaugeValue, s.Ping.Mean, "mean")
	ch <- prometheus.MustNewConstMetric(pingDesc, prometheus.GaugeValue, s.Ping.StdDev, "std_dev")
	ch <- prometheus.MustNewConstMetric(downloadDesc, prometheus.GaugeValue, s.Download.Mean, "mean")
	ch <- prometheus.MustNewConstMetric(downloadDesc, prometheus.GaugeValue, s.Download.StdDev, "std_dev")
	ch <- prometheus.MustNewConstMetric(uploadDesc, prometheus.GaugeValue, s.Upload.Mean, "mean")
	ch <- prometheus.MustNewConstMetric(uploadDesc, prometheus.GaugeValue, s.Upload.StdDev, "std_dev")
	ch <- prometheus.MustNewConstMetric(lastRunDesc, prometheus.GaugeValue, float64(c.state.result.StartedAt.Unix()))

	srv := c.state.server
	ch <- prometheus.MustNewConstMetric(serverDesc, prometheus.GaugeValue, 1, srv.ID, srv.Name, srv.Country, srv.Sponsor)
}
