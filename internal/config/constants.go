package config

import "time"

// Measurement defaults
const (
	DefaultRounds   = 2
	DefaultServerID = 0 // 0 lets the client pick the lowest-latency server
)

// Console report layout
const (
	TableWidth = 60
)

// Exporter defaults
const (
	DefaultListenAddress = ":9798"
	DefaultMetricsPath   = "/metrics"
	DefaultServeInterval = 30 * time.Minute
)

// History defaults
const (
	DefaultHistoryPath = "speedtest_history.db"
	DefaultReportDays  = 7
)

// Diagnostics Configuration
const (
	ProbeHost           = "www.speedtest.net"
	ProbePort           = "443"
	DefaultProbeCount   = 5
	DefaultProbeTimeout = 2 * time.Second
	ProbeDelay          = 200 * time.Millisecond
	ICMPTimeout         = 2 * time.Second
)
