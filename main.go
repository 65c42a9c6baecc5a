package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/rammah83/Internet-Speed-Test/internal/config"
)

const version string = "0.3.0"

var (
	configFile    = kingpin.Flag("config.path", "Path to YAML config file").Default("").String()
	logLevel      = kingpin.Flag("log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error, fatal]").Default("info").String()
	rounds        = kingpin.Flag("rounds", "Number of measurement rounds per run").Default("2").Int()
	serverID      = kingpin.Flag("server", "Speedtest.net server ID (0 picks the lowest-latency server)").Default("0").Int()
	recordHistory = kingpin.Flag("history", "Record runs in the history database").Bool()
	jsonOutput    = kingpin.Flag("json", "Print run results as JSON instead of the table").Bool()
	dbPath        = kingpin.Flag("db.path", "Path to the run history database").Default(config.DefaultHistoryPath).String()
	listenAddress = kingpin.Flag("web.listen-address", "Address on which to expose metrics and web interface").Default(config.DefaultListenAddress).String()
	metricsPath   = kingpin.Flag("web.telemetry-path", "Path under which to expose metrics").Default(config.DefaultMetricsPath).String()
	serveInterval = kingpin.Flag("serve.interval", "Interval between speed test runs in serve mode").Default("30m").Duration()
	reportDays    = kingpin.Flag("report.days", "Window of runs to include in reports, in days").Default("7").Int()
	reportOutput  = kingpin.Flag("report.output", "Directory for report artifacts; prints to stdout when empty").Default("").String()
	probeCount    = kingpin.Flag("doctor.count", "Number of TCP connect probes in doctor mode").Default("5").Int()

	runCmd    = kingpin.Command("run", "Run a speed test and print the summary table").Default()
	serveCmd  = kingpin.Command("serve", "Run speed tests periodically and expose the results as Prometheus metrics")
	reportCmd = kingpin.Command("report", "Summarize recorded runs")
	doctorCmd = kingpin.Command("doctor", "Inspect the local network environment for conditions that skew results")
)

func main() {
	kingpin.Version(version)
	cmd := kingpin.Parse()

	setLogLevel(*logLevel)

	cfg, err := loadConfig()
	if err != nil {
		kingpin.FatalUsage("could not load config.path: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		kingpin.FatalUsage("invalid configuration: %v", err)
	}

	switch cmd {
	case runCmd.FullCommand():
		runTest(cfg)
	case serveCmd.FullCommand():
		runServe(cfg)
	case reportCmd.FullCommand():
		runReport(cfg)
	case doctorCmd.FullCommand():
		runDoctor()
	}
}

func loadConfig() (*config.Config, error) {
	if *configFile == "" {
		cfg := &config.Config{}
		addFlagToConfig(cfg)

		return cfg, nil
	}

	f, err := os.Open(*configFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load config file: %w", err)
	}
	defer f.Close()

	cfg, err := config.FromYAML(f)
	if err == nil {
		addFlagToConfig(cfg)
	}

	return cfg, err
}

// addFlagToConfig updates cfg with command line flag values, unless the
// config has non-zero values.
func addFlagToConfig(cfg *config.Config) {
	if cfg.Rounds == 0 {
		cfg.Rounds = *rounds
	}
	if cfg.ServerID == 0 {
		cfg.ServerID = *serverID
	}
	if *recordHistory {
		cfg.History.Enabled = true
	}
	if cfg.History.Path == "" {
		cfg.History.Path = *dbPath
	}
	if cfg.Serve.Interval == 0 {
		cfg.Serve.Interval.Set(*serveInterval)
	}
	if cfg.Serve.ListenAddress == "" {
		cfg.Serve.ListenAddress = *listenAddress
	}
	if cfg.Serve.MetricsPath == "" {
		cfg.Serve.MetricsPath = *metricsPath
	}
	if cfg.Report.Days == 0 {
		cfg.Report.Days = *reportDays
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = *reportOutput
	}
}
