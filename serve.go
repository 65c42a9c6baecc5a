package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/rammah83/Internet-Speed-Test/internal/config"
	"github.com/rammah83/Internet-Speed-Test/internal/history"
	"github.com/rammah83/Internet-Speed-Test/internal/network"
	"github.com/rammah83/Internet-Speed-Test/internal/sampler"
)

// runServe samples the connection on a fixed interval and exposes the
// results as Prometheus metrics.
func runServe(cfg *config.Config) {
	if mpath := cfg.Serve.MetricsPath; mpath == "" {
		log.Warnln("web.telemetry-path is empty, correcting to `/metrics`")
		cfg.Serve.MetricsPath = "/metrics"
	} else if mpath[0] != '/' {
		cfg.Serve.MetricsPath = "/" + mpath
	}

	var db *history.DB
	if cfg.History.Enabled {
		var err error
		db, err = history.Open(cfg.History.Path)
		if err != nil {
			log.Errorln(err)
			os.Exit(2)
		}
		defer db.Close()

		if err := db.InitSchema(); err != nil {
			log.Errorln(err)
			os.Exit(2)
		}
	}

	state := &lastRun{}
	go sampleLoop(cfg, state, db)

	startServer(cfg, state)
}

func sampleLoop(cfg *config.Config, state *lastRun, db *history.DB) {
	interval := cfg.Serve.Interval.Duration()
	log.Infof("Sampling every %s (rounds=%d)", interval, cfg.Rounds)

	sample(cfg, state, db)
	for range time.NewTicker(interval).C {
		sample(cfg, state, db)
	}
}

// sample runs one measurement cycle. Failures are counted and logged;
// the loop keeps sampling.
func sample(cfg *config.Config, state *lastRun, db *history.DB) {
	client := network.NewClient()
	server, err := client.Connect(cfg.ServerID)
	if err != nil {
		sampleFailed(state, err)
		return
	}

	res, err := sampler.Run(client, cfg.Rounds, logProgress{})
	if err != nil {
		sampleFailed(state, err)
		return
	}

	state.success(server, res)
	log.Infof("Run complete: ping %.1f ms, download %.1f Mbps, upload %.1f Mbps",
		res.Summary.Ping.Mean, res.Summary.Download.Mean, res.Summary.Upload.Mean)

	if db == nil {
		return
	}
	run := history.Run{
		StartedAt:     res.StartedAt,
		Rounds:        res.Rounds,
		ServerID:      server.ID,
		ServerName:    server.Name,
		ServerCountry: server.Country,
		ServerSponsor: server.Sponsor,
		Summary:       res.Summary,
	}
	if _, err := db.SaveRun(run, res.Samples); err != nil {
		log.Warnf("Could not record run: %v", err)
	}
}

func sampleFailed(state *lastRun, err error) {
	state.failure()

	msg, recognized := diagnostic(err)
	if recognized {
		log.Errorln(msg)
		return
	}
	log.Errorf("Unexpected error: %v", err)
}

func startServer(cfg *config.Config, state *lastRun) {
	log.Infof("Starting speedtest exporter (Version: %s)", version)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, indexHTML, cfg.Serve.MetricsPath)
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(&speedtestCollector{state: state})

	l := log.New()
	l.Level = log.ErrorLevel

	h := promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorLog:      l,
		ErrorHandling: promhttp.ContinueOnError,
	})
	http.Handle(cfg.Serve.MetricsPath, h)

	log.Infof("Listening for %s on %s", cfg.Serve.MetricsPath, cfg.Serve.ListenAddress)
	log.Fatal(http.ListenAndServe(cfg.Serve.ListenAddress, nil))
}

const indexHTML = `<!doctype html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Internet Speed Test Exporter (Version ` + version + `)</title>
</head>
<body>
	<h1>Internet Speed Test Exporter</h1>
	<p><a href="%s">Metrics</a></p>
	<h2>More information:</h2>
	<p><a href="https://github.com/rammah83/Internet-Speed-Test">github.com/rammah83/Internet-Speed-Test</a></p>
</body>
</html>
`
