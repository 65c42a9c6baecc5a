package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chelnak/ysmrr"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/rammah83/Internet-Speed-Test/internal/config"
	"github.com/rammah83/Internet-Speed-Test/internal/history"
	"github.com/rammah83/Internet-Speed-Test/internal/network"
	"github.com/rammah83/Internet-Speed-Test/internal/report"
	"github.com/rammah83/Internet-Speed-Test/internal/sampler"
)

// runTest executes one measurement run and prints the summary.
func runTest(cfg *config.Config) {
	console := report.NewConsole(os.Stdout)
	if !*jsonOutput {
		console.Preamble(time.Now())
	}

	client := network.NewClient()
	server, err := client.Connect(cfg.ServerID)
	if err != nil {
		failRun(err)
	}
	log.Infof("Testing against %s", server.Label())

	progress := newProgress()
	res, err := sampler.Run(client, cfg.Rounds, progress)
	progress.finish(err)
	if err != nil {
		failRun(err)
	}

	if *jsonOutput {
		if err := writeJSON(os.Stdout, server, res); err != nil {
			log.Fatalf("Could not encode result: %v", err)
		}
	} else {
		console.Summary(res.Rounds, res.Summary)
	}

	recordRun(cfg, server, res)
}

// diagnostic maps recognized failure categories to their one-line
// messages. The second return is false for errors outside the closed
// set.
func diagnostic(err error) (string, bool) {
	switch {
	case errors.Is(err, network.ErrConfigRetrieval):
		return "Error: Unable to retrieve configuration from Speedtest.net.", true
	case errors.Is(err, network.ErrNoMatchedServers):
		return "Error: No matched servers for testing.", true
	case errors.Is(err, network.ErrServerList):
		return "Error: Unable to retrieve speed test server list.", true
	case errors.Is(err, network.ErrMeasurement):
		return fmt.Sprintf("Speedtest failed: %v", err), true
	}
	return fmt.Sprintf("An unexpected error occurred: %v", err), false
}

// failRun prints the diagnostic for err and terminates. Recognized
// failures exit with status 1; anything else panics after printing the
// diagnostic.
func failRun(err error) {
	msg, recognized := diagnostic(err)
	fmt.Println(msg)
	if !recognized {
		panic(err)
	}
	os.Exit(1)
}

type runDocument struct {
	Server *network.ServerInfo `json:"server"`
	Result *sampler.Result     `json:"result"`
}

func writeJSON(w io.Writer, server *network.ServerInfo, res *sampler.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runDocument{Server: server, Result: res})
}

// recordRun stores the result in the history database when enabled.
// History failures are logged, never fatal.
func recordRun(cfg *config.Config, server *network.ServerInfo, res *sampler.Result) {
	if !cfg.History.Enabled {
		return
	}

	db, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Warnf("Could not open history database: %v", err)
		return
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Warnf("Could not prepare history schema: %v", err)
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
		return
	}
	log.Debugf("Recorded run in %s", cfg.History.Path)
}

// progressReporter is a sampler.Reporter with a terminal lifecycle.
type progressReporter interface {
	sampler.Reporter
	finish(err error)
}

// newProgress picks spinner output on interactive terminals and plain
// log lines everywhere else. JSON mode never gets a spinner.
func newProgress() progressReporter {
	if *jsonOutput || !interactive() {
		return logProgress{}
	}
	return newSpinnerProgress()
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

type logProgress struct{}

func (logProgress) RoundStarted(round, total int) {
	log.Infof("Round %d/%d: measuring ping, download, upload", round, total)
}

func (logProgress) RoundDone(round, total int, s sampler.Sample) {
	log.Infof("Round %d/%d: ping %.1f ms, download %.1f Mbps, upload %.1f Mbps",
		round, total, s.PingMs, s.DownloadMbps, s.UploadMbps)
}

func (logProgress) finish(error) {}

// spinnerProgress animates a single spinner across all measurement
// rounds.
type spinnerProgress struct {
	manager ysmrr.SpinnerManager
	spinner *ysmrr.Spinner
}

func newSpinnerProgress() *spinnerProgress {
	m := ysmrr.NewSpinnerManager()
	s := m.AddSpinner("Preparing measurement rounds...")
	m.Start()
	return &spinnerProgress{manager: m, spinner: s}
}

func (p *spinnerProgress) RoundStarted(round, total int) {
	p.spinner.UpdateMessage(fmt.Sprintf("Round %d/%d: measuring ping, download, upload...", round, total))
}

func (p *spinnerProgress) RoundDone(round, total int, s sampler.Sample) {
	p.spinner.UpdateMessage(fmt.Sprintf("Round %d/%d: ping %.1f ms, down %.1f Mbps, up %.1f Mbps",
		round, total, s.PingMs, s.DownloadMbps, s.UploadMbps))
}

func (p *spinnerProgress) finish(err error) {
	if err != nil {
		p.spinner.Error()
	} else {
		p.spinner.Complete()
	}
	p.manager.Stop()
}
