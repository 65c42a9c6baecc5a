package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rammah83/Internet-Speed-Test/internal/history"
	"github.com/rammah83/Internet-Speed-Test/internal/sampler"
)

func seedHistory(t *testing.T, runs int) *history.DB {
	t.Helper()

	db, err := history.Open(filepath.Join(t.TempDir(), "report_test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(); err != nil {
		t.Fatalf("InitSchema() error = %v", err)
	}

	for i := 0; i < runs; i++ {
		r := history.Run{
			StartedAt:     time.Now().Add(-time.Duration(runs-i) * time.Minute),
			Rounds:        2,
			ServerID:      "21541",
			ServerName:    "Paris",
			ServerCountry: "France",
			ServerSponsor: "Orange",
			Summary: sampler.Summary{
				Ping:     sampler.Metric{Mean: 11 + float64(i)},
				Download: sampler.Metric{Mean: 51 + float64(i)},
				Upload:   sampler.Metric{Mean: 8.5},
			},
		}
		samples := []sampler.Sample{
			{PingMs: 10, DownloadMbps: 50, UploadMbps: 8},
			{PingMs: 12, DownloadMbps: 52, UploadMbps: 9},
		}
		if _, err := db.SaveRun(r, samples); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	return db
}

func TestWriteTextSummary(t *testing.T) {
	g := NewGenerator(seedHistory(t, 2))

	var buf bytes.Buffer
	if err := g.WriteTextSummary(&buf, 7); err != nil {
		t.Fatalf("WriteTextSummary() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Internet Speed Test Report",
		"Period: Last 7 days",
		"OVERALL STATISTICS",
		"Runs: 2",
		"RECENT RUNS (newest first)",
		"Paris (Orange)",
		"LATEST RUN DETAIL",
		"Server: Paris (Orange, France)",
		"Round 1: ping 10.0 ms, download 50.0 Mbps, upload 8.0 Mbps",
		"Round 2: ping 12.0 ms, download 52.0 Mbps, upload 9.0 Mbps",
		strings.Repeat("=", 60),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteTextSummary() missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextSummaryEmpty(t *testing.T) {
	g := NewGenerator(seedHistory(t, 0))

	var buf bytes.Buffer
	if err := g.WriteTextSummary(&buf, 7); err != nil {
		t.Fatalf("WriteTextSummary() error = %v", err)
	}

	if !strings.Contains(buf.String(), "No runs recorded in this period.") {
		t.Errorf("WriteTextSummary() on empty history:\n%s", buf.String())
	}
}

func TestGenerate(t *testing.T) {
	g := NewGenerator(seedHistory(t, 3))

	outputDir := t.TempDir()
	reportDir, err := g.Generate(outputDir, 7)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if filepath.Dir(reportDir) != outputDir {
		t.Errorf("Generate() dir = %q, want child of %q", reportDir, outputDir)
	}

	for _, name := range []string{"summary.txt", "throughput.png", "ping.png"} {
		info, err := os.Stat(filepath.Join(reportDir, name))
		if err != nil {
			t.Errorf("Generate() missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("Generate() wrote empty %s", name)
		}
	}
}
