package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/rammah83/Internet-Speed-Test/internal/sampler"
)

func TestPreamble(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Preamble(time.Date(2024, 3, 1, 9, 30, 5, 0, time.UTC))

	want := "Timestamp: 2024-03-01 09:30:05\n" +
		"Fetching the best server based on ping...\n"
	if buf.String() != want {
		t.Errorf("Preamble() output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestSummaryLayout(t *testing.T) {
	color.NoColor = true

	s := sampler.Summary{
		Ping:     sampler.Metric{Mean: 11, StdDev: 2 / math.Sqrt2},
		Download: sampler.Metric{Mean: 51, StdDev: 2 / math.Sqrt2},
		Upload:   sampler.Metric{Mean: 8.5, StdDev: 1 / math.Sqrt2},
	}

	var buf bytes.Buffer
	NewConsole(&buf).Summary(2, s)
	out := buf.String()

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("Summary() printed %d lines, want 8:\n%s", len(lines), out)
	}

	wantLines := []string{
		"",
		"===== Internet Speed Test Results of 2 =====",
		"Metric                    Mean             Std Dev",
		strings.Repeat("-", 60),
		"Ping (ms)                 11.0                1.41",
		"Download Speed (Mbps)      51.0                1.41",
		"Upload Speed (Mbps)        8.5                0.71",
		"==================Test Completed=====================",
	}
	for i, want := range wantLines {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestSummaryZeroStdDev(t *testing.T) {
	color.NoColor = true

	s := sampler.Summary{
		Ping:     sampler.Metric{Mean: 10},
		Download: sampler.Metric{Mean: 5},
		Upload:   sampler.Metric{Mean: 1},
	}

	var buf bytes.Buffer
	NewConsole(&buf).Summary(1, s)
	out := buf.String()

	if !strings.Contains(out, "Internet Speed Test Results of 1") {
		t.Errorf("Summary() missing single round banner:\n%s", out)
	}
	if !strings.Contains(out, "Download Speed (Mbps)       5.0                0.00") {
		t.Errorf("Summary() missing zero stddev download row:\n%s", out)
	}
}
