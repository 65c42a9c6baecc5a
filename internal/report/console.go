package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/rammah83/Internet-Speed-Test/internal/config"
	"github.com/rammah83/Internet-Speed-Test/internal/sampler"
)

// Console renders run results in the fixed-width table layout.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Preamble prints the run timestamp and the server selection status
// line.
func (c *Console) Preamble(start time.Time) {
	fmt.Fprintf(c.out, "Timestamp: %s\n", start.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(c.out, "Fetching the best server based on ping...")
}

// Summary prints the three metric rows bounded by banner lines. Mean
// is rendered with one decimal place, standard deviation with two.
func (c *Console) Summary(rounds int, s sampler.Summary) {
	banner := color.New(color.FgCyan, color.Bold)
	banner.Fprintf(c.out, "\n===== Internet Speed Test Results of %d =====\n", rounds)
	fmt.Fprintf(c.out, "%-20s%10s%20s\n", "Metric", "Mean", "Std Dev")
	fmt.Fprintln(c.out, strings.Repeat("-", config.TableWidth))
	c.row("Ping (ms)", s.Ping)
	c.row("Download Speed (Mbps)", s.Download)
	c.row("Upload Speed (Mbps)", s.Upload)
	banner.Fprintln(c.out, "==================Test Completed=====================")
}

func (c *Console) row(label string, m sampler.Metric) {
	fmt.Fprintf(c.out, "%-20s%10.1f%20.2f\n", label, m.Mean, m.StdDev)
}
