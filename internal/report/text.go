package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const maxListedRuns = 20

// WriteTextSummary writes the aggregate statistics and recent run
// history for the last days to w.
func (g *Generator) WriteTextSummary(w io.Writer, days int) error {
	agg, err := g.db.Aggregate(days)
	if err != nil {
		return err
	}
	runs, err := g.db.RecentRuns(days)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Internet Speed Test Report\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Period: Last %d days\n\n", days)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintln(w, "\nOVERALL STATISTICS")

	if agg.Runs == 0 || len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded in this period.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("=", 60))
		return nil
	}

	fmt.Fprintf(w, "Runs: %d\n", agg.Runs)
	fmt.Fprintf(w, "  Ping:     avg %.1f ms (min %.1f, max %.1f)\n",
		agg.PingAvg, agg.PingMin, agg.PingMax)
	fmt.Fprintf(w, "  Download: avg %.1f Mbps (min %.1f, max %.1f)\n",
		agg.DownloadAvg, agg.DownloadMin, agg.DownloadMax)
	fmt.Fprintf(w, "  Upload:   avg %.1f Mbps (min %.1f, max %.1f)\n",
		agg.UploadAvg, agg.UploadMin, agg.UploadMax)
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "\nRECENT RUNS (newest first)")

	for i, r := range runs {
		if i == maxListedRuns {
			fmt.Fprintf(w, "... and %d more\n", len(runs)-maxListedRuns)
			break
		}
		fmt.Fprintf(w, "%s  %s (%s)  ping %.1f ms  down %.1f Mbps  up %.1f Mbps\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.ServerName, r.ServerSponsor,
			r.Summary.Ping.Mean,
			r.Summary.Download.Mean,
			r.Summary.Upload.Mean)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "\nLATEST RUN DETAIL")

	latest := runs[0]
	fmt.Fprintf(w, "Server: %s (%s, %s)\n",
		latest.ServerName, latest.ServerSponsor, latest.ServerCountry)
	fmt.Fprintf(w, "Rounds: %d\n", latest.Rounds)

	samples, err := g.db.SamplesForRun(latest.ID)
	if err != nil {
		return err
	}
	for i, s := range samples {
		fmt.Fprintf(w, "  Round %d: ping %.1f ms, download %.1f Mbps, upload %.1f Mbps\n",
			i+1, s.PingMs, s.DownloadMbps, s.UploadMbps)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	return nil
}
