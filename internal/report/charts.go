package report

import (
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rammah83/Internet-Speed-Test/internal/history"
)

// smaPeriod is the window of the moving average overlaid on trend
// charts with enough data points.
const smaPeriod = 10

func (g *Generator) generateThroughputChart(outputDir string, days int) error {
	runs, err := g.db.RecentRuns(days)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		log.Debugf("Skipping throughput chart, only %d runs recorded", len(runs))
		return nil
	}

	timestamps, downloads := runSeries(runs, func(r history.Run) float64 {
		return r.Summary.Download.Mean
	})
	_, uploads := runSeries(runs, func(r history.Run) float64 {
		return r.Summary.Upload.Mean
	})

	downloadSeries := chart.TimeSeries{
		Name: "Download (Mbps)",
		Style: chart.Style{
			StrokeColor: chart.GetDefaultColor(0),
			StrokeWidth: 2,
		},
		XValues: timestamps,
		YValues: downloads,
	}
	uploadSeries := chart.TimeSeries{
		Name: "Upload (Mbps)",
		Style: chart.Style{
			StrokeColor: chart.GetDefaultColor(1),
			StrokeWidth: 2,
		},
		XValues: timestamps,
		YValues: uploads,
	}

	graph := trendChart("Throughput Trend", "Mbps")
	graph.Series = []chart.Series{downloadSeries, uploadSeries}

	if len(downloads) > smaPeriod {
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Download Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(2),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: downloadSeries,
			Period:      smaPeriod,
		})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(graph, filepath.Join(outputDir, "throughput.png"))
}

func (g *Generator) generatePingChart(outputDir string, days int) error {
	runs, err := g.db.RecentRuns(days)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		log.Debugf("Skipping ping chart, only %d runs recorded", len(runs))
		return nil
	}

	timestamps, pings := runSeries(runs, func(r history.Run) float64 {
		return r.Summary.Ping.Mean
	})

	pingSeries := chart.TimeSeries{
		Name: "Ping (ms)",
		Style: chart.Style{
			StrokeColor: chart.GetDefaultColor(0),
			StrokeWidth: 2,
		},
		XValues: timestamps,
		YValues: pings,
	}

	graph := trendChart("Latency Trend", "Latency (ms)")
	graph.Series = []chart.Series{pingSeries}

	if len(pings) > smaPeriod {
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(1),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: pingSeries,
			Period:      smaPeriod,
		})
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(graph, filepath.Join(outputDir, "ping.png"))
}

// runSeries extracts one chart series from runs, oldest first.
func runSeries(runs []history.Run, value func(history.Run) float64) ([]time.Time, []float64) {
	timestamps := make([]time.Time, 0, len(runs))
	values := make([]float64, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		timestamps = append(timestamps, runs[i].StartedAt)
		values = append(values, value(runs[i]))
	}
	return timestamps, values
}

func trendChart(title, yAxis string) chart.Chart {
	return chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: yAxis,
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
	}
}

func renderPNG(graph chart.Chart, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := graph.Render(chart.PNG, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
