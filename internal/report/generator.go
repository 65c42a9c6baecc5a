package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rammah83/Internet-Speed-Test/internal/history"
)

// Generator creates text summaries and trend charts from recorded
// runs.
type Generator struct {
	db *history.DB
}

func NewGenerator(db *history.DB) *Generator {
	return &Generator{db: db}
}

// Generate writes the report artifacts for the last days into a
// timestamped directory under outputDir and returns its path.
func (g *Generator) Generate(outputDir string, days int) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := time.Now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("speedtest_report_%s", stamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateThroughputChart(reportDir, days); err != nil {
		log.Warnf("Failed to generate throughput chart: %v", err)
	}

	if err := g.generatePingChart(reportDir, days); err != nil {
		log.Warnf("Failed to generate ping chart: %v", err)
	}

	if err := g.generateTextReport(reportDir, days); err != nil {
		log.Warnf("Failed to generate text summary: %v", err)
	}

	return reportDir, nil
}

func (g *Generator) generateTextReport(outputDir string, days int) error {
	file, err := os.Create(filepath.Join(outputDir, "summary.txt"))
	if err != nil {
		return err
	}
	defer file.Close()

	return g.WriteTextSummary(file, days)
}
