package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/rammah83/Internet-Speed-Test/internal/config"
	"github.com/rammah83/Internet-Speed-Test/internal/history"
	"github.com/rammah83/Internet-Speed-Test/internal/report"
)

// runReport summarizes recorded runs, either to stdout or as a report
// directory with trend charts.
func runReport(cfg *config.Config) {
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Errorln(err)
		os.Exit(2)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Errorln(err)
		os.Exit(2)
	}

	gen := report.NewGenerator(db)

	if cfg.Report.OutputDir == "" {
		if err := gen.WriteTextSummary(os.Stdout, cfg.Report.Days); err != nil {
			log.Errorln(err)
			os.Exit(2)
		}
		return
	}

	dir, err := gen.Generate(cfg.Report.OutputDir, cfg.Report.Days)
	if err != nil {
		log.Errorln(err)
		os.Exit(2)
	}
	log.Infof("Report generated in: %s", dir)
}
