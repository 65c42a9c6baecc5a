package history

import (
	"database/sql"
	"time"

	"github.com/rammah83/Internet-Speed-Test/internal/sampler"
)

// Run is one persisted measurement run.
type Run struct {
	ID            int64
	StartedAt     time.Time
	Rounds        int
	ServerID      string
	ServerName    string
	ServerCountry string
	ServerSponsor string
	Summary       sampler.Summary
}

// Aggregate holds the window statistics over persisted runs.
type Aggregate struct {
	Runs        int
	PingAvg     float64
	PingMin     float64
	PingMax     float64
	DownloadAvg float64
	DownloadMin float64
	DownloadMax float64
	UploadAvg   float64
	UploadMin   float64
	UploadMax   float64
}

// SaveRun stores a run and its per-round samples in one transaction.
func (db *DB) SaveRun(r Run, samples []sampler.Sample) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
        INSERT INTO runs (
            started_at, rounds,
            server_id, server_name, server_country, server_sponsor,
            ping_mean_ms, ping_stddev_ms,
            download_mean_mbps, download_stddev_mbps,
            upload_mean_mbps, upload_stddev_mbps
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		r.StartedAt,
		r.Rounds,
		r.ServerID,
		r.ServerName,
		r.ServerCountry,
		r.ServerSponsor,
		r.Summary.Ping.Mean,
		r.Summary.Ping.StdDev,
		r.Summary.Download.Mean,
		r.Summary.Download.StdDev,
		r.Summary.Upload.Mean,
		r.Summary.Upload.StdDev,
	)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, s := range samples {
		_, err := tx.Exec(`
            INSERT INTO samples (run_id, round, ping_ms, download_mbps, upload_mbps)
            VALUES (?, ?, ?, ?, ?)
        `, id, i+1, s.PingMs, s.DownloadMbps, s.UploadMbps)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// RecentRuns retrieves the runs of the last days, newest first.
func (db *DB) RecentRuns(days int) ([]Run, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	rows, err := db.Query(`
        SELECT id, started_at, rounds,
               server_id, server_name, server_country, server_sponsor,
               ping_mean_ms, ping_stddev_ms,
               download_mean_mbps, download_stddev_mbps,
               upload_mean_mbps, upload_stddev_mbps
        FROM runs
        WHERE started_at > ?
        ORDER BY started_at DESC
        LIMIT 10000
    `, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		err := rows.Scan(&r.ID, &r.StartedAt, &r.Rounds,
			&r.ServerID, &r.ServerName, &r.ServerCountry, &r.ServerSponsor,
			&r.Summary.Ping.Mean, &r.Summary.Ping.StdDev,
			&r.Summary.Download.Mean, &r.Summary.Download.StdDev,
			&r.Summary.Upload.Mean, &r.Summary.Upload.StdDev)
		if err != nil {
			continue
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// SamplesForRun retrieves the per-round samples of one run in round
// order.
func (db *DB) SamplesForRun(runID int64) ([]sampler.Sample, error) {
	rows, err := db.Query(`
        SELECT ping_ms, download_mbps, upload_mbps
        FROM samples
        WHERE run_id = ?
        ORDER BY round
    `, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []sampler.Sample
	for rows.Next() {
		var s sampler.Sample
		if err := rows.Scan(&s.PingMs, &s.DownloadMbps, &s.UploadMbps); err != nil {
			continue
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// Aggregate computes window statistics over the run means of the last
// days.
func (db *DB) Aggregate(days int) (*Aggregate, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	row := db.QueryRow(`
        SELECT
            COUNT(*),
            AVG(ping_mean_ms), MIN(ping_mean_ms), MAX(ping_mean_ms),
            AVG(download_mean_mbps), MIN(download_mean_mbps), MAX(download_mean_mbps),
            AVG(upload_mean_mbps), MIN(upload_mean_mbps), MAX(upload_mean_mbps)
        FROM runs
        WHERE started_at > ?
    `, cutoff)

	var agg Aggregate
	var pingAvg, pingMin, pingMax sql.NullFloat64
	var downAvg, downMin, downMax sql.NullFloat64
	var upAvg, upMin, upMax sql.NullFloat64

	err := row.Scan(&agg.Runs,
		&pingAvg, &pingMin, &pingMax,
		&downAvg, &downMin, &downMax,
		&upAvg, &upMin, &upMax)
	if err != nil {
		return nil, err
	}

	if agg.Runs == 0 {
		return &agg, nil
	}

	agg.PingAvg, agg.PingMin, agg.PingMax = pingAvg.Float64, pingMin.Float64, pingMax.Float64
	agg.DownloadAvg, agg.DownloadMin, agg.DownloadMax = downAvg.Float64, downMin.Float64, downMax.Float64
	agg.UploadAvg, agg.UploadMin, agg.UploadMax = upAvg.Float64, upMin.Float64, upMax.Float64

	return &agg, nil
}
