package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	f, err := os.Open("testdata/config_test.yml")
	if err != nil {
		t.Error("failed to open file", err)
		t.FailNow()
	}

	c, err := FromYAML(f)
	f.Close()
	if err != nil {
		t.Error("failed to parse", err)
		t.FailNow()
	}

	if expected := 5; c.Rounds != expected {
		t.Errorf("expected rounds to be %d, got %d", expected, c.Rounds)
	}
	if expected := 21541; c.ServerID != expected {
		t.Errorf("expected server-id to be %d, got %d", expected, c.ServerID)
	}

	if !c.History.Enabled {
		t.Error("expected history.enabled to be true")
	}
	if expected := "/var/lib/speedtest/history.db"; c.History.Path != expected {
		t.Errorf("expected history.path to be %q, got %q", expected, c.History.Path)
	}

	if expected := time.Hour + 30*time.Minute; c.Serve.Interval.Duration() != expected {
		t.Errorf("expected serve.interval to be %v, got %v", expected, c.Serve.Interval.Duration())
	}
	if expected := ":9799"; c.Serve.ListenAddress != expected {
		t.Errorf("expected serve.listen-address to be %q, got %q", expected, c.Serve.ListenAddress)
	}
	if expected := "/probe"; c.Serve.MetricsPath != expected {
		t.Errorf("expected serve.metrics-path to be %q, got %q", expected, c.Serve.MetricsPath)
	}

	if expected := 14; c.Report.Days != expected {
		t.Errorf("expected report.days to be %d, got %d", expected, c.Report.Days)
	}
	if expected := "/tmp/speedtest-reports"; c.Report.OutputDir != expected {
		t.Errorf("expected report.output-dir to be %q, got %q", expected, c.Report.OutputDir)
	}
}

func TestParseInvalidDuration(t *testing.T) {
	_, err := FromYAML(strings.NewReader("serve:\n  interval: soon\n"))
	if err == nil {
		t.Error("expected error for invalid duration, got none")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{Rounds: DefaultRounds}
		c.Serve.Interval.Set(DefaultServeInterval)
		c.Report.Days = DefaultReportDays
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "zero rounds", mutate: func(c *Config) { c.Rounds = 0 }, wantErr: true},
		{name: "negative rounds", mutate: func(c *Config) { c.Rounds = -3 }, wantErr: true},
		{name: "negative server id", mutate: func(c *Config) { c.ServerID = -1 }, wantErr: true},
		{name: "zero interval", mutate: func(c *Config) { c.Serve.Interval.Set(0) }, wantErr: true},
		{name: "zero report days", mutate: func(c *Config) { c.Report.Days = 0 }, wantErr: true},
		{name: "single round", mutate: func(c *Config) { c.Rounds = 1 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
