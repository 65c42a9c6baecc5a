package config

import (
	"fmt"
	"io"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config represents the runtime configuration for all commands
type Config struct {
	Rounds   int `yaml:"rounds"`
	ServerID int `yaml:"server-id"`

	History struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"history"`

	Serve struct {
		Interval      duration `yaml:"interval"`
		ListenAddress string   `yaml:"listen-address"`
		MetricsPath   string   `yaml:"metrics-path"`
	} `yaml:"serve"`

	Report struct {
		Days      int    `yaml:"days"`
		OutputDir string `yaml:"output-dir"`
	} `yaml:"report"`
}

type duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler interface.
func (d *duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(dur)
	return nil
}

// Duration is a convenience getter.
func (d duration) Duration() time.Duration {
	return time.Duration(d)
}

// Set updates the underlying duration.
func (d *duration) Set(dur time.Duration) {
	*d = duration(dur)
}

// FromYAML reads YAML from reader and unmarshals it to Config
func FromYAML(r io.Reader) (*Config, error) {
	c := &Config{}
	err := yaml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.ServerID < 0 {
		return fmt.Errorf("server-id must not be negative, got %d", c.ServerID)
	}
	if c.Serve.Interval.Duration() <= 0 {
		return fmt.Errorf("serve.interval must be positive, got %s", c.Serve.Interval.Duration())
	}
	if c.Report.Days <= 0 {
		return fmt.Errorf("report.days must be positive, got %d", c.Report.Days)
	}
	return nil
}
