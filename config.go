package qwalk

import (
	"fmt"
	"time"
)

// Defaults of the reference demonstration.
const (
	DefaultSteps  = 6
	DefaultOutput = "figure.pdf"
)

type Config struct {
	SchedulingTimeout time.Duration
	Steps             int
	Workers           int
	Output            string
	TablePath         string
}

func NewConfig() *Config {
	return &Config{
		SchedulingTimeout: 10 * time.Second,
		Steps:             DefaultSteps,
		Workers:           DefaultSteps,
		Output:            DefaultOutput,
	}
}

// Validate rejects settings the run cannot honour.
func (c *Config) Validate() error {
	switch {
	case c.Steps < 1:
		return fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidConfig, c.Steps)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case c.Output == "":
		return fmt.Errorf("%w: output path is empty", ErrInvalidConfig)
	}

	return nil
}
