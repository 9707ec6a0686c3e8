package config

import (
	"fmt"
	"time"

	"github.com/yndnr/zombienet-go/internal/engine"
	"github.com/yndnr/zombienet-go/internal/infra/shutdown"
)

// Settings is the configuration of the CLI process.
type Settings struct {
	Log      LogSettings      `koanf:"log"`
	Teardown TeardownSettings `koanf:"teardown"`
	Metrics  MetricsSettings  `koanf:"metrics"`
	Engine   EngineSettings   `koanf:"engine"`
}

// LogSettings configures diagnostic logging.
type LogSettings struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// TeardownSettings bounds the shutdown sequence.
type TeardownSettings struct {
	Timeout time.Duration `koanf:"timeout"`
}

// MetricsSettings configures the Prometheus textfile written on exit.
type MetricsSettings struct {
	// File is empty when no metrics should be written.
	File string `koanf:"file"`
}

// EngineSettings tunes the orchestration engine.
type EngineSettings struct {
	Parallelism int `koanf:"parallelism"`
	// Rate is the number of provider CLI calls started per second.
	Rate float64 `koanf:"rate"`
	// BaseDir holds network summaries and node logs.
	BaseDir string `koanf:"dir"`
}

// Default returns the default settings.
func Default() *Settings {
	return &Settings{
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		Teardown: TeardownSettings{
			Timeout: shutdown.DefaultTimeout,
		},
		Engine: EngineSettings{
			Parallelism: engine.DefaultParallelism,
			Rate:        engine.DefaultCallRate,
		},
	}
}

// Validate checks the settings.
func (s *Settings) Validate() error {
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", s.Log.Level)
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json; got %q", s.Log.Format)
	}
	if s.Teardown.Timeout <= 0 {
		return fmt.Errorf("teardown.timeout must be positive; got %s", s.Teardown.Timeout)
	}
	if s.Engine.Parallelism <= 0 {
		return fmt.Errorf("engine.parallelism must be positive; got %d", s.Engine.Parallelism)
	}
	if s.Engine.Rate < 0 {
		return fmt.Errorf("engine.rate must not be negative; got %g", s.Engine.Rate)
	}
	return nil
}
