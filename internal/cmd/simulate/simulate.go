// Package simulate parses simulate command flags and drives Lua
// scenario scripts against an in-process engine.
package simulate

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"time"

	"github.com/louisbranch/nback-engine/internal/platform/config"
	"github.com/louisbranch/nback-engine/internal/platform/otel"
	"github.com/louisbranch/nback-engine/internal/telemetry"
	"github.com/louisbranch/nback-engine/internal/tools/scenario"
)

// Config holds simulate command configuration.
type Config struct {
	Scenario   string        `env:"NBACK_ENGINE_SCENARIO_FILE"`
	Assertions bool          `env:"NBACK_ENGINE_SCENARIO_ASSERT"  envDefault:"true"`
	Verbose    bool          `env:"NBACK_ENGINE_SCENARIO_VERBOSE"`
	Events     bool          `env:"NBACK_ENGINE_SCENARIO_EVENTS"`
	Timeout    time.Duration `env:"NBACK_ENGINE_SCENARIO_TIMEOUT" envDefault:"10s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.BoolVar(&cfg.Events, "events", cfg.Events, "print engine telemetry events")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the simulate command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	shutdown, err := otel.Setup(ctx, "nback-simulate")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	var sink telemetry.Sink
	if cfg.Events {
		sink = &logSink{logger: log.New(out, "", 0)}
	}

	logger := log.New(errOut, "", 0)
	return scenario.RunFile(ctx, scenario.Config{
		Timeout:    cfg.Timeout,
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Logger:     logger,
		Telemetry:  sink,
	}, cfg.Scenario)
}

// logSink prints engine telemetry events as plain lines.
type logSink struct {
	logger *log.Logger
}

func (s *logSink) Record(_ context.Context, evt telemetry.Event) error {
	s.logger.Printf("event %s session=%s round=%d", evt.Name, evt.SessionID, evt.Round)
	return nil
}
