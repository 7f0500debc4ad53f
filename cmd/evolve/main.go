package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/config"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/monitoring"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/report"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay (loads config.<env>.yaml)")
	games := flag.Int("games", -1, "Number of games to play (-1 to use config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 to use config default, time based if that is 0 too)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	logEvents := flag.Bool("log-events", false, "Log every game event at debug level")
	resume := flag.String("resume", "", "History file from an earlier run to continue learning from")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *games > 0 {
		cfg.Simulation.Games = *games
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("Invalid settings")
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config) {
			zerolog.SetGlobalLevel(parseLevel(c.Logging.Level))
			log.Info().Str("level", c.Logging.Level).Msg("Config reloaded")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring config change")
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, cfg, *logEvents, *resume)
	if errors.Is(err, context.Canceled) {
		log.Warn().Msg("Run interrupted, partial results written")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logEvents bool, resumePath string) error {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	bus := events.NewEventBus()
	if logEvents {
		bus.Subscribe(subscribers.NewLoggerSubscriber("event_logger", log.Logger, zerolog.DebugLevel))
	}

	var trace *report.TraceSubscriber
	if cfg.Output.TraceEnabled {
		traceGames := cfg.Output.TraceGames
		if len(traceGames) == 0 {
			traceGames = report.DefaultTraceGames(cfg.Simulation.Games)
		}
		trace = report.NewTraceSubscriber(cfg.Output.Dir, traceGames, log.Logger)
		bus.Subscribe(trace)
		defer func() {
			if err := trace.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close trace files")
			}
		}()
	}

	progress := monitoring.NewProgressMonitor(cfg.Simulation.Games, 10*time.Second, log.Logger)
	bus.Subscribe(progress)

	factions, err := game.NewFactionsFromConfig(cfg)
	if err != nil {
		return err
	}
	if resumePath != "" {
		if err := resumeHistory(resumePath, factions); err != nil {
			return err
		}
	}
	sim, err := game.NewSimulation(game.NewSimulationConfig(cfg, rng, bus, log.Logger), factions)
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", sim.RunID()).
		Int64("seed", seed).
		Int("games", sim.Games()).
		Int("board_width", cfg.Board.Width).
		Int("board_height", cfg.Board.Height).
		Msg("Starting evolution run")

	summaryPath := filepath.Join(cfg.Output.Dir, cfg.Output.SummaryFile)
	summaryFile, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("creating summary file: %w", err)
	}
	defer summaryFile.Close()

	summary := report.NewSummaryWriter(summaryFile)
	if err := summary.WriteHeader(sim.RunID(), sim.Games()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	progress.Start()
	runErr := sim.Run(ctx, summary.WriteOutcome)
	progress.Stop()

	// A cancelled run still gets its tally and history
	if err := summary.WriteTally(); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if cfg.Output.HistoryFile != "" {
		if err := writeHistory(filepath.Join(cfg.Output.Dir, cfg.Output.HistoryFile), sim); err != nil {
			return err
		}
	}

	tally := summary.Tally()
	log.Info().
		Int("games_played", tally.Games()).
		Ints("wins", tally.Wins[:]).
		Ints("aces", tally.Aces[:]).
		Int("draws", tally.Draws).
		Str("summary", summaryPath).
		Msg("Evolution run complete")

	return runErr
}

func writeHistory(path string, sim *game.Simulation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating history file: %w", err)
	}
	defer f.Close()

	return report.WriteHistory(f, report.NewHistory(sim.RunID(), sim.Games(), sim.Factions()))
}

func resumeHistory(path string, factions [game.FactionCount]*game.Faction) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	h, err := report.ReadHistory(f)
	if err != nil {
		return err
	}
	if err := h.Apply(factions); err != nil {
		return fmt.Errorf("resuming from %s: %w", path, err)
	}
	log.Info().
		Str("from_run", h.RunID).
		Int("generations_0", len(factions[0].Generations())).
		Int("generations_1", len(factions[1].Generations())).
		Msg("Resumed faction history")
	return nil
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
