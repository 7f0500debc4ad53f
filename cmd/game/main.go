package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/config"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/events"
	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/viewer"
)

// Plays a few games silently so the factions build some history, then shows
// the last game ply by ply in a replay browser, or printed with -plain.
func main() {
	configPath := flag.String("config", "", "Path to config file")
	warmup := flag.Int("warmup", 50, "Games to play before the shown game")
	seed := flag.Int64("seed", 0, "RNG seed (0 for time based)")
	plain := flag.Bool("plain", false, "Print every ply instead of opening the replay browser")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	fmt.Printf("Game seed: %d\n", *seed)
	rng := rand.New(rand.NewSource(*seed))

	factions, err := game.NewFactionsFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid faction settings")
	}

	bus := events.NewEventBus()
	simCfg := game.NewSimulationConfig(cfg, rng, bus, log.Logger)
	simCfg.Games = *warmup + 1
	sim, err := game.NewSimulation(simCfg, factions)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create simulation")
	}

	ctx := context.Background()
	for gameID := 1; gameID <= *warmup; gameID++ {
		if _, err := sim.PlayGame(ctx, gameID); err != nil {
			log.Fatal().Err(err).Int("game_id", gameID).Msg("Warm-up game failed")
		}
	}

	recorder := events.NewRecorder("replay", events.TypePlyApplied)
	bus.Subscribe(recorder)

	outcome, err := sim.PlayGame(ctx, *warmup+1)
	if err != nil {
		log.Fatal().Err(err).Msg("Game failed")
	}

	title := fmt.Sprintf("Game %d: faction %d wins after %d moves, worth %.2f",
		outcome.GameID, outcome.Winner, outcome.Rounds, outcome.WinnerScore)
	if outcome.IsDraw() {
		title = fmt.Sprintf("Game %d: draw after %d moves", outcome.GameID, outcome.Rounds)
	}
	frames := viewer.FramesFromEvents(recorder.Events())

	if *plain {
		for _, f := range frames {
			fmt.Printf("Move %d, faction %d plays %s\n%s\n", f.Round, f.Faction, f.Move, game.Colorize(f.Board))
		}
		fmt.Println(title)
		for _, f := range sim.Factions() {
			fmt.Printf("Faction %d: %d generations, %d aces, loss streak %d\n",
				f.ID, len(f.Generations()), f.Aces, f.LossStreak)
		}
		return
	}

	m := viewer.New(title, frames, game.NewPalette(lipgloss.DefaultRenderer()), 250*time.Millisecond)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal().Err(err).Msg("Replay browser failed")
	}
}
