package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"bossai/engine"
	"bossai/experiments"
	"bossai/game"
	"bossai/gamemaster"
	"bossai/meta"
	"bossai/searcher"
	"bossai/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "experiment", "What to run: experiment, serve or match")
	configPath := flag.String("config", "", "YAML config file, defaults are used when empty")
	experiment := flag.String("experiment", "depth", "Experiment to run: depth or pruning")
	numGames := flag.Int("games", experiments.NumGames, "Games per agent config")
	out := flag.String("out", "results", "Directory for experiment records")
	addr := flag.String("addr", ":8080", "Address the agent server listens on")
	agentURL := flag.String("agent", "", "Agent server URL for match mode, searches locally when empty")
	debug := flag.Bool("debug", false, "Log search decisions")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := meta.Default()
	if *configPath != "" {
		var err error
		if cfg, err = meta.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("Cannot load config")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "experiment":
		runExperiment(ctx, cfg, *experiment, *out, *numGames)
	case "serve":
		serve(cfg, *addr)
	case "match":
		runMatch(ctx, cfg, *agentURL)
	default:
		log.Fatal().Msgf("Unknown mode %q", *mode)
	}
}

func runExperiment(ctx context.Context, cfg meta.Config, name, out string, numGames int) {
	run := experiments.RunDepthExperiment
	switch name {
	case "depth":
	case "pruning":
		run = experiments.RunPruningExperiment
	default:
		log.Fatal().Msgf("Unknown experiment %q", name)
	}
	dir, err := run(ctx, cfg, out, numGames)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", name)
	}
	log.Info().Msgf("Records written to %s", dir)
}

func serve(cfg meta.Config, addr string) {
	var effects *gamemaster.EffectLibrary
	if cfg.Effects != "" {
		var err error
		if effects, err = gamemaster.LoadEffectLibraryFile(cfg.Effects); err != nil {
			log.Fatal().Err(err).Msg("Cannot load effect library")
		}
	}
	boss := agent.NewBossAgent(cfg.Minimax(searcher.WithMetrics()), cfg.Depth)
	if err := agent.StartAgentServer(addr, boss, effects); err != nil {
		log.Fatal().Err(err).Msg("Agent server stopped")
	}
}

// runMatch plays a single match of the standard opening, searching through
// the agent server when one is given.
func runMatch(ctx context.Context, cfg meta.Config, agentURL string) {
	scene, err := gamemaster.StandardScene(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.PlayerHP)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot set up the board")
	}
	table := gamemaster.NewLocalEngine(scene, game.NewStandardRules())

	var boss agent.Agent = agent.NewBossAgent(cfg.Minimax(searcher.WithMetrics()), cfg.Depth)
	if agentURL != "" {
		boss = engine.NewRemoteAgent(agentURL)
	}

	match := engine.NewMatch(table, boss, experiments.NewController(cfg, cfg.Seed), experiments.TurnOptions(cfg, cfg.Seed))
	match.MaxTurns = cfg.Turn.MaxTurns
	result, moves, err := match.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Match aborted")
	}
	log.Info().Msgf("Winner %q after %d turns and %d decisions, player HP %d", result.Winner, result.Turns, len(moves), result.FinalPlayerHP)
}
