package experiments

import (
	"context"
	"fmt"
	"path/filepath"

	"bossai/engine"
	"bossai/experiments/metrics"
	"bossai/game"
	"bossai/gamemaster"
	"bossai/meta"
	"bossai/player"
	"bossai/searcher"
	"bossai/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const NumGames = 10 // Per agent config

// AgentConfig is one boss search setup under test.
type AgentConfig struct {
	ID      int
	Depth   int
	Pruning bool
}

func (c AgentConfig) String() string {
	return fmt.Sprintf("depth=%d pruning=%t", c.Depth, c.Pruning)
}

// RunDepthExperiment plays numGames matches for every boss depth from 1 to
// cfg.Depth and returns the directory the records were written to.
func RunDepthExperiment(ctx context.Context, cfg meta.Config, root string, numGames int) (string, error) {
	var configs []AgentConfig
	for depth := 1; depth <= cfg.Depth; depth++ {
		configs = append(configs, AgentConfig{ID: depth, Depth: depth, Pruning: true})
	}
	return runExperiment(ctx, "depth", cfg, configs, root, numGames)
}

// RunPruningExperiment plays the same matches with and without alpha-beta
// pruning at cfg.Depth. Root ties go to the pass, then to the first generated
// move, so both searches pick the same moves and the records differ only in
// search effort.
func RunPruningExperiment(ctx context.Context, cfg meta.Config, root string, numGames int) (string, error) {
	configs := []AgentConfig{
		{ID: 1, Depth: cfg.Depth, Pruning: true},
		{ID: 2, Depth: cfg.Depth, Pruning: false},
	}
	return runExperiment(ctx, "pruning", cfg, configs, root, numGames)
}

func runExperiment(ctx context.Context, name string, cfg meta.Config, configs []AgentConfig, root string, numGames int) (string, error) {
	count := 0
	matchRecords := []metrics.MatchRecord{}
	decisionRecords := []metrics.DecisionRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %s...", ci+1, len(configs), config)

		for i := 0; i < numGames; i++ {
			matchMetric, moveMetrics, err := runGame(ctx, cfg, config, cfg.Seed+uint64(i))
			if err != nil {
				return "", fmt.Errorf("%s game %d: %w", config, i+1, err)
			}
			count++
			matchRecords = append(matchRecords, metrics.NewMatchRecord(count, config.String(), matchMetric))
			for _, mm := range moveMetrics {
				decisionRecords = append(decisionRecords, metrics.NewDecisionRecord(count, mm))
			}

			log.Info().Msgf("completed config %d game %d of %d with winner: %q", ci+1, i+1, numGames, matchMetric.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(filepath.Join(root, name))
	if err != nil {
		return "", fmt.Errorf("create experiment writer: %w", err)
	}
	if err := writer.WriteMatchRecords(matchRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored match records")
	if err := writer.WriteDecisionRecords(decisionRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored decision records")
	return writer.Dir(), nil
}

// runGame plays one match of the standard opening with the boss searching as
// config says.
func runGame(ctx context.Context, cfg meta.Config, config AgentConfig, seed uint64) (metrics.MatchMetric, []metrics.MoveMetric, error) {
	scene, err := gamemaster.StandardScene(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.PlayerHP)
	if err != nil {
		return metrics.MatchMetric{}, nil, err
	}
	rules := game.NewStandardRules()
	table := gamemaster.NewLocalEngine(scene, rules)

	options := []searcher.Option{searcher.WithMetrics()}
	if !config.Pruning {
		options = append(options, searcher.WithoutPruning())
	}
	boss := agent.NewBossAgent(cfg.Minimax(options...), config.Depth)

	match := engine.NewMatch(table, boss, NewController(cfg, seed), TurnOptions(cfg, seed))
	match.MaxTurns = cfg.Turn.MaxTurns
	return match.Run(ctx)
}

// NewController returns the player side configured by cfg.
func NewController(cfg meta.Config, seed uint64) player.Controller {
	if cfg.PlayerDepth > 0 {
		return player.NewSearchController(cfg.Minimax(), cfg.PlayerDepth)
	}
	return player.NewSoftmaxController(game.NewStandardRules(), cfg.Temperature, seed)
}

func TurnOptions(cfg meta.Config, seed uint64) engine.TurnOptions {
	return engine.TurnOptions{
		Tick:      cfg.Turn.Tick,
		MinSettle: cfg.Turn.MinSettle,
		MaxSettle: cfg.Turn.MaxSettle,
		MaxMoves:  cfg.Turn.MaxMoves,
		Rand:      rand.New(rand.NewSource(seed)),
		Evaluate:  game.NewEvaluator(cfg.Evaluator, cfg.Values, game.NewStandardRules()).Evaluate,
	}
}
