package meta

import (
	"fmt"
	"os"
	"time"

	"bossai/game"
	"bossai/searcher"

	"gopkg.in/yaml.v3"
)

type Board struct {
	Rows     int `yaml:"rows"`
	Cols     int `yaml:"cols"`
	PlayerHP int `yaml:"player_hp"`
}

type Turn struct {
	Tick      time.Duration `yaml:"tick"`
	MinSettle time.Duration `yaml:"min_settle"`
	MaxSettle time.Duration `yaml:"max_settle"`
	MaxMoves  int           `yaml:"max_moves"`
	MaxTurns  int           `yaml:"max_turns"`
}

// Config is everything the engine takes from outside: search depth and the
// tuning weights of the evaluator, values and move ordering.
type Config struct {
	Depth       int                      `yaml:"depth"`
	PlayerDepth int                      `yaml:"player_depth"` // 0 plays the softmax controller
	Temperature float64                  `yaml:"temperature"`
	Seed        uint64                   `yaml:"seed"`
	Effects     string                   `yaml:"effects"` // effect library file, optional
	Board       Board                    `yaml:"board"`
	Turn        Turn                     `yaml:"turn"`
	Evaluator   game.Weights             `yaml:"evaluator"`
	Values      game.ValueWeights        `yaml:"values"`
	Ordering    searcher.OrderingWeights `yaml:"ordering"`
}

func Default() Config {
	return Config{
		Depth:       3,
		Temperature: 10,
		Seed:        1,
		Board:       Board{Rows: 8, Cols: 6, PlayerHP: 20},
		Turn: Turn{
			Tick:      time.Millisecond,
			MinSettle: 0,
			MaxSettle: 0,
			MaxMoves:  64,
			MaxTurns:  300,
		},
		Evaluator: game.DefaultWeights(),
		Values:    game.DefaultValueWeights(),
		Ordering:  searcher.DefaultOrderingWeights(),
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch {
	case c.Depth <= 0:
		return fmt.Errorf("depth must be positive, got %d", c.Depth)
	case c.PlayerDepth < 0:
		return fmt.Errorf("player depth must not be negative, got %d", c.PlayerDepth)
	case c.Board.Rows <= 0 || c.Board.Cols <= 0:
		return fmt.Errorf("board must have cells, got %dx%d", c.Board.Rows, c.Board.Cols)
	case c.Turn.MinSettle > c.Turn.MaxSettle:
		return fmt.Errorf("min settle %s exceeds max settle %s", c.Turn.MinSettle, c.Turn.MaxSettle)
	}
	return nil
}

// Minimax builds the boss search described by c.
func (c Config) Minimax(options ...searcher.Option) *searcher.Minimax {
	rules := game.NewStandardRules()
	base := []searcher.Option{
		searcher.WithRules(rules),
		searcher.WithValueWeights(c.Values),
		searcher.WithOrdering(c.Ordering),
		searcher.WithEvaluator(game.NewEvaluator(c.Evaluator, c.Values, rules).Evaluate),
	}
	return searcher.NewMinimax(append(base, options...)...)
}
