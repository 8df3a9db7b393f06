package gamemaster

import (
	"fmt"
	"math"
	"os"

	"bossai/game"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// EffectSpec describes an effect card. Damage and Moves are expressions over
// the current stat value, e.g. "damage + 2" or "moves * 2".
type EffectSpec struct {
	Name         string  `yaml:"name"`
	Permanent    bool    `yaml:"permanent"`
	Duration     int     `yaml:"duration"`
	Unattackable bool    `yaml:"unattackable"`
	Thorns       float64 `yaml:"thorns"`
	Damage       string  `yaml:"damage"`
	Moves        string  `yaml:"moves"`
}

// statEnv is the expression environment of a stat layer.
type statEnv struct {
	Damage int `expr:"damage"`
	Moves  int `expr:"moves"`
}

// exprLayer is a StatLayer backed by compiled expressions. A nil program
// leaves its stat unchanged.
type exprLayer struct {
	name   string
	damage *vm.Program
	moves  *vm.Program
}

func (l exprLayer) ModifyDamage(damage int) int {
	return l.run(l.damage, damage, statEnv{Damage: damage})
}

func (l exprLayer) ModifyMoveCount(moves int) int {
	return l.run(l.moves, moves, statEnv{Moves: moves})
}

func (l exprLayer) run(program *vm.Program, fallback int, env statEnv) int {
	if program == nil {
		return fallback
	}
	out, err := expr.Run(program, env)
	if err != nil {
		log.Warn().Err(err).Msgf("Effect %s failed, stat left unchanged", l.name)
		return fallback
	}
	switch v := out.(type) {
	case int:
		return v
	case float64:
		return int(math.Round(v))
	}
	log.Warn().Msgf("Effect %s returned %T, stat left unchanged", l.name, out)
	return fallback
}

// EffectLibrary holds the compiled effect cards by name.
type EffectLibrary struct {
	specs  map[string]EffectSpec
	layers map[string]game.StatLayer
}

func LoadEffectLibrary(data []byte) (*EffectLibrary, error) {
	var doc struct {
		Effects []EffectSpec `yaml:"effects"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse effect library: %w", err)
	}

	lib := &EffectLibrary{
		specs:  make(map[string]EffectSpec, len(doc.Effects)),
		layers: make(map[string]game.StatLayer, len(doc.Effects)),
	}
	for _, spec := range doc.Effects {
		if _, dup := lib.specs[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate effect %q", spec.Name)
		}
		layer, err := compileLayer(spec)
		if err != nil {
			return nil, err
		}
		lib.specs[spec.Name] = spec
		if layer != nil {
			lib.layers[spec.Name] = layer
		}
	}
	return lib, nil
}

func LoadEffectLibraryFile(path string) (*EffectLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read effect library: %w", err)
	}
	return LoadEffectLibrary(data)
}

func compileLayer(spec EffectSpec) (game.StatLayer, error) {
	if spec.Damage == "" && spec.Moves == "" {
		return nil, nil
	}
	layer := exprLayer{name: spec.Name}
	var err error
	if spec.Damage != "" {
		if layer.damage, err = expr.Compile(spec.Damage, expr.Env(statEnv{})); err != nil {
			return nil, fmt.Errorf("compile damage of %q: %w", spec.Name, err)
		}
	}
	if spec.Moves != "" {
		if layer.moves, err = expr.Compile(spec.Moves, expr.Env(statEnv{})); err != nil {
			return nil, fmt.Errorf("compile moves of %q: %w", spec.Name, err)
		}
	}
	return layer, nil
}

// New instantiates a fresh effect from its card.
func (l *EffectLibrary) New(name string) (*LiveEffect, error) {
	spec, ok := l.specs[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect %q", name)
	}
	return &LiveEffect{
		Name:         spec.Name,
		Permanent:    spec.Permanent,
		Remaining:    spec.Duration,
		Unattackable: spec.Unattackable,
		Thorns:       spec.Thorns,
		Layer:        l.layers[name],
	}, nil
}

// Apply attaches a fresh instance of an effect to a unit.
func (l *EffectLibrary) Apply(unit *LiveUnit, name string) error {
	effect, err := l.New(name)
	if err != nil {
		return err
	}
	unit.Effects = append(unit.Effects, effect)
	return nil
}

// Resolve attaches stat layers to effects decoded from the wire, matching by
// name. Unknown effects keep their flags but modify no stats.
func (l *EffectLibrary) Resolve(scene *Scene) {
	for _, u := range scene.Units {
		if u == nil {
			continue
		}
		for _, e := range u.Effects {
			if e == nil || e.Layer != nil {
				continue
			}
			if layer, ok := l.layers[e.Name]; ok {
				e.Layer = layer
			} else if _, known := l.specs[e.Name]; !known {
				log.Debug().Msgf("Effect %s on %s is not in the library", e.Name, u.Name)
			}
		}
	}
}
