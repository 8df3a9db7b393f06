package game

// DurationKind tells whether an effect counts down or lasts forever.
type DurationKind int

const (
	Temporary DurationKind = iota
	Permanent
)

// StatLayer adjusts a unit's stats while the effect carrying it is active.
type StatLayer interface {
	ModifyDamage(damage int) int
	ModifyMoveCount(moves int) int
}

// StatFuncs is a StatLayer made of plain closures. A nil func leaves the stat
// unchanged.
type StatFuncs struct {
	Damage func(int) int
	Moves  func(int) int
}

func (s StatFuncs) ModifyDamage(damage int) int {
	if s.Damage == nil {
		return damage
	}
	return s.Damage(damage)
}

func (s StatFuncs) ModifyMoveCount(moves int) int {
	if s.Moves == nil {
		return moves
	}
	return s.Moves(moves)
}

// AddStats is a StatLayer adding flat bonuses.
func AddStats(damage, moves int) StatLayer {
	return StatFuncs{
		Damage: func(d int) int { return d + damage },
		Moves:  func(m int) int { return m + moves },
	}
}

// UnitEffect is an immutable snapshot of an effect attached to a unit.
type UnitEffect struct {
	Name          string
	Duration      DurationKind
	Remaining     int       // only meaningful for Temporary
	Layer         StatLayer // optional
	CanBeAttacked bool
	Thorns        float64 // fraction of incoming damage reflected, 0 if none
}

// Tick returns the effect one turn older.
func (e UnitEffect) Tick() UnitEffect {
	if e.Duration == Permanent {
		return e
	}
	e.Remaining--
	return e
}

func (e UnitEffect) IsExpired() bool {
	return e.Duration == Temporary && e.Remaining <= 0
}

// TileEffect is an immutable snapshot of an effect lying on a board cell.
type TileEffect struct {
	Name       string
	Duration   DurationKind
	Remaining  int
	BlocksTile bool
}

func (e TileEffect) Tick() TileEffect {
	if e.Duration == Permanent {
		return e
	}
	e.Remaining--
	return e
}

func (e TileEffect) IsExpired() bool {
	return e.Duration == Temporary && e.Remaining <= 0
}

// tickUnitEffects ages every effect and drops the expired ones.
func tickUnitEffects(effects []UnitEffect) []UnitEffect {
	if len(effects) == 0 {
		return effects
	}
	out := make([]UnitEffect, 0, len(effects))
	for _, e := range effects {
		e = e.Tick()
		if !e.IsExpired() {
			out = append(out, e)
		}
	}
	return out
}

func tickTileEffects(effects []TileEffect) []TileEffect {
	if len(effects) == 0 {
		return effects
	}
	out := make([]TileEffect, 0, len(effects))
	for _, e := range effects {
		e = e.Tick()
		if !e.IsExpired() {
			out = append(out, e)
		}
	}
	return out
}
