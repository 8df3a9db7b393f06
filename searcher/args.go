package searcher

// Move ordering bonuses. Killers outrank captures, which outrank history, so
// the scales are far apart.

type OrderingWeights struct {
	Killer  float64 `yaml:"killer"` // first killer slot, the second gets half
	Capture float64 `yaml:"capture"`
	History float64 `yaml:"history"`
	Forward float64 `yaml:"forward"` // per row of forward progress
}

func DefaultOrderingWeights() OrderingWeights {
	return OrderingWeights{
		Killer:  100000,
		Capture: 50000,
		History: 10,
		Forward: 5,
	}
}
