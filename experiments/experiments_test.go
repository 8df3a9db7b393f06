package experiments

import (
	"context"
	"path/filepath"
	"testing"

	"bossai/experiments/metrics"
	"bossai/meta"

	"github.com/stretchr/testify/require"
)

func smallConfig() meta.Config {
	cfg := meta.Default()
	cfg.Depth = 2
	cfg.Turn.MaxTurns = 2
	cfg.Turn.MaxMoves = 4
	return cfg
}

func TestRunDepthExperiment(t *testing.T) {
	dir, err := RunDepthExperiment(context.Background(), smallConfig(), t.TempDir(), 1)
	require.NoError(t, err)

	records, err := metrics.ReadDecisionRecords(filepath.Join(dir, "decisions.parquet"))
	require.NoError(t, err)
	require.NotEmpty(t, records)

	depths := map[int32]bool{}
	for _, r := range records {
		if r.Team == "boss" {
			depths[r.Depth] = true
		}
	}
	require.Equal(t, map[int32]bool{1: true, 2: true}, depths)
	require.FileExists(t, filepath.Join(dir, "matches.parquet"))
}

func TestRunPruningExperiment(t *testing.T) {
	dir, err := RunPruningExperiment(context.Background(), smallConfig(), t.TempDir(), 1)
	require.NoError(t, err)

	records, err := metrics.ReadDecisionRecords(filepath.Join(dir, "decisions.parquet"))
	require.NoError(t, err)

	moves := map[bool][]string{}
	for _, r := range records {
		if r.Team == "boss" {
			moves[r.Pruning] = append(moves[r.Pruning], r.Move)
		}
	}
	require.Equal(t, moves[true], moves[false], "Pruning must not change the boss's choices")
}
