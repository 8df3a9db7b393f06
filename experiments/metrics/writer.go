package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// MatchRecord is one finished match of an experiment.
type MatchRecord struct {
	ID            int32  `parquet:"id"`
	Config        string `parquet:"config,dict"`
	Winner        string `parquet:"winner,dict"`
	StartTime     int64  `parquet:"start_time_ms"`
	DurationMs    int64  `parquet:"duration_ms"`
	Turns         int32  `parquet:"turns"`
	TotalMoves    int32  `parquet:"total_moves"`
	FinalPlayerHP int32  `parquet:"final_player_hp"`
}

// DecisionRecord is one search decision taken during a match.
type DecisionRecord struct {
	Match      int32   `parquet:"match"`
	Turn       int32   `parquet:"turn"`
	Team       string  `parquet:"team,dict"`
	Move       string  `parquet:"move"`
	Score      float64 `parquet:"score"`
	StateHash  uint64  `parquet:"state_hash"`
	Depth      int32   `parquet:"depth"`
	Pruning    bool    `parquet:"pruning"`
	DurationUs int64   `parquet:"duration_us"`
	Nodes      int64   `parquet:"nodes"`
	Leaves     int64   `parquet:"leaves"`
	Cutoffs    int64   `parquet:"cutoffs"`
}

func NewMatchRecord(id int, config string, m MatchMetric) MatchRecord {
	return MatchRecord{
		ID:            int32(id),
		Config:        config,
		Winner:        m.Winner,
		StartTime:     m.StartTime.UnixMilli(),
		DurationMs:    m.Duration.Milliseconds(),
		Turns:         int32(m.Turns),
		TotalMoves:    int32(m.TotalMoves),
		FinalPlayerHP: int32(m.FinalPlayerHP),
	}
}

func NewDecisionRecord(match int, m MoveMetric) DecisionRecord {
	return DecisionRecord{
		Match:      int32(match),
		Turn:       int32(m.Turn),
		Team:       m.Team,
		Move:       m.Move,
		Score:      m.Score,
		StateHash:  m.StateHash,
		Depth:      int32(m.Depth),
		Pruning:    m.Pruning,
		DurationUs: m.Duration.Microseconds(),
		Nodes:      int64(m.Nodes),
		Leaves:     int64(m.Leaves),
		Cutoffs:    int64(m.Cutoffs),
	}
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output folder under root.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	return writeParquet(filepath.Join(w.baseDir, "matches.parquet"), records, "match_v1")
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	return writeParquet(filepath.Join(w.baseDir, "decisions.parquet"), records, "decision_v1")
}

// writeParquet writes rows to a temp file and renames it into place so that
// readers never observe a partial file.
func writeParquet[T any](path string, rows []T, schema string) error {
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		return fmt.Errorf("write parquet %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename parquet %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadDecisionRecords loads a decisions file written by WriteDecisionRecords.
func ReadDecisionRecords(path string) ([]DecisionRecord, error) {
	rows, err := parquet.ReadFile[DecisionRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
