package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bossai/experiments/metrics"
	"bossai/game"
	"bossai/gamemaster"
	"bossai/searcher/agent"

	"github.com/rs/zerolog/log"
)

// RemoteAgent asks an agent server for moves over HTTP. Any failure is
// logged and played as a pass, which ends the boss turn.
type RemoteAgent struct {
	URL    string
	Client *http.Client
}

var _ agent.Agent = (*RemoteAgent)(nil)

func NewRemoteAgent(url string) *RemoteAgent {
	return &RemoteAgent{URL: url, Client: &http.Client{Timeout: time.Minute}}
}

func (r *RemoteAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	move, metric, err := r.requestMove(state)
	if err != nil {
		log.Warn().Err(err).Msgf("Agent at %s failed, passing", r.URL)
		return game.PassMove, metrics.SearchMetric{}
	}
	return move, metric
}

// requestMove encodes state as a scene, posts it to /findmove and maps the
// answer back to a snapshot move.
func (r *RemoteAgent) requestMove(state *game.GameState) (game.Move, metrics.SearchMetric, error) {
	scene := gamemaster.SceneFromState(state)
	bodyBytes, err := json.Marshal(agent.FindMoveRequest{Scene: *scene})
	if err != nil {
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("encode scene: %w", err)
	}

	resp, err := r.Client.Post(r.URL+"/findmove", "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		return game.PassMove, metrics.SearchMetric{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var answer agent.FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("decode move: %w", err)
	}
	if answer.Pass {
		return game.PassMove, answer.Metrics, nil
	}

	to := game.Position{Row: answer.Row, Col: answer.Col}
	for _, u := range state.Units() {
		if gamemaster.UnitName(u.ID) == answer.Unit {
			return game.Move{UnitID: u.ID, To: to, Capture: answer.Capture}, answer.Metrics, nil
		}
	}
	return game.PassMove, metrics.SearchMetric{}, fmt.Errorf("agent moved unknown unit %q", answer.Unit)
}
