package agent

import (
	"encoding/json"
	"net/http"
	"sync"

	"bossai/experiments/metrics"
	"bossai/game"
	"bossai/gamemaster"

	"github.com/rs/zerolog/log"
)

// FindMoveRequest carries the live scene the agent should move in.
type FindMoveRequest struct {
	Scene gamemaster.Scene `json:"scene"`
}

// FindMoveResponse names the chosen unit by its scene name, since snapshot
// ids mean nothing outside the server.
type FindMoveResponse struct {
	Pass    bool                 `json:"pass"`
	Unit    string               `json:"unit,omitempty"`
	Row     int                  `json:"row"`
	Col     int                  `json:"col"`
	Capture bool                 `json:"capture"`
	Metrics metrics.SearchMetric `json:"metrics"`
}

type server struct {
	mu      sync.Mutex
	agent   Agent
	effects *gamemaster.EffectLibrary
}

// NewHandler serves POST /findmove for agent. Effects named in incoming
// scenes are resolved against effects, which may be nil. Requests are
// answered one at a time.
func NewHandler(agent Agent, effects *gamemaster.EffectLibrary) http.Handler {
	s := &server{agent: agent, effects: effects}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", s.handleFindMove)
	return mux
}

// StartAgentServer blocks serving agent on addr.
func StartAgentServer(addr string, agent Agent, effects *gamemaster.EffectLibrary) error {
	log.Info().Msgf("Starting agent server on %s ...", addr)
	return http.ListenAndServe(addr, NewHandler(agent, effects))
}

func (s *server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var payload FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if s.effects != nil {
		s.effects.Resolve(&payload.Scene)
	}
	state, byID, err := gamemaster.BuildState(&payload.Scene)
	if err != nil {
		http.Error(w, "bad scene: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	move, metric := s.agent.FindMove(state)
	s.mu.Unlock()

	resp := toResponse(move, metric, byID)
	log.Debug().Msgf("Agent answered %s with %s (%d nodes)", r.RemoteAddr, move, metric.Nodes)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode move")
	}
}

func toResponse(move game.Move, metric metrics.SearchMetric, byID map[int]*gamemaster.LiveUnit) FindMoveResponse {
	if move.IsPass() {
		return FindMoveResponse{Pass: true, Metrics: metric}
	}
	unit, ok := byID[move.UnitID]
	if !ok {
		log.Warn().Msgf("Agent chose unknown unit %d, passing", move.UnitID)
		return FindMoveResponse{Pass: true, Metrics: metric}
	}
	return FindMoveResponse{
		Unit:    unit.Name,
		Row:     move.To.Row,
		Col:     move.To.Col,
		Capture: move.Capture,
		Metrics: metric,
	}
}
