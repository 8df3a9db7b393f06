package agent

import (
	"sync/atomic"

	"bossai/experiments/metrics"
	"bossai/game"
)

// Job is a search running on its own goroutine. The owner polls Done each
// tick and reads Result once it reports true. A job cannot be cancelled; a
// caller that loses interest simply drops it.
type Job struct {
	done   atomic.Bool
	move   game.Move
	metric metrics.SearchMetric
}

// Submit starts agent on state in the background. The state is immutable so
// the job owns its search tree outright.
func Submit(agent Agent, state *game.GameState) *Job {
	job := &Job{}
	go func() {
		job.move, job.metric = agent.FindMove(state)
		job.done.Store(true)
	}()
	return job
}

func (j *Job) Done() bool {
	return j.done.Load()
}

// Result returns the chosen move. It reports false while the search is still
// running.
func (j *Job) Result() (game.Move, metrics.SearchMetric, bool) {
	if !j.done.Load() {
		return game.PassMove, metrics.SearchMetric{}, false
	}
	return j.move, j.metric, true
}
