// Package runner drives a board at a fixed delay: advance one generation,
// then redraw, until the context ends or a stop condition is met.
package runner

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-life/model"
	"github.com/sheikhrachel/torus-life/utils"
)

const (
	historySize = 5
	// a board matching any of this many previous generations is stagnant
	cycleWindow = 3
)

// Renderer draws a board once per generation
type Renderer interface {
	Clear() error
	Display(b *model.Board) error
}

type Runner struct {
	board    *model.Board
	renderer Renderer
	config   utils.Config
	logger   *log.Logger
	stats    *utils.Stats

	generation    int
	history       []string // hashes of recent generations
	stagnantCount int
}

// New returns a Runner for board. A nil renderer skips drawing, for callers
// that draw on their own schedule.
func New(board *model.Board, renderer Renderer, config utils.Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		board:    board,
		renderer: renderer,
		config:   config,
		logger:   logger,
		stats:    utils.NewStats(),
	}
}

// Stats returns the running statistics
func (r *Runner) Stats() *utils.Stats {
	return r.stats
}

// Generation returns the number of generations advanced, across restarts
func (r *Runner) Generation() int {
	return r.generation
}

// Run draws the board, then advances and redraws it every tick. The delay is
// measured from the end of one generation to the start of the next.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.draw(); err != nil {
		return err
	}

	timer := time.NewTimer(r.config.Tick.Duration)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logSummary("interrupted")
			return nil
		case <-timer.C:
		}

		done, reason, err := r.Tick()
		if err != nil {
			return err
		}
		if done {
			r.logSummary(reason)
			return nil
		}
		timer.Reset(r.config.Tick.Duration)
	}
}

// Tick advances one generation, redraws and applies the stop and restart
// conditions. done reports that the run should end, and why.
func (r *Runner) Tick() (done bool, reason string, err error) {
	start := time.Now()

	res, err := r.board.AdvanceGeneration()
	if err != nil {
		return true, "", errors.Wrap(err, "[Tick] failed to advance generation")
	}
	r.generation++

	if err = r.draw(); err != nil {
		return true, "", err
	}
	r.stats.Update(r.generation, res.Population, res.Births, res.Deaths, time.Since(start))

	if r.config.MaxGenerations > 0 && r.generation >= r.config.MaxGenerations {
		return true, "generation limit reached", nil
	}

	if r.isStagnant() {
		r.stagnantCount++
	} else {
		r.stagnantCount = 0
	}

	restart, reason := r.checkRestartConditions(res.Population)
	if !restart {
		return false, "", nil
	}
	if !r.config.AutoRestart {
		return true, reason, nil
	}
	r.restart(reason)
	return false, "", r.draw()
}

// isStagnant records the current generation and reports whether it repeats
// one of the last few.
func (r *Runner) isStagnant() bool {
	hash := r.board.Hash()

	stagnant := false
	for i := len(r.history) - 1; i >= 0 && i >= len(r.history)-cycleWindow; i-- {
		if r.history[i] == hash {
			stagnant = true
			break
		}
	}

	r.history = append(r.history, hash)
	if len(r.history) > historySize {
		r.history = r.history[1:]
	}
	return stagnant
}

// checkRestartConditions determines if the game should restart
func (r *Runner) checkRestartConditions(population int) (bool, string) {
	if population == 0 {
		return true, "extinction"
	}
	if r.stagnantCount >= r.config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

func (r *Runner) restart(reason string) {
	r.board.Randomize()
	r.history = nil
	r.stagnantCount = 0
	r.stats.Restarts++
	r.logger.Printf("restarting at generation %d due to %s, living cells: %d", r.generation, reason, r.board.Population())
}

func (r *Runner) draw() error {
	if r.renderer == nil {
		return nil
	}
	if err := r.renderer.Clear(); err != nil {
		return err
	}
	return r.renderer.Display(r.board)
}

func (r *Runner) logSummary(reason string) {
	r.logger.Printf("stopped (%s): %d generations in %.1fs, %.1f avg population, %d restarts",
		reason, r.generation, r.stats.Runtime().Seconds(), r.stats.AveragePopulation, r.stats.Restarts)
}
