// Package simulate implements the staged deployment simulator: a weighted
// step table walked on randomized timer delays, with an injectable clock
// so tests drive virtual time instead of waiting on real timers.
package simulate

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/crewcanvas/pkg/api"
)

// Default timing of a run. The first advance lands sooner than the rest
// so the UI shows movement quickly.
const (
	DefaultInitialDelayMin = 800 * time.Millisecond
	DefaultInitialDelayMax = 2800 * time.Millisecond
	DefaultStepDelayMin    = 1000 * time.Millisecond
	DefaultStepDelayMax    = 3000 * time.Millisecond
)

// progressCeiling is where progress parks until the final step.
const progressCeiling = 95

// Config describes how to construct a Simulator. Zero fields get
// defaults: real clock, time-seeded rand, DefaultSteps, noop observer.
type Config struct {
	Clock    api.Clock
	Rand     *rand.Rand
	Steps    []api.DeployStep
	Observer api.DeployObserver

	InitialDelayMin time.Duration
	InitialDelayMax time.Duration
	StepDelayMin    time.Duration
	StepDelayMax    time.Duration
}

// Simulator walks a deployment step table. One run may be active at a
// time; Start on a running simulator fails with ErrAlreadyRunning.
//
// Timer callbacks fire on their own goroutine, so state is guarded by a
// mutex and each run carries a generation number: Stop cancels the
// pending timer and bumps the generation, which turns any already-fired
// stale callback into a no-op instead of letting it resurrect the run.
type Simulator struct {
	mu    sync.Mutex
	clock api.Clock
	rng   *rand.Rand
	steps []api.DeployStep
	obs   api.DeployObserver

	initialMin, initialMax time.Duration
	stepMin, stepMax       time.Duration

	state api.DeployState
	timer api.Timer
	gen   uint64
	done  chan struct{}
}

// New creates an idle Simulator.
func New(cfg Config) *Simulator {
	if cfg.Clock == nil {
		cfg.Clock = api.RealClock()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(cfg.Steps) == 0 {
		cfg.Steps = DefaultSteps()
	}
	if cfg.Observer == nil {
		cfg.Observer = api.NoopDeployObserver{}
	}
	if cfg.InitialDelayMin <= 0 {
		cfg.InitialDelayMin = DefaultInitialDelayMin
	}
	if cfg.InitialDelayMax <= cfg.InitialDelayMin {
		cfg.InitialDelayMax = cfg.InitialDelayMin + 1
	}
	if cfg.StepDelayMin <= 0 {
		cfg.StepDelayMin = DefaultStepDelayMin
	}
	if cfg.StepDelayMax <= cfg.StepDelayMin {
		cfg.StepDelayMax = cfg.StepDelayMin + 1
	}

	closed := make(chan struct{})
	close(closed)

	return &Simulator{
		clock:      cfg.Clock,
		rng:        cfg.Rand,
		steps:      cfg.Steps,
		obs:        cfg.Observer,
		initialMin: cfg.InitialDelayMin,
		initialMax: cfg.InitialDelayMax,
		stepMin:    cfg.StepDelayMin,
		stepMax:    cfg.StepDelayMax,
		state:      api.DeployState{Status: api.StatusIdle},
		done:       closed,
	}
}

// StepCount returns the number of steps in the run's table.
func (s *Simulator) StepCount() int { return len(s.steps) }

// State returns a copy of the current run state.
func (s *Simulator) State() api.DeployState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Done returns a channel closed when the current run reaches a terminal
// state. For an idle simulator the channel is already closed.
func (s *Simulator) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Start begins a run: idle -> running, with the first advance scheduled
// after a randomized initial delay.
func (s *Simulator) Start() error {
	s.mu.Lock()
	if s.state.Status == api.StatusRunning {
		s.mu.Unlock()
		return api.ErrAlreadyRunning
	}

	s.gen++
	gen := s.gen
	s.state = api.DeployState{
		ID:       uuid.NewString(),
		Status:   api.StatusRunning,
		StepName: s.steps[0].Name,
	}
	s.done = make(chan struct{})
	st := s.state
	s.timer = s.clock.AfterFunc(s.draw(s.initialMin, s.initialMax), func() {
		s.advance(gen)
	})
	s.mu.Unlock()

	s.obs.OnDeployStart(context.Background(), st)
	return nil
}

// Stop aborts the run and returns to idle, from running or from a
// terminal state. The pending advance is cancelled; a callback that
// already fired is discarded by the generation check. Stop on an idle
// simulator is a no-op.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status == api.StatusIdle {
		return
	}
	running := s.state.Status == api.StatusRunning
	s.cancelLocked()
	s.state = api.DeployState{Status: api.StatusIdle}
	if running {
		close(s.done)
	}
}

// Fail injects a failure into the running deployment: running -> error,
// terminally. The internal timer chain never produces the error state on
// its own; this hook is how a caller-observed failure lands in the model.
func (s *Simulator) Fail(err error) error {
	s.mu.Lock()
	if s.state.Status != api.StatusRunning {
		s.mu.Unlock()
		return api.ErrNotRunning
	}
	s.cancelLocked()
	s.state.Status = api.StatusError
	if err != nil {
		s.state.Error = err.Error()
	}
	st := s.state
	close(s.done)
	s.mu.Unlock()

	s.obs.OnDeployFailed(context.Background(), st, err)
	return nil
}

// cancelLocked stops the pending timer and invalidates in-flight
// callbacks. Callers hold s.mu.
func (s *Simulator) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Simulator) advance(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.state.Status != api.StatusRunning {
		// Stale callback from a stopped or failed run.
		s.mu.Unlock()
		return
	}

	idx := s.state.StepIndex
	step := s.steps[idx]
	s.state.Progress += step.Weight
	s.state.StepName = step.Name

	final := idx == len(s.steps)-1
	if final {
		s.state.Progress = 100
		s.state.Status = api.StatusSuccess
		s.timer = nil
		close(s.done)
	} else {
		if s.state.Progress > progressCeiling {
			s.state.Progress = progressCeiling
		}
		s.state.StepIndex = idx + 1
		s.timer = s.clock.AfterFunc(s.draw(s.stepMin, s.stepMax), func() {
			s.advance(gen)
		})
	}
	st := s.state
	s.mu.Unlock()

	s.obs.OnStepAdvance(context.Background(), st, step.Name, idx)
	if final {
		s.obs.OnDeployCompleted(context.Background(), st)
	}
}

// draw picks a uniform delay in [min, max). Callers hold s.mu.
func (s *Simulator) draw(min, max time.Duration) time.Duration {
	return min + time.Duration(s.rng.Int63n(int64(max-min)))
}
