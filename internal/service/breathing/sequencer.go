package breathing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	model "github.com/zhouzirui/mindshift/backend/internal/model/breathing"
)

var ErrUnknownExercise = errors.New("unknown breathing exercise")

const (
	defaultTick     = 500 * time.Millisecond
	defaultPacing   = 2.2
	defaultCycles   = 3
	defaultStepUnit = time.Second
)

// State of a Sequencer.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// EventType identifies what a Sequencer emitted.
type EventType string

const (
	EventIntro     EventType = "intro"
	EventStep      EventType = "step"
	EventCompleted EventType = "completed"
	EventStopped   EventType = "stopped"
)

// Event is delivered to the sequencer's listener.
type Event struct {
	Type     EventType `json:"type"`
	Exercise string    `json:"exercise"`
	Step     int       `json:"step"`
	Text     string    `json:"text"`
	Cycle    int       `json:"cycle"`
}

// Config controls pacing. Zero values fall back to defaults.
type Config struct {
	Tick     time.Duration
	Pacing   float64
	Cycles   int
	StepUnit time.Duration
}

// Sequencer walks a breathing exercise step by step.
//
// The listener is invoked while the sequencer lock is held, which is what
// guarantees that nothing is emitted after Stop or Close returns. It must not
// call back into the Sequencer.
type Sequencer struct {
	mu        sync.Mutex
	exercises []model.Exercise
	cfg       Config
	emit      func(Event)

	state   State
	current *model.Exercise
	step    int
	cancel  chan struct{}
}

// NewSequencer creates an idle sequencer over the given exercises.
func NewSequencer(exercises []model.Exercise, cfg Config, emit func(Event)) *Sequencer {
	if cfg.Tick <= 0 {
		cfg.Tick = defaultTick
	}
	if cfg.Pacing <= 0 {
		cfg.Pacing = defaultPacing
	}
	if cfg.Cycles <= 0 {
		cfg.Cycles = defaultCycles
	}
	if cfg.StepUnit <= 0 {
		cfg.StepUnit = defaultStepUnit
	}
	if emit == nil {
		emit = func(Event) {}
	}
	return &Sequencer{
		exercises: append([]model.Exercise(nil), exercises...),
		cfg:       cfg,
		emit:      emit,
		state:     StateIdle,
	}
}

// State reports whether an exercise is running.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the running exercise and step, if any.
func (s *Sequencer) Current() (model.Exercise, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning || s.current == nil {
		return model.Exercise{}, 0, false
	}
	return *s.current, s.step, true
}

// Start begins the exercise at index. It is a no-op while another exercise
// is running.
func (s *Sequencer) Start(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return nil
	}
	if index < 0 || index >= len(s.exercises) {
		return fmt.Errorf("%w: %d", ErrUnknownExercise, index)
	}

	ex := s.exercises[index]
	cancel := make(chan struct{})
	s.state = StateRunning
	s.current = &ex
	s.step = 0
	s.cancel = cancel

	s.emit(Event{
		Type:     EventIntro,
		Exercise: ex.Name,
		Text:     fmt.Sprintf("Let's begin %s. %s", ex.Name, ex.Instructions),
	})
	s.emit(Event{Type: EventStep, Exercise: ex.Name, Step: 0, Text: ex.Steps[0]})

	go s.run(ex, cancel)
	return nil
}

// Stop cancels the running exercise and emits a stopped event. It does
// nothing when idle.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	name := s.current.Name
	s.reset()
	s.emit(Event{Type: EventStopped, Exercise: name, Text: "Breathing exercise stopped."})
}

// Close cancels any running exercise without emitting anything.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		s.reset()
	}
}

// reset cancels timers and returns to idle. Caller holds mu.
func (s *Sequencer) reset() {
	close(s.cancel)
	s.cancel = nil
	s.state = StateIdle
	s.current = nil
	s.step = 0
}

func (s *Sequencer) stepDuration(ex model.Exercise, step int) time.Duration {
	return time.Duration(ex.StepDurations[step] * s.cfg.Pacing * float64(s.cfg.StepUnit))
}

// stepTicks is how many ticks a step lasts: steps only advance on a tick.
func (s *Sequencer) stepTicks(ex model.Exercise, step int) time.Duration {
	ticks := (s.stepDuration(ex, step) + s.cfg.Tick - 1) / s.cfg.Tick
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// runDeadline bounds a whole run. It covers every tick-rounded step of every
// cycle plus two ticks of slack, so the tick path completes first.
func (s *Sequencer) runDeadline(ex model.Exercise) time.Duration {
	var cycle time.Duration
	for i := range ex.Steps {
		cycle += s.stepTicks(ex, i) * s.cfg.Tick
	}
	return cycle*time.Duration(s.cfg.Cycles) + 2*s.cfg.Tick
}

func (s *Sequencer) run(ex model.Exercise, cancel chan struct{}) {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	deadline := time.NewTimer(s.runDeadline(ex))
	defer deadline.Stop()

	step := 0
	cycle := 0
	var elapsed time.Duration

	for {
		select {
		case <-cancel:
			return
		case <-deadline.C:
			s.complete(cancel, ex)
			return
		case <-ticker.C:
			elapsed += s.cfg.Tick
			if elapsed < s.stepDuration(ex, step) {
				continue
			}
			elapsed = 0
			step = (step + 1) % len(ex.Steps)
			if step == 0 {
				cycle++
				if cycle >= s.cfg.Cycles {
					s.complete(cancel, ex)
					return
				}
			}
			if !s.advance(cancel, ex, step, cycle) {
				return
			}
		}
	}
}

// advance publishes a step change if the run owning cancel is still active.
func (s *Sequencer) advance(cancel chan struct{}, ex model.Exercise, step, cycle int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != cancel {
		return false
	}
	s.step = step
	s.emit(Event{Type: EventStep, Exercise: ex.Name, Step: step, Text: ex.Steps[step], Cycle: cycle})
	return true
}

func (s *Sequencer) complete(cancel chan struct{}, ex model.Exercise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != cancel {
		return
	}
	s.reset()
	s.emit(Event{
		Type:     EventCompleted,
		Exercise: ex.Name,
		Text:     fmt.Sprintf("Great job! You've completed %s. How do you feel now?", ex.Name),
	})
}
