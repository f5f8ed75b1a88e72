package focus

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	minMinutes = 1
	maxMinutes = 120

	// longBreakEvery is how many completed focus periods earn a long break.
	longBreakEvery = 4

	// Timers untouched for idleTTL are dropped, checked at most every sweepInterval.
	idleTTL       = 24 * time.Hour
	sweepInterval = time.Minute
)

var (
	ErrInvalidMode     = errors.New("unknown timer mode")
	ErrInvalidDuration = fmt.Errorf("durations must be between %d and %d minutes", minMinutes, maxMinutes)
)

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Settings holds the period lengths in minutes.
type Settings struct {
	Focus      int `json:"focus"`
	ShortBreak int `json:"shortBreak"`
	LongBreak  int `json:"longBreak"`
}

// DefaultSettings is 25 / 5 / 15.
func DefaultSettings() Settings {
	return Settings{Focus: 25, ShortBreak: 5, LongBreak: 15}
}

func (s Settings) validate() error {
	for _, v := range []int{s.Focus, s.ShortBreak, s.LongBreak} {
		if v < minMinutes || v > maxMinutes {
			return ErrInvalidDuration
		}
	}
	return nil
}

func (s Settings) duration(mode Mode) time.Duration {
	switch mode {
	case ModeShortBreak:
		return time.Duration(s.ShortBreak) * time.Minute
	case ModeLongBreak:
		return time.Duration(s.LongBreak) * time.Minute
	default:
		return time.Duration(s.Focus) * time.Minute
	}
}

// State is a snapshot of one timer.
type State struct {
	Mode                   Mode       `json:"mode"`
	Status                 Status     `json:"status"`
	RemainingSeconds       int        `json:"remainingSeconds"`
	Settings               Settings   `json:"settings"`
	CompletedFocusSessions int        `json:"completedFocusSessions"`
	StartedAt              *time.Time `json:"startedAt,omitempty"`
}

type timer struct {
	mode      Mode
	status    Status
	remaining time.Duration
	startedAt time.Time
	completed int
	settings  Settings
	touched   time.Time
}

// Service keeps one Pomodoro timer per key. Time is derived from the clock
// on every call, so no goroutine runs between requests.
type Service struct {
	mu        sync.Mutex
	timers    map[string]*timer
	now       func() time.Time
	lastSweep time.Time
}

func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{timers: make(map[string]*timer), now: now}
}

func (s *Service) State(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, now := s.get(key)
	return t.snapshot(now)
}

func (s *Service) Start(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, now := s.get(key)
	if t.status != StatusRunning {
		t.status = StatusRunning
		t.startedAt = now
	}
	return t.snapshot(now)
}

func (s *Service) Pause(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, now := s.get(key)
	if t.status == StatusRunning {
		t.remaining -= now.Sub(t.startedAt)
		t.status = StatusPaused
		t.startedAt = time.Time{}
	}
	return t.snapshot(now)
}

// Reset returns the current mode to its full duration.
func (s *Service) Reset(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, now := s.get(key)
	t.idle(t.mode)
	return t.snapshot(now)
}

func (s *Service) Switch(key string, mode Mode) (State, error) {
	switch mode {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
	default:
		return State{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, now := s.get(key)
	t.idle(mode)
	return t.snapshot(now), nil
}

// UpdateSettings replaces the durations. A timer that is not running picks
// up the new length of its current mode.
func (s *Service) UpdateSettings(key string, settings Settings) (State, error) {
	if err := settings.validate(); err != nil {
		return State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, now := s.get(key)
	t.settings = settings
	if t.status == StatusIdle {
		t.remaining = settings.duration(t.mode)
	}
	return t.snapshot(now), nil
}

// get returns the timer for key after applying any completion due by now.
// Caller holds mu.
func (s *Service) get(key string) (*timer, time.Time) {
	now := s.now()
	s.sweep(now)
	t, ok := s.timers[key]
	if !ok {
		settings := DefaultSettings()
		t = &timer{
			mode:      ModeFocus,
			status:    StatusIdle,
			remaining: settings.duration(ModeFocus),
			settings:  settings,
		}
		s.timers[key] = t
	}
	t.touched = now
	t.advance(now)
	return t, now
}

// sweep drops timers nobody has looked at for idleTTL. Caller holds mu.
func (s *Service) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for key, t := range s.timers {
		if now.Sub(t.touched) > idleTTL {
			delete(s.timers, key)
		}
	}
}

func (t *timer) advance(now time.Time) {
	if t.status != StatusRunning || now.Sub(t.startedAt) < t.remaining {
		return
	}
	next := ModeFocus
	if t.mode == ModeFocus {
		t.completed++
		next = ModeShortBreak
		if t.completed%longBreakEvery == 0 {
			next = ModeLongBreak
		}
	}
	t.idle(next)
}

func (t *timer) idle(mode Mode) {
	t.mode = mode
	t.status = StatusIdle
	t.remaining = t.settings.duration(mode)
	t.startedAt = time.Time{}
}

func (t *timer) snapshot(now time.Time) State {
	remaining := t.remaining
	var startedAt *time.Time
	if t.status == StatusRunning {
		remaining -= now.Sub(t.startedAt)
		started := t.startedAt
		startedAt = &started
	}
	if remaining < 0 {
		remaining = 0
	}
	return State{
		Mode:                   t.mode,
		Status:                 t.status,
		RemainingSeconds:       int((remaining + time.Second - 1) / time.Second),
		Settings:               t.settings,
		CompletedFocusSessions: t.completed,
		StartedAt:              startedAt,
	}
}
